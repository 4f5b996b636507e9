package validrb_test

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	validrb "github.com/Elysium-Arc/validrb"
)

func evalOK(t *testing.T, typ validrb.Type, in any) any {
	t.Helper()
	v, errs := typ.Evaluate(in, nil)
	if len(errs) > 0 {
		t.Fatalf("expected success for %#v, got %v", in, errs)
	}
	return v
}

func evalFail(t *testing.T, typ validrb.Type, in any) validrb.ErrorList {
	t.Helper()
	_, errs := typ.Evaluate(in, nil)
	if len(errs) == 0 {
		t.Fatalf("expected failure for %#v", in)
	}
	return errs
}

func TestStringType_Coercion(t *testing.T) {
	s := validrb.StringType()
	if got := evalOK(t, s, "hello"); got != "hello" {
		t.Fatalf("passthrough: %v", got)
	}
	if got := evalOK(t, s, 42); got != "42" {
		t.Fatalf("int stringified: %v", got)
	}
	if got := evalOK(t, s, 1.5); got != "1.5" {
		t.Fatalf("float stringified: %v", got)
	}
	if got := evalOK(t, s, json.Number("3.25")); got != "3.25" {
		t.Fatalf("json.Number stringified: %v", got)
	}

	errs := evalFail(t, s, true)
	if errs[0].Code != validrb.CodeTypeError {
		t.Fatalf("expected type_error, got %v", errs)
	}
	evalFail(t, s, []any{"x"})
}

func TestIntegerType_Coercion(t *testing.T) {
	it := validrb.IntegerType()
	if got := evalOK(t, it, 7); got != int64(7) {
		t.Fatalf("int passthrough: %v", got)
	}
	if got := evalOK(t, it, 3.0); got != int64(3) {
		t.Fatalf("whole float: %v", got)
	}
	if got := evalOK(t, it, "  -17  "); got != int64(-17) {
		t.Fatalf("trimmed string: %v", got)
	}
	if got := evalOK(t, it, "42.000"); got != int64(42) {
		t.Fatalf("all-zero fraction: %v", got)
	}
	if got := evalOK(t, it, json.Number("5")); got != int64(5) {
		t.Fatalf("json.Number: %v", got)
	}

	for _, bad := range []any{3.5, "42.5", "", "   ", "abc", "1e3", true, nil, math.NaN(), math.Inf(1)} {
		evalFail(t, it, bad)
	}
}

func TestFloatType_Coercion(t *testing.T) {
	ft := validrb.FloatType()
	if got := evalOK(t, ft, 3); got != float64(3) {
		t.Fatalf("int widened: %v", got)
	}
	if got := evalOK(t, ft, " 2.5 "); got != 2.5 {
		t.Fatalf("string parsed: %v", got)
	}
	if got := evalOK(t, ft, json.Number("0.25")); got != 0.25 {
		t.Fatalf("json.Number: %v", got)
	}

	for _, bad := range []any{math.NaN(), math.Inf(1), math.Inf(-1), "NaN", "Inf", "", "abc", true} {
		evalFail(t, ft, bad)
	}
}

func TestDecimalType_PreservesPrecision(t *testing.T) {
	dt := validrb.DecimalType()

	// string input must parse the numeral directly, not via float64
	got := evalOK(t, dt, "0.1000000000000000000000000001")
	d, ok := got.(decimal.Decimal)
	if !ok {
		t.Fatalf("expected decimal.Decimal, got %T", got)
	}
	want := decimal.RequireFromString("0.1000000000000000000000000001")
	if !d.Equal(want) {
		t.Fatalf("precision lost: %s", d)
	}

	if got := evalOK(t, dt, 7); !got.(decimal.Decimal).Equal(decimal.NewFromInt(7)) {
		t.Fatalf("int input: %v", got)
	}
	if got := evalOK(t, dt, json.Number("1.50")); !got.(decimal.Decimal).Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("json.Number input: %v", got)
	}

	for _, bad := range []any{"", "  ", "abc", math.NaN(), math.Inf(1), true} {
		evalFail(t, dt, bad)
	}
}

func TestBooleanType_TruthyFalsySets(t *testing.T) {
	bt := validrb.BooleanType()

	truthy := []any{true, 1, "1", "true", "TRUE", "yes", "on", "t", "Y", json.Number("1")}
	for _, in := range truthy {
		if got := evalOK(t, bt, in); got != true {
			t.Fatalf("expected true for %#v, got %v", in, got)
		}
	}

	falsy := []any{false, 0, "0", "false", "No", "off", "f", "n", json.Number("0")}
	for _, in := range falsy {
		if got := evalOK(t, bt, in); got != false {
			t.Fatalf("expected false for %#v, got %v", in, got)
		}
	}

	for _, bad := range []any{"maybe", 2, "", nil, 0.5, []any{}} {
		evalFail(t, bt, bad)
	}
}

func TestScalarTypes_ErrorPathAndCode(t *testing.T) {
	p := validrb.Path{}.Key("user").Key("age")
	_, errs := validrb.IntegerType().Evaluate("abc", p)
	if len(errs) != 1 {
		t.Fatalf("expected single error, got %v", errs)
	}
	if errs[0].Code != validrb.CodeTypeError || !errs[0].Path.Equal(p) {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

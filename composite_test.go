package validrb_test

import (
	"testing"

	"github.com/goccy/go-json"

	validrb "github.com/Elysium-Arc/validrb"
)

func TestArrayType_ElementPathsAndTotality(t *testing.T) {
	at := validrb.ArrayType(validrb.IntegerType())

	got := evalOK(t, at, []any{"1", 2, 3.0})
	items := got.([]any)
	if len(items) != 3 || items[0] != int64(1) || items[1] != int64(2) || items[2] != int64(3) {
		t.Fatalf("coerced items: %#v", items)
	}

	// both bad elements are reported, with index paths
	_, errs := at.Evaluate([]any{1, "x", 3, "y"}, validrb.Path{}.Key("tags"))
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Path.String() != "tags[1]" || errs[1].Path.String() != "tags[3]" {
		t.Fatalf("paths: %s, %s", errs[0].Path, errs[1].Path)
	}
	for _, e := range errs {
		if e.Code != validrb.CodeTypeError {
			t.Fatalf("code: %s", e.Code)
		}
	}

	errs = evalFail(t, at, "not-a-slice")
	if errs[0].Code != validrb.CodeTypeError {
		t.Fatalf("non-array input: %v", errs)
	}
}

func TestArrayType_NilElementTypeChecksShapeOnly(t *testing.T) {
	at := validrb.ArrayType(nil)
	got := evalOK(t, at, []any{"a", 1, nil})
	if len(got.([]any)) != 3 {
		t.Fatalf("items: %#v", got)
	}
	evalFail(t, at, map[string]any{})
}

func TestObjectType_DelegatesToSchema(t *testing.T) {
	address := validrb.NewSchema().
		Field("city", "string").
		Field("zip", "string", validrb.Length(5)).
		MustBuild()
	ot := validrb.ObjectType(address)

	got := evalOK(t, ot, map[string]any{"city": "Springfield", "zip": "62704"})
	if got.(map[string]any)["city"] != "Springfield" {
		t.Fatalf("nested output: %#v", got)
	}

	_, errs := ot.Evaluate(map[string]any{"city": "Springfield", "zip": "627"}, validrb.Path{}.Key("address"))
	if len(errs) != 1 || errs[0].Path.String() != "address.zip" {
		t.Fatalf("nested error: %v", errs)
	}

	errs = evalFail(t, ot, 12)
	if errs[0].Code != validrb.CodeTypeError {
		t.Fatalf("non-object input: %v", errs)
	}
}

func TestUnionType_FirstSuccessWins(t *testing.T) {
	ut := validrb.UnionType(validrb.IntegerType(), validrb.StringType())

	// the integer member claims numeric strings before the string member sees them
	if got := evalOK(t, ut, "42"); got != int64(42) {
		t.Fatalf("numeric string: %v", got)
	}
	if got := evalOK(t, ut, "abc"); got != "abc" {
		t.Fatalf("plain string: %v", got)
	}
	if got := evalOK(t, ut, 7); got != int64(7) {
		t.Fatalf("integer: %v", got)
	}
}

func TestUnionType_SingleErrorOnTotalFailure(t *testing.T) {
	ut := validrb.UnionType(validrb.IntegerType(), validrb.BooleanType())
	_, errs := ut.Evaluate([]any{5}, validrb.Path{}.Key("flag"))
	if len(errs) != 1 {
		t.Fatalf("expected one collapsed error, got %v", errs)
	}
	e := errs[0]
	if e.Code != validrb.CodeUnionTypeError || e.Path.String() != "flag" {
		t.Fatalf("error: %+v", e)
	}
	if e.Params["members"] != "integer, boolean" {
		t.Fatalf("members param: %v", e.Params["members"])
	}
}

func TestDiscriminatedUnionType_Dispatch(t *testing.T) {
	cat := validrb.NewSchema().
		Field("type", "string").
		Field("lives", "integer").
		MustBuild()
	dog := validrb.NewSchema().
		Field("type", "string").
		Field("good_boy", "boolean").
		MustBuild()
	du := validrb.DiscriminatedUnionType("type", map[string]*validrb.Schema{
		"cat": cat,
		"dog": dog,
	})

	got := evalOK(t, du, map[string]any{"type": "cat", "lives": "9"})
	if got.(map[string]any)["lives"] != int64(9) {
		t.Fatalf("cat variant: %#v", got)
	}

	// unmatched tag collapses to one error at the discriminator path
	_, errs := du.Evaluate(map[string]any{"type": "bird"}, validrb.Path{}.Key("pet"))
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	e := errs[0]
	if e.Code != validrb.CodeInvalidDiscriminator || e.Path.String() != "pet.type" {
		t.Fatalf("error: %+v", e)
	}
	allowed := e.Params["allowed"].([]string)
	if len(allowed) != 2 || allowed[0] != "cat" || allowed[1] != "dog" {
		t.Fatalf("allowed not sorted: %v", allowed)
	}

	_, errs = du.Evaluate(map[string]any{"lives": 9}, validrb.Path{}.Key("pet"))
	if len(errs) != 1 || errs[0].Code != validrb.CodeDiscriminatorMissing {
		t.Fatalf("missing discriminator: %v", errs)
	}
	if errs[0].Path.String() != "pet.type" {
		t.Fatalf("missing discriminator path: %s", errs[0].Path)
	}

	// explicit null discriminator reads as missing
	_, errs = du.Evaluate(map[string]any{"type": nil}, nil)
	if len(errs) != 1 || errs[0].Code != validrb.CodeDiscriminatorMissing {
		t.Fatalf("null discriminator: %v", errs)
	}
}

func TestTypeConfigurationHelpers(t *testing.T) {
	address := validrb.NewSchema().Field("city", "string").MustBuild()

	elem, ok := validrb.ElemOf(validrb.ArrayType(validrb.IntegerType()))
	if !ok || elem.Kind() != validrb.KindInteger {
		t.Fatalf("ElemOf: %v %v", elem, ok)
	}
	if _, ok := validrb.ElemOf(validrb.StringType()); ok {
		t.Fatal("ElemOf accepted a scalar")
	}

	nested, ok := validrb.NestedOf(validrb.ObjectType(address))
	if !ok || nested != address {
		t.Fatalf("NestedOf: %v %v", nested, ok)
	}

	members, ok := validrb.MembersOf(validrb.UnionType(validrb.IntegerType(), validrb.StringType()))
	if !ok || len(members) != 2 || members[0].Kind() != validrb.KindInteger {
		t.Fatalf("MembersOf: %v %v", members, ok)
	}

	disc, mapping, ok := validrb.VariantsOf(validrb.DiscriminatedUnionType("kind", map[string]*validrb.Schema{
		"addr": address,
	}))
	if !ok || disc != "kind" || mapping["addr"] != address {
		t.Fatalf("VariantsOf: %q %v %v", disc, mapping, ok)
	}

	values, ok := validrb.ValuesOf(validrb.LiteralType("a", 1))
	if !ok || len(values) != 2 || values[0] != "a" {
		t.Fatalf("ValuesOf: %v %v", values, ok)
	}
	if _, ok := validrb.ValuesOf(validrb.BooleanType()); ok {
		t.Fatal("ValuesOf accepted a scalar")
	}
}

func TestLiteralType_NoCoercionAcrossKinds(t *testing.T) {
	lt := validrb.LiteralType("pending", "active", 1)

	if got := evalOK(t, lt, "active"); got != "active" {
		t.Fatalf("string literal: %v", got)
	}
	if got := evalOK(t, lt, 1); got != 1 {
		t.Fatalf("int literal: %v", got)
	}
	// numeric shapes of the same value still match
	if got := evalOK(t, lt, json.Number("1")); got != json.Number("1") {
		t.Fatalf("json.Number literal: %v", got)
	}

	// the string "1" is not the integer 1
	evalFail(t, lt, "1")
	errs := evalFail(t, lt, "archived")
	if errs[0].Code != validrb.CodeTypeError {
		t.Fatalf("code: %s", errs[0].Code)
	}
}

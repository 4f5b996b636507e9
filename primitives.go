package validrb

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// StringType returns the string scalar type.
func StringType() Type { return stringType{} }

// IntegerType returns the integer scalar type. Coerced values are int64.
func IntegerType() Type { return integerType{} }

// FloatType returns the float scalar type. Coerced values are float64.
func FloatType() Type { return floatType{} }

// DecimalType returns the arbitrary-precision decimal scalar type. Coerced
// values are decimal.Decimal; string input parses directly from the
// numeral, never through binary floating point.
func DecimalType() Type { return decimalType{} }

// BooleanType returns the boolean scalar type.
func BooleanType() Type { return booleanType{} }

type stringType struct{}

func (stringType) Kind() Kind   { return KindString }
func (stringType) Name() string { return "string" }

func (stringType) Coerce(v any) (any, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case decimal.Decimal:
		return t.String(), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	}
	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return nil, false
}

func (stringType) Valid(v any) bool {
	_, ok := v.(string)
	return ok
}

func (t stringType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

// integer string forms: bare digits, or digits with an all-zero fraction
// ("42.000" is whole, "42.01" is not).
var (
	intPattern      = regexp.MustCompile(`^-?\d+$`)
	intZeroFraction = regexp.MustCompile(`^-?\d+\.0+$`)
)

type integerType struct{}

func (integerType) Kind() Kind   { return KindInteger }
func (integerType) Name() string { return "integer" }

func (integerType) Coerce(v any) (any, bool) {
	if i, ok := asInt64(v); ok {
		return i, true
	}
	switch t := v.(type) {
	case float32:
		return wholeFloatToInt64(float64(t))
	case float64:
		return wholeFloatToInt64(t)
	case json.Number:
		return integerFromString(t.String())
	case string:
		return integerFromString(t)
	}
	return nil, false
}

func wholeFloatToInt64(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Floor(f) {
		return nil, false
	}
	if f < math.MinInt64 || f > math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

func integerFromString(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	switch {
	case intPattern.MatchString(s):
	case intZeroFraction.MatchString(s):
		s = s[:strings.IndexByte(s, '.')]
	default:
		return nil, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return i, true
}

func (integerType) Valid(v any) bool {
	_, ok := asInt64(v)
	return ok
}

func (t integerType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

type floatType struct{}

func (floatType) Kind() Kind   { return KindFloat }
func (floatType) Name() string { return "float" }

func (floatType) Coerce(v any) (any, bool) {
	if f, ok := asFloat64(v); ok {
		return finiteFloat(f)
	}
	switch t := v.(type) {
	case json.Number:
		return floatFromString(t.String())
	case string:
		return floatFromString(t)
	}
	return nil, false
}

func floatFromString(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return finiteFloat(f)
}

// non-finite results are rejected at both input and output
func finiteFloat(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func (floatType) Valid(v any) bool {
	switch t := v.(type) {
	case float64:
		return !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		f := float64(t)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return false
}

func (t floatType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

type decimalType struct{}

func (decimalType) Kind() Kind   { return KindDecimal }
func (decimalType) Name() string { return "decimal" }

func (decimalType) Coerce(v any) (any, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float32:
		if _, ok := finiteFloat(float64(t)); !ok {
			return nil, false
		}
		return decimal.NewFromFloat32(t), true
	case float64:
		if _, ok := finiteFloat(t); !ok {
			return nil, false
		}
		return decimal.NewFromFloat(t), true
	case json.Number:
		return decimalFromString(t.String())
	case string:
		return decimalFromString(t)
	}
	if i, ok := asInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return nil, false
}

func decimalFromString(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, false
	}
	return d, true
}

func (decimalType) Valid(v any) bool {
	_, ok := v.(decimal.Decimal)
	return ok
}

func (t decimalType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

// fixed truthy/falsy string forms, matched case-insensitively
var (
	truthyStrings = map[string]struct{}{
		"1": {}, "true": {}, "yes": {}, "on": {}, "t": {}, "y": {},
	}
	falsyStrings = map[string]struct{}{
		"0": {}, "false": {}, "no": {}, "off": {}, "f": {}, "n": {},
	}
)

type booleanType struct{}

func (booleanType) Kind() Kind   { return KindBoolean }
func (booleanType) Name() string { return "boolean" }

func (booleanType) Coerce(v any) (any, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if _, ok := truthyStrings[s]; ok {
			return true, true
		}
		if _, ok := falsyStrings[s]; ok {
			return false, true
		}
		return nil, false
	case json.Number:
		return booleanFromNumber(t.String())
	}
	if f, ok := runtimeNumeric(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
		return nil, false
	}
	return nil, false
}

func booleanFromNumber(s string) (any, bool) {
	switch s {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return nil, false
}

func (booleanType) Valid(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (t booleanType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

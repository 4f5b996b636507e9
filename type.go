package validrb

import (
	"math"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Elysium-Arc/validrb/i18n"
)

// Kind is the closed discriminant over every Type variant. Switches over
// Kind are exhaustive by convention; adding a variant means visiting every
// switch site.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindDecimal
	KindBoolean
	KindDate
	KindDateTime
	KindTime
	KindArray
	KindObject
	KindUnion
	KindDiscriminatedUnion
	KindLiteral
)

// Type is a polymorphic coercion/validation unit. Instances are immutable
// once constructed; the only state a Type holds is its configuration, so a
// single instance is safe for concurrent use.
//
// Scalar variants implement Coerce/Valid and inherit the composite Evaluate
// via evaluateScalar. Structural and combinator variants override Evaluate
// because they must recurse and produce path-prefixed sub-errors rather
// than a single flat error.
type Type interface {
	Kind() Kind
	// Name is the symbolic type name used in messages and the registry.
	Name() string
	// Coerce converts a raw value into the type's canonical representation.
	// The second return is false when coercion fails.
	Coerce(v any) (any, bool)
	// Valid reports whether v already is a canonical value of this type.
	Valid(v any) bool
	// Evaluate runs coercion then validation, emitting errors at path.
	Evaluate(v any, path Path) (any, ErrorList)
}

// evaluateScalar is the shared composite entry point for scalar variants:
// coerce, then validate, emitting a single type_error on failure.
func evaluateScalar(t Type, v any, path Path) (any, ErrorList) {
	cv, ok := t.Coerce(v)
	if !ok {
		return nil, ErrorList{typeErrorAt(path, t.Name())}
	}
	if !t.Valid(cv) {
		return nil, ErrorList{typeErrorAt(path, t.Name())}
	}
	return cv, nil
}

func typeErrorAt(path Path, typeName string) Error {
	return Error{
		Path:    path,
		Code:    CodeTypeError,
		Message: i18n.T(CodeTypeError, map[string]string{"expected": typeName}),
		Params:  map[string]any{"expected": typeName},
	}
}

// ---- shared value-shape helpers ----

// asInt64 widens any Go integer kind to int64. uint64 values beyond the
// int64 range do not convert.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	}
	return 0, false
}

// asFloat64 widens numeric kinds (excluding json.Number and decimal) to
// float64.
func asFloat64(v any) (float64, bool) {
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// runtimeNumeric resolves any numeric runtime shape, including json.Number
// and decimal.Decimal, to float64 for comparisons.
func runtimeNumeric(v any) (float64, bool) {
	if f, ok := asFloat64(v); ok {
		return f, true
	}
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case decimal.Decimal:
		return t.InexactFloat64(), true
	}
	return 0, false
}

// asSlice normalizes any slice or array value into []any. Strings and byte
// slices are not array-shaped input.
func asSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	switch v.(type) {
	case nil, string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asKeyed normalizes key-value-shaped input into a map with canonical
// string keys. map[any]any values (older YAML decoders, hand-built input)
// convert when every key is a string.
func asKeyed(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// looseEqual compares literal/enum members: numeric shapes compare by
// value, everything else by deep equality. An integer 1 never matches the
// string "1".
func looseEqual(a, b any) bool {
	af, aok := runtimeNumeric(a)
	bf, bok := runtimeNumeric(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

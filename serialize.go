package validrb

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// SerializeValue canonicalizes a coerced value tree into JSON-safe
// primitives: decimals become fixed-point strings, temporal values become
// calendar / RFC 3339 strings, sequences and mappings recurse, anything
// else falls back to its key-value projection or string form. The function
// is pure; it never mutates its input.
func SerializeValue(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int, int64, float64:
		return t
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint, uint8, uint16, uint32, uint64:
		i, _ := asInt64(t)
		return i
	case float32:
		return float64(t)
	case json.Number:
		return t.String()
	case decimal.Decimal:
		// String() drops trailing zeros; keep the value's own scale
		if t.Exponent() < 0 {
			return t.StringFixed(-t.Exponent())
		}
		return t.String()
	case Date:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = SerializeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SerializeValue(val)
		}
		return out
	}
	if m, ok := asKeyed(v); ok {
		return SerializeValue(m)
	}
	if items, ok := asSlice(v); ok {
		return SerializeValue(items)
	}
	return fmt.Sprintf("%v", v)
}

// SerializeData applies SerializeValue to every entry of an output
// mapping, which keeps Success data round-trippable through SafeParse.
func SerializeData(data map[string]any) map[string]any {
	out, _ := SerializeValue(data).(map[string]any)
	return out
}

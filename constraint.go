package validrb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Elysium-Arc/validrb/i18n"
)

// ConstraintKind is the closed discriminant over every Constraint variant.
type ConstraintKind int

const (
	ConstraintMin ConstraintKind = iota
	ConstraintMax
	ConstraintLength
	ConstraintFormat
	ConstraintEnum
)

// Constraint is a post-coercion predicate check. Configuration is immutable;
// a constraint never coerces.
type Constraint interface {
	Kind() ConstraintKind
	Code() string
	Valid(v any) bool
	Message(v any) string
	// Params exposes the configuration for read-only introspection.
	Params() map[string]any
}

// evaluateConstraint is the generic composite entry point shared by every
// constraint variant.
func evaluateConstraint(c Constraint, v any, path Path) ErrorList {
	if c.Valid(v) {
		return nil
	}
	return ErrorList{{Path: path, Code: c.Code(), Message: c.Message(v), Params: c.Params()}}
}

// lengthOf resolves a runtime value's length: rune count for strings,
// element count for sequences and mappings.
func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case map[string]any:
		return len(t), true
	}
	if items, ok := asSlice(v); ok {
		return len(items), true
	}
	return 0, false
}

// comparable resolves the min/max comparison operand. Numeric runtime
// shapes compare by value; anything exposing a length compares by length.
// The dispatch follows the runtime value, not the declared field type.
func comparableMagnitude(v any) (float64, bool) {
	if f, ok := runtimeNumeric(v); ok {
		return f, true
	}
	if n, ok := lengthOf(v); ok {
		return float64(n), true
	}
	return 0, false
}

// exactThreshold keeps the threshold in arbitrary precision so decimal
// values compare without a float64 round trip.
func exactThreshold(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	}
	if i, ok := asInt64(v); ok {
		return decimal.NewFromInt(i)
	}
	f, _ := asFloat64(v)
	return decimal.NewFromFloat(f)
}

// NewMinConstraint builds a min constraint. threshold must be numeric.
func NewMinConstraint(threshold any) (Constraint, error) {
	f, ok := runtimeNumeric(threshold)
	if !ok {
		return nil, fmt.Errorf("validrb: min threshold must be numeric, got %T", threshold)
	}
	return minConstraint{threshold: f, exact: exactThreshold(threshold)}, nil
}

// NewMaxConstraint builds a max constraint. threshold must be numeric.
func NewMaxConstraint(threshold any) (Constraint, error) {
	f, ok := runtimeNumeric(threshold)
	if !ok {
		return nil, fmt.Errorf("validrb: max threshold must be numeric, got %T", threshold)
	}
	return maxConstraint{threshold: f, exact: exactThreshold(threshold)}, nil
}

type minConstraint struct {
	threshold float64
	exact     decimal.Decimal
}

func (minConstraint) Kind() ConstraintKind { return ConstraintMin }
func (minConstraint) Code() string         { return CodeMin }

func (c minConstraint) Valid(v any) bool {
	if d, ok := v.(decimal.Decimal); ok {
		return d.Cmp(c.exact) >= 0
	}
	m, ok := comparableMagnitude(v)
	return ok && m >= c.threshold
}

func (c minConstraint) Message(any) string {
	return i18n.T(CodeMin, map[string]string{"min": formatThreshold(c.threshold)})
}

func (c minConstraint) Params() map[string]any { return map[string]any{"min": c.threshold} }

type maxConstraint struct {
	threshold float64
	exact     decimal.Decimal
}

func (maxConstraint) Kind() ConstraintKind { return ConstraintMax }
func (maxConstraint) Code() string         { return CodeMax }

func (c maxConstraint) Valid(v any) bool {
	if d, ok := v.(decimal.Decimal); ok {
		return d.Cmp(c.exact) <= 0
	}
	m, ok := comparableMagnitude(v)
	return ok && m <= c.threshold
}

func (c maxConstraint) Message(any) string {
	return i18n.T(CodeMax, map[string]string{"max": formatThreshold(c.threshold)})
}

func (c maxConstraint) Params() map[string]any { return map[string]any{"max": c.threshold} }

func formatThreshold(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LengthConfig selects exactly one of the length constraint's modes:
// exact, min-only, max-only, or min+max (an inclusive range).
type LengthConfig struct {
	Exact *int
	Min   *int
	Max   *int
}

// NewLengthConstraint builds a length constraint. Construction without any
// mode, or with exact combined with a bound, is an error.
func NewLengthConstraint(cfg LengthConfig) (Constraint, error) {
	if cfg.Exact != nil && (cfg.Min != nil || cfg.Max != nil) {
		return nil, errors.New("validrb: length exact cannot combine with min/max")
	}
	if cfg.Exact == nil && cfg.Min == nil && cfg.Max == nil {
		return nil, errors.New("validrb: length constraint needs exact, min or max")
	}
	return lengthConstraint{cfg: cfg}, nil
}

type lengthConstraint struct{ cfg LengthConfig }

func (lengthConstraint) Kind() ConstraintKind { return ConstraintLength }
func (lengthConstraint) Code() string         { return CodeLength }

func (c lengthConstraint) Valid(v any) bool {
	n, ok := lengthOf(v)
	if !ok {
		return false
	}
	if c.cfg.Exact != nil {
		return n == *c.cfg.Exact
	}
	if c.cfg.Min != nil && n < *c.cfg.Min {
		return false
	}
	if c.cfg.Max != nil && n > *c.cfg.Max {
		return false
	}
	return true
}

func (c lengthConstraint) Message(any) string {
	data := map[string]string{}
	if c.cfg.Exact != nil {
		data["exact"] = strconv.Itoa(*c.cfg.Exact)
	}
	if c.cfg.Min != nil {
		data["min"] = strconv.Itoa(*c.cfg.Min)
	}
	if c.cfg.Max != nil {
		data["max"] = strconv.Itoa(*c.cfg.Max)
	}
	return i18n.T(CodeLength, data)
}

func (c lengthConstraint) Params() map[string]any {
	out := map[string]any{}
	if c.cfg.Exact != nil {
		out["exact"] = *c.cfg.Exact
	}
	if c.cfg.Min != nil {
		out["min"] = *c.cfg.Min
	}
	if c.cfg.Max != nil {
		out["max"] = *c.cfg.Max
	}
	return out
}

// NewFormatConstraint builds a format constraint from a named format.
func NewFormatConstraint(name string) (Constraint, error) {
	check, ok := namedFormats[name]
	if !ok {
		return nil, fmt.Errorf("validrb: unknown format %q", name)
	}
	return formatConstraint{name: name, check: check}, nil
}

// NewPatternConstraint builds a format constraint from a caller-supplied
// pattern.
func NewPatternConstraint(re *regexp.Regexp) (Constraint, error) {
	if re == nil {
		return nil, errors.New("validrb: pattern constraint needs a pattern")
	}
	return formatConstraint{name: "pattern", check: re.MatchString, pattern: re.String()}, nil
}

type formatConstraint struct {
	name    string
	pattern string
	check   func(string) bool
}

func (formatConstraint) Kind() ConstraintKind { return ConstraintFormat }
func (formatConstraint) Code() string         { return CodeFormat }

// Valid only accepts strings: a non-string always fails this constraint,
// whatever the pattern.
func (c formatConstraint) Valid(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return c.check(s)
}

func (c formatConstraint) Message(any) string {
	return i18n.T(CodeFormat, map[string]string{"format": c.name})
}

func (c formatConstraint) Params() map[string]any {
	out := map[string]any{"format": c.name}
	if c.pattern != "" {
		out["pattern"] = c.pattern
	}
	return out
}

// NewEnumConstraint builds an enum constraint. The allowed list must be
// non-empty.
func NewEnumConstraint(allowed ...any) (Constraint, error) {
	if len(allowed) == 0 {
		return nil, errors.New("validrb: enum constraint needs at least one allowed value")
	}
	vs := make([]any, len(allowed))
	copy(vs, allowed)
	return enumConstraint{allowed: vs}, nil
}

type enumConstraint struct{ allowed []any }

func (enumConstraint) Kind() ConstraintKind { return ConstraintEnum }
func (enumConstraint) Code() string         { return CodeEnum }

func (c enumConstraint) Valid(v any) bool {
	for _, a := range c.allowed {
		if looseEqual(v, a) {
			return true
		}
	}
	return false
}

func (c enumConstraint) Message(any) string {
	parts := make([]string, len(c.allowed))
	for i, a := range c.allowed {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return i18n.T(CodeEnum, map[string]string{"allowed": strings.Join(parts, ", ")})
}

func (c enumConstraint) Params() map[string]any {
	return map[string]any{"allowed": append([]any(nil), c.allowed...)}
}

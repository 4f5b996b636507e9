package validrb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Elysium-Arc/validrb/i18n"
)

// ArrayType returns an array type over elem. A nil elem leaves elements
// unevaluated (the array shape alone is checked).
func ArrayType(elem Type) Type { return arrayType{elem: elem} }

// ObjectType returns an object type over schema. A nil schema only checks
// the key-value shape and returns the mapping as-is.
func ObjectType(schema *Schema) Type { return objectType{schema: schema} }

// UnionType returns a union over members, tried in declared order. The
// schema builder rejects empty member lists at build time.
func UnionType(members ...Type) Type {
	ms := make([]Type, len(members))
	copy(ms, members)
	return unionType{members: ms}
}

// DiscriminatedUnionType returns a union dispatched on the discriminator
// field's value through mapping. The schema builder rejects empty mappings
// at build time.
func DiscriminatedUnionType(discriminator string, mapping map[string]*Schema) Type {
	m := make(map[string]*Schema, len(mapping))
	keys := make([]string, 0, len(mapping))
	for k, v := range mapping {
		m[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return discriminatedUnionType{discriminator: discriminator, mapping: m, keys: keys}
}

// LiteralType returns a type matching exactly the configured values, with
// no coercion. An integer literal 1 does not match the string "1".
func LiteralType(values ...any) Type {
	vs := make([]any, len(values))
	copy(vs, values)
	return literalType{values: vs}
}

// Export adapters reach the structural and combinator configuration
// through these helpers rather than asserting on unexported types.

// ElemOf returns an array type's item type (nil when unconfigured). ok is
// false when t is not an array type.
func ElemOf(t Type) (elem Type, ok bool) {
	a, ok := t.(arrayType)
	return a.elem, ok
}

// NestedOf returns an object type's nested schema (nil when unconfigured).
func NestedOf(t Type) (nested *Schema, ok bool) {
	o, ok := t.(objectType)
	return o.schema, ok
}

// MembersOf returns a union type's member types in declared order.
func MembersOf(t Type) (members []Type, ok bool) {
	u, ok := t.(unionType)
	if !ok {
		return nil, false
	}
	return u.Members(), true
}

// VariantsOf returns a discriminated union's dispatch field and variant
// mapping.
func VariantsOf(t Type) (discriminator string, mapping map[string]*Schema, ok bool) {
	d, ok := t.(discriminatedUnionType)
	if !ok {
		return "", nil, false
	}
	return d.discriminator, d.Mapping(), true
}

// ValuesOf returns a literal type's allowed values in declared order.
func ValuesOf(t Type) (values []any, ok bool) {
	l, ok := t.(literalType)
	if !ok {
		return nil, false
	}
	return l.Values(), true
}

type arrayType struct {
	elem Type
}

func (arrayType) Kind() Kind { return KindArray }

func (t arrayType) Name() string {
	if t.elem == nil {
		return "array"
	}
	return "array of " + t.elem.Name()
}

// Elem returns the configured item type, nil when unconfigured.
func (t arrayType) Elem() Type { return t.elem }

func (arrayType) Coerce(v any) (any, bool) { return asSlice(v) }

func (arrayType) Valid(v any) bool {
	_, ok := asSlice(v)
	return ok
}

func (t arrayType) Evaluate(v any, path Path) (any, ErrorList) {
	items, ok := asSlice(v)
	if !ok {
		return nil, ErrorList{typeErrorAt(path, "array")}
	}
	if t.elem == nil {
		return items, nil
	}
	out := make([]any, len(items))
	var errs ErrorList
	// every element is evaluated even after a failure; all item errors
	// are collected
	for i, item := range items {
		ev, sub := t.elem.Evaluate(item, path.Index(i))
		if len(sub) > 0 {
			errs = errs.Merge(sub)
			continue
		}
		out[i] = ev
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

type objectType struct {
	schema *Schema
}

func (objectType) Kind() Kind   { return KindObject }
func (objectType) Name() string { return "object" }

// Nested returns the configured nested schema, nil when unconfigured.
func (t objectType) Nested() *Schema { return t.schema }

func (objectType) Coerce(v any) (any, bool) { return asKeyed(v) }

func (objectType) Valid(v any) bool {
	_, ok := asKeyed(v)
	return ok
}

func (t objectType) Evaluate(v any, path Path) (any, ErrorList) {
	m, ok := asKeyed(v)
	if !ok {
		return nil, ErrorList{typeErrorAt(path, "object")}
	}
	if t.schema == nil {
		return m, nil
	}
	return t.schema.evaluate(m, path, nil)
}

type unionType struct {
	members []Type
}

func (unionType) Kind() Kind { return KindUnion }

func (t unionType) Name() string { return "union of " + t.memberNames() }

// Members returns the declared member types in order.
func (t unionType) Members() []Type {
	out := make([]Type, len(t.members))
	copy(out, t.members)
	return out
}

func (t unionType) memberNames() string {
	names := make([]string, len(t.members))
	for i, m := range t.members {
		names[i] = m.Name()
	}
	return strings.Join(names, ", ")
}

func (t unionType) Coerce(v any) (any, bool) {
	cv, errs := t.Evaluate(v, nil)
	return cv, len(errs) == 0
}

func (t unionType) Valid(v any) bool {
	for _, m := range t.members {
		if m.Valid(v) {
			return true
		}
	}
	return false
}

// Evaluate tries every member's full evaluation in declared order and keeps
// the first success. When all fail, the member-level errors are discarded
// and a single union_type_error lists the member names.
func (t unionType) Evaluate(v any, path Path) (any, ErrorList) {
	for _, m := range t.members {
		if cv, errs := m.Evaluate(v, path); len(errs) == 0 {
			return cv, nil
		}
	}
	names := t.memberNames()
	return nil, ErrorList{{
		Path:    path,
		Code:    CodeUnionTypeError,
		Message: i18n.T(CodeUnionTypeError, map[string]string{"members": names}),
		Params:  map[string]any{"members": names},
	}}
}

type discriminatedUnionType struct {
	discriminator string
	mapping       map[string]*Schema
	keys          []string // sorted mapping keys for stable messages
}

func (discriminatedUnionType) Kind() Kind   { return KindDiscriminatedUnion }
func (t discriminatedUnionType) Name() string {
	return "discriminated union on " + t.discriminator
}

// Discriminator returns the dispatch field name.
func (t discriminatedUnionType) Discriminator() string { return t.discriminator }

// Mapping returns the variant schemas keyed by discriminator value.
func (t discriminatedUnionType) Mapping() map[string]*Schema {
	out := make(map[string]*Schema, len(t.mapping))
	for k, v := range t.mapping {
		out[k] = v
	}
	return out
}

func (t discriminatedUnionType) Coerce(v any) (any, bool) {
	cv, errs := t.Evaluate(v, nil)
	return cv, len(errs) == 0
}

func (t discriminatedUnionType) Valid(v any) bool {
	_, ok := asKeyed(v)
	return ok
}

func (t discriminatedUnionType) Evaluate(v any, path Path) (any, ErrorList) {
	m, ok := asKeyed(v)
	if !ok {
		return nil, ErrorList{typeErrorAt(path, "object")}
	}
	dv, present := m[t.discriminator]
	if !present || dv == nil {
		return nil, ErrorList{{
			Path:    path.Key(t.discriminator),
			Code:    CodeDiscriminatorMissing,
			Message: i18n.T(CodeDiscriminatorMissing, nil),
			Params:  map[string]any{"discriminator": t.discriminator},
		}}
	}
	tag, _ := dv.(string)
	sch, found := t.mapping[tag]
	if !found {
		allowed := strings.Join(t.keys, ", ")
		return nil, ErrorList{{
			Path:    path.Key(t.discriminator),
			Code:    CodeInvalidDiscriminator,
			Message: i18n.T(CodeInvalidDiscriminator, map[string]string{"allowed": allowed}),
			Params:  map[string]any{"got": dv, "allowed": append([]string(nil), t.keys...)},
		}}
	}
	return sch.evaluate(m, path, nil)
}

type literalType struct {
	values []any
}

func (literalType) Kind() Kind { return KindLiteral }

func (t literalType) Name() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "literal " + strings.Join(parts, "|")
}

// Values returns the allowed literal values in declared order.
func (t literalType) Values() []any {
	out := make([]any, len(t.values))
	copy(out, t.values)
	return out
}

func (t literalType) Coerce(v any) (any, bool) {
	if t.Valid(v) {
		return v, true
	}
	return nil, false
}

func (t literalType) Valid(v any) bool {
	for _, allowed := range t.values {
		if looseEqual(v, allowed) {
			return true
		}
	}
	return false
}

func (t literalType) Evaluate(v any, path Path) (any, ErrorList) {
	return evaluateScalar(t, v, path)
}

package validrb

import (
	"github.com/Elysium-Arc/validrb/i18n"
)

// ValueFunc transforms a value. Used for preprocess/transform hooks that do
// not need the parse context.
type ValueFunc func(v any) any

// ValueCtxFunc transforms a value with access to the parse Context. The two
// callback shapes are distinct configuration options; which one runs is
// fixed at field-definition time.
type ValueCtxFunc func(v any, ctx *Context) any

// Predicate gates a field on the full sibling data and the optional parse
// Context.
type Predicate func(data map[string]any, ctx *Context) bool

// refinement is one post-constraint check. Exactly one of check/checkCtx is
// set; message or messageFunc renders the failure.
type refinement struct {
	check       func(v any) bool
	checkCtx    func(v any, ctx *Context) bool
	message     string
	messageFunc func(v any) string
}

// Field binds a name to one Type, its constraints and its field-level
// policy. Fields are constructed once when a Schema is built and never
// mutated; the struct exposes read-only reflection for export adapters.
type Field struct {
	name        string
	typ         Type
	constraints []Constraint

	optional     bool
	nullable     bool
	hasDefault   bool
	defaultValue any
	defaultFunc  func() any

	preprocess    ValueFunc
	preprocessCtx ValueCtxFunc
	transform     ValueFunc
	transformCtx  ValueCtxFunc

	when   Predicate
	unless Predicate

	refinements []refinement
	message     string
	coerce      bool
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the bound type instance.
func (f *Field) Type() Type { return f.typ }

// Constraints returns the bound constraints in declaration order.
func (f *Field) Constraints() []Constraint {
	out := make([]Constraint, len(f.constraints))
	copy(out, f.constraints)
	return out
}

// Optional reports whether a missing value is allowed.
func (f *Field) Optional() bool { return f.optional }

// Nullable reports whether an explicit null resolves to a null value.
func (f *Field) Nullable() bool { return f.nullable }

// HasDefault reports whether a default value or thunk is configured.
func (f *Field) HasDefault() bool { return f.hasDefault }

// Conditional reports whether a when/unless gate is configured.
func (f *Field) Conditional() bool { return f.when != nil || f.unless != nil }

// Coerce reports whether type coercion runs (true unless disabled).
func (f *Field) Coerce() bool { return f.coerce }

func (f *Field) defaultVal() any {
	if f.defaultFunc != nil {
		return f.defaultFunc()
	}
	return f.defaultValue
}

func (f *Field) runPreprocess(v any, ctx *Context) any {
	if f.preprocess != nil {
		return f.preprocess(v)
	}
	if f.preprocessCtx != nil {
		return f.preprocessCtx(v, ctx)
	}
	return v
}

func (f *Field) runTransform(v any, ctx *Context) any {
	if f.transform != nil {
		return f.transform(v)
	}
	if f.transformCtx != nil {
		return f.transformCtx(v, ctx)
	}
	return v
}

// applyMessage rewrites collected errors with the field's custom message,
// preserving code and path.
func (f *Field) applyMessage(errs ErrorList) ErrorList {
	if f.message == "" || len(errs) == 0 {
		return errs
	}
	out := make(ErrorList, len(errs))
	for i, e := range errs {
		e.Message = f.message
		out[i] = e
	}
	return out
}

func (f *Field) requiredError(path Path) ErrorList {
	return f.applyMessage(ErrorList{{
		Path:    path,
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, nil),
	}})
}

// evaluate runs the field pipeline for one raw value. present distinguishes
// a fetched value from a missing key. include reports whether the returned
// value belongs in the output mapping; an optional field with no value
// yields include=false rather than a null entry.
func (f *Field) evaluate(raw any, present bool, siblings map[string]any, ctx *Context, prefix Path) (value any, include bool, errs ErrorList) {
	path := prefix.Key(f.name)

	// conditional gate: a skipped field behaves as optional for this call;
	// a present value still runs preprocess/transform but skips
	// coercion and constraints
	if f.skipped(siblings, ctx) {
		if !present || raw == nil {
			return nil, false, nil
		}
		v := f.runPreprocess(raw, ctx)
		return f.runTransform(v, ctx), true, nil
	}

	if !present {
		return f.resolveMissing(path, ctx)
	}

	v := f.runPreprocess(raw, ctx)

	// a preprocessed null is the missing case for non-nullable fields,
	// never a type error
	if v == nil {
		if f.nullable {
			return nil, true, nil
		}
		return f.resolveMissing(path, ctx)
	}

	var cv any
	if f.coerce {
		coerced, typeErrs := f.typ.Evaluate(v, path)
		if len(typeErrs) > 0 {
			return nil, false, f.applyMessage(typeErrs)
		}
		cv = coerced
	} else {
		if !f.typ.Valid(v) {
			return nil, false, f.applyMessage(ErrorList{typeErrorAt(path, f.typ.Name())})
		}
		cv = v
	}

	var constraintErrs ErrorList
	for _, c := range f.constraints {
		constraintErrs = constraintErrs.Merge(evaluateConstraint(c, cv, path))
	}
	if len(constraintErrs) > 0 {
		return nil, false, f.applyMessage(constraintErrs)
	}

	var refineErrs ErrorList
	for _, r := range f.refinements {
		ok := true
		if r.check != nil {
			ok = r.check(cv)
		} else if r.checkCtx != nil {
			ok = r.checkCtx(cv, ctx)
		}
		if ok {
			continue
		}
		msg := r.message
		if r.messageFunc != nil {
			msg = r.messageFunc(cv)
		}
		if msg == "" {
			msg = i18n.T(CodeRefinement, nil)
		}
		refineErrs = refineErrs.Add(Error{Path: path, Code: CodeRefinement, Message: msg})
	}
	if len(refineErrs) > 0 {
		return nil, false, f.applyMessage(refineErrs)
	}

	return f.runTransform(cv, ctx), true, nil
}

// resolveMissing applies the default / optional / required branching shared
// by the missing-key case and the non-nullable-null case.
func (f *Field) resolveMissing(path Path, ctx *Context) (any, bool, ErrorList) {
	if f.hasDefault {
		dv := f.runPreprocess(f.defaultVal(), ctx)
		return f.runTransform(dv, ctx), true, nil
	}
	if f.optional {
		return nil, false, nil
	}
	return nil, false, f.requiredError(path)
}

func (f *Field) skipped(siblings map[string]any, ctx *Context) bool {
	if f.when != nil && !f.when(siblings, ctx) {
		return true
	}
	if f.unless != nil && f.unless(siblings, ctx) {
		return true
	}
	return false
}

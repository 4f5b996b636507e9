package validrb

import "fmt"

// Schema is an immutable ordered mapping of field name to Field. Schemas
// are shared, read-only, and safe for concurrent use: SafeParse allocates
// only call-local accumulators.
type Schema struct {
	fields      []*Field
	index       map[string]*Field
	strict      bool
	passthrough bool
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the declared field names in declaration order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.index[name]
	return f, ok
}

// Strict reports the strict signal for external consumers (JSON-Schema
// export and the like). Unknown keys are dropped from output either way.
func (s *Schema) Strict() bool { return s.strict }

// PassthroughUnknown reports whether unknown keys are carried through to
// the output unchanged.
func (s *Schema) PassthroughUnknown() bool { return s.passthrough }

// ParseOption configures one SafeParse/Parse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	ctx    *Context
	prefix Path
}

// WithContext threads a side-channel Context through conditionals,
// refinements and the preprocess/transform hooks.
func WithContext(ctx *Context) ParseOption {
	return func(c *parseConfig) { c.ctx = ctx }
}

// WithPrefix prepends a path prefix to every emitted error, for callers
// composing schemas manually.
func WithPrefix(p Path) ParseOption {
	return func(c *parseConfig) { c.prefix = p }
}

// SafeParse evaluates input against the schema. Validation problems are
// never returned as a Go error; they land in the Result's Failure variant.
// The only non-nil error is the caller-contract violation ErrInvalidInput
// for input that is not key-value shaped (nil input normalizes to an empty
// mapping).
func (s *Schema) SafeParse(input any, opts ...ParseOption) (Result, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var m map[string]any
	if input != nil {
		var ok bool
		m, ok = asKeyed(input)
		if !ok {
			return Result{}, fmt.Errorf("%w: got %T", ErrInvalidInput, input)
		}
	}
	out, errs := s.evaluate(m, cfg.prefix, cfg.ctx)
	if len(errs) > 0 {
		return Failure(errs), nil
	}
	return Success(out), nil
}

// Parse is a thin wrapper over SafeParse for call sites that prefer
// error-based control flow: a Failure comes back as *ValidationError
// carrying the full ErrorList.
func (s *Schema) Parse(input any, opts ...ParseOption) (map[string]any, error) {
	res, err := s.SafeParse(input, opts...)
	if err != nil {
		return nil, err
	}
	if res.IsFailure() {
		return nil, &ValidationError{Errors: res.Errors()}
	}
	return res.Data(), nil
}

// evaluate runs every declared field in declaration order, concatenating
// errors without short-circuiting across fields, then applies the unknown
// key policy.
func (s *Schema) evaluate(m map[string]any, prefix Path, ctx *Context) (map[string]any, ErrorList) {
	out := make(map[string]any, len(s.fields))
	var errs ErrorList
	for _, f := range s.fields {
		raw, present := m[f.name]
		v, include, fieldErrs := f.evaluate(raw, present, m, ctx, prefix)
		if len(fieldErrs) > 0 {
			errs = errs.Merge(fieldErrs)
			continue
		}
		if include {
			out[f.name] = v
		}
	}
	if s.passthrough {
		for k, v := range m {
			if _, declared := s.index[k]; !declared {
				out[k] = v
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

package validrb

import (
	"errors"
	"fmt"
	"regexp"
)

// Builder assembles a Schema. It is the only mutable intermediate: Build
// hands out an immutable Schema and every misconfiguration surfaces there,
// never at parse time.
type Builder struct {
	registry    *Registry
	fields      []*Field
	index       map[string]*Field
	strict      bool
	passthrough bool
	errs        []error
}

// NewSchema starts a builder over the default registry.
func NewSchema() *Builder { return NewSchemaWith(DefaultRegistry()) }

// NewSchemaWith starts a builder over an explicit registry.
func NewSchemaWith(reg *Registry) *Builder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Builder{registry: reg, index: map[string]*Field{}}
}

// Strict marks the schema strict for external consumers. Unknown keys are
// dropped from output regardless.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

// Passthrough carries unknown keys through to the output unchanged.
func (b *Builder) Passthrough() *Builder {
	b.passthrough = true
	return b
}

// Field declares a field by symbolic type name resolved through the
// builder's registry.
func (b *Builder) Field(name, typeName string, opts ...FieldOption) *Builder {
	fc := newFieldConfig(b.registry)
	for _, opt := range opts {
		opt(fc)
	}
	t, err := b.registry.BuildType(typeName, fc.typeCfg)
	if err != nil {
		fc.errs = append(fc.errs, err)
	}
	b.addField(name, t, fc)
	return b
}

// FieldType declares a field with an explicit Type instance, bypassing the
// registry lookup.
func (b *Builder) FieldType(name string, t Type, opts ...FieldOption) *Builder {
	fc := newFieldConfig(b.registry)
	for _, opt := range opts {
		opt(fc)
	}
	if t == nil {
		fc.errs = append(fc.errs, fmt.Errorf("validrb: field %q has a nil type", name))
	}
	b.addField(name, t, fc)
	return b
}

func (b *Builder) addField(name string, t Type, fc *fieldConfig) {
	if name == "" {
		b.errs = append(b.errs, errors.New("validrb: field name is empty"))
		return
	}
	if _, dup := b.index[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("validrb: duplicate field %q", name))
		return
	}
	for _, err := range fc.errs {
		b.errs = append(b.errs, fmt.Errorf("validrb: field %q: %w", name, err))
	}
	f := &Field{
		name:          name,
		typ:           t,
		constraints:   fc.constraints,
		optional:      fc.optional,
		nullable:      fc.nullable,
		hasDefault:    fc.hasDefault,
		defaultValue:  fc.defaultValue,
		defaultFunc:   fc.defaultFunc,
		preprocess:    fc.preprocess,
		preprocessCtx: fc.preprocessCtx,
		transform:     fc.transform,
		transformCtx:  fc.transformCtx,
		when:          fc.when,
		unless:        fc.unless,
		refinements:   fc.refinements,
		message:       fc.message,
		coerce:        fc.coerce,
	}
	b.fields = append(b.fields, f)
	b.index[name] = f
}

// Build validates the accumulated declarations and returns the immutable
// Schema.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	fields := make([]*Field, len(b.fields))
	copy(fields, b.fields)
	index := make(map[string]*Field, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return &Schema{fields: fields, index: index, strict: b.strict, passthrough: b.passthrough}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// FieldOption configures one field declaration.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	reg         *Registry
	typeCfg     TypeConfig
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

	errs []error
}

func newFieldConfig(reg *Registry) *fieldConfig {
	return &fieldConfig{reg: reg, coerce: true}
}

func (fc *fieldConfig) addConstraint(name string, cfg ConstraintConfig) {
	c, err := fc.reg.BuildConstraint(name, cfg)
	if err != nil {
		fc.errs = append(fc.errs, err)
		return
	}
	fc.constraints = append(fc.constraints, c)
}

// Optional allows the field to be missing.
func Optional() FieldOption {
	return func(fc *fieldConfig) { fc.optional = true }
}

// Nullable resolves an explicit null to a null output value.
func Nullable() FieldOption {
	return func(fc *fieldConfig) { fc.nullable = true }
}

// Default supplies a value applied when the field is missing. The default
// runs through preprocess and transform but skips coercion and constraints.
func Default(v any) FieldOption {
	return func(fc *fieldConfig) {
		fc.hasDefault = true
		fc.defaultValue = v
		fc.defaultFunc = nil
	}
}

// DefaultFunc supplies a zero-argument thunk evaluated per parse call.
func DefaultFunc(f func() any) FieldOption {
	return func(fc *fieldConfig) {
		if f == nil {
			fc.errs = append(fc.errs, errors.New("default thunk is nil"))
			return
		}
		fc.hasDefault = true
		fc.defaultFunc = f
		fc.defaultValue = nil
	}
}

// Min adds a min constraint (value for numerics, length otherwise).
func Min(threshold any) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("min", ConstraintConfig{Threshold: threshold})
	}
}

// Max adds a max constraint (value for numerics, length otherwise).
func Max(threshold any) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("max", ConstraintConfig{Threshold: threshold})
	}
}

// Length adds an exact length constraint.
func Length(exact int) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("length", ConstraintConfig{Length: LengthConfig{Exact: &exact}})
	}
}

// LengthBetween adds an inclusive length-range constraint.
func LengthBetween(min, max int) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("length", ConstraintConfig{Length: LengthConfig{Min: &min, Max: &max}})
	}
}

// MinLength adds a min-only length constraint.
func MinLength(min int) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("length", ConstraintConfig{Length: LengthConfig{Min: &min}})
	}
}

// MaxLength adds a max-only length constraint.
func MaxLength(max int) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("length", ConstraintConfig{Length: LengthConfig{Max: &max}})
	}
}

// Format adds a named-format constraint (email, url, uuid, phone,
// alphanumeric, alpha, numeric, hex, slug).
func Format(name string) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("format", ConstraintConfig{Format: name})
	}
}

// Pattern adds a format constraint with a caller-supplied pattern.
func Pattern(re *regexp.Regexp) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("format", ConstraintConfig{Pattern: re})
	}
}

// Enum adds an allowed-value constraint. The list must be non-empty.
func Enum(allowed ...any) FieldOption {
	return func(fc *fieldConfig) {
		fc.addConstraint("enum", ConstraintConfig{Allowed: allowed})
	}
}

// Of sets the array item type by symbolic name.
func Of(typeName string) FieldOption {
	return func(fc *fieldConfig) {
		t, err := fc.reg.BuildType(typeName, TypeConfig{})
		if err != nil {
			fc.errs = append(fc.errs, err)
			return
		}
		fc.typeCfg.Of = t
	}
}

// OfType sets the array item type with an explicit Type instance.
func OfType(t Type) FieldOption {
	return func(fc *fieldConfig) {
		if t == nil {
			fc.errs = append(fc.errs, errors.New("item type is nil"))
			return
		}
		fc.typeCfg.Of = t
	}
}

// Nested sets the nested schema for an object field.
func Nested(s *Schema) FieldOption {
	return func(fc *fieldConfig) {
		if s == nil {
			fc.errs = append(fc.errs, errors.New("nested schema is nil"))
			return
		}
		fc.typeCfg.Schema = s
	}
}

// Members sets the union member types by symbolic name, in order.
func Members(typeNames ...string) FieldOption {
	return func(fc *fieldConfig) {
		for _, name := range typeNames {
			t, err := fc.reg.BuildType(name, TypeConfig{})
			if err != nil {
				fc.errs = append(fc.errs, err)
				continue
			}
			fc.typeCfg.Members = append(fc.typeCfg.Members, t)
		}
	}
}

// MemberTypes sets the union member types with explicit Type instances.
func MemberTypes(ts ...Type) FieldOption {
	return func(fc *fieldConfig) {
		fc.typeCfg.Members = append(fc.typeCfg.Members, ts...)
	}
}

// Discriminator configures a discriminated union: the dispatch field and
// the variant mapping.
func Discriminator(field string, mapping map[string]*Schema) FieldOption {
	return func(fc *fieldConfig) {
		fc.typeCfg.Discriminator = field
		fc.typeCfg.Mapping = mapping
	}
}

// Literals sets the allowed literal values.
func Literals(values ...any) FieldOption {
	return func(fc *fieldConfig) {
		fc.typeCfg.Values = append(fc.typeCfg.Values, values...)
	}
}

// NoCoerce skips coercion: the raw value is only shape-checked against the
// type, never transformed.
func NoCoerce() FieldOption {
	return func(fc *fieldConfig) { fc.coerce = false }
}

// Preprocess runs fn on a present value before coercion.
func Preprocess(fn ValueFunc) FieldOption {
	return func(fc *fieldConfig) {
		if fn == nil {
			fc.errs = append(fc.errs, errors.New("preprocess func is nil"))
			return
		}
		fc.preprocess = fn
		fc.preprocessCtx = nil
	}
}

// PreprocessCtx is Preprocess with access to the parse Context.
func PreprocessCtx(fn ValueCtxFunc) FieldOption {
	return func(fc *fieldConfig) {
		if fn == nil {
			fc.errs = append(fc.errs, errors.New("preprocess func is nil"))
			return
		}
		fc.preprocessCtx = fn
		fc.preprocess = nil
	}
}

// Transform runs fn on the final value after coercion, constraints and
// refinements all pass.
func Transform(fn ValueFunc) FieldOption {
	return func(fc *fieldConfig) {
		if fn == nil {
			fc.errs = append(fc.errs, errors.New("transform func is nil"))
			return
		}
		fc.transform = fn
		fc.transformCtx = nil
	}
}

// TransformCtx is Transform with access to the parse Context.
func TransformCtx(fn ValueCtxFunc) FieldOption {
	return func(fc *fieldConfig) {
		if fn == nil {
			fc.errs = append(fc.errs, errors.New("transform func is nil"))
			return
		}
		fc.transformCtx = fn
		fc.transform = nil
	}
}

// When gates the field on a predicate over the sibling data.
func When(pred Predicate) FieldOption {
	return func(fc *fieldConfig) {
		if pred == nil {
			fc.errs = append(fc.errs, errors.New("when predicate is nil"))
			return
		}
		fc.when = pred
	}
}

// Unless gates the field on the negation of a predicate.
func Unless(pred Predicate) FieldOption {
	return func(fc *fieldConfig) {
		if pred == nil {
			fc.errs = append(fc.errs, errors.New("unless predicate is nil"))
			return
		}
		fc.unless = pred
	}
}

// WhenField is the sibling-field shorthand: the field only applies when the
// named sibling is truthy (not nil, not false).
func WhenField(name string) FieldOption {
	return When(func(data map[string]any, _ *Context) bool {
		return truthy(data[name])
	})
}

// UnlessField is the negated sibling-field shorthand.
func UnlessField(name string) FieldOption {
	return Unless(func(data map[string]any, _ *Context) bool {
		return truthy(data[name])
	})
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Refine adds a refinement with a static message. A nil predicate is a
// construction-time error.
func Refine(pred func(v any) bool, message string) FieldOption {
	return func(fc *fieldConfig) {
		if pred == nil {
			fc.errs = append(fc.errs, errors.New("refine predicate is nil"))
			return
		}
		fc.refinements = append(fc.refinements, refinement{check: pred, message: message})
	}
}

// RefineCtx adds a context-aware refinement with a static message.
func RefineCtx(pred func(v any, ctx *Context) bool, message string) FieldOption {
	return func(fc *fieldConfig) {
		if pred == nil {
			fc.errs = append(fc.errs, errors.New("refine predicate is nil"))
			return
		}
		fc.refinements = append(fc.refinements, refinement{checkCtx: pred, message: message})
	}
}

// RefineWith adds a refinement whose message derives from the offending
// value.
func RefineWith(pred func(v any) bool, message func(v any) string) FieldOption {
	return func(fc *fieldConfig) {
		if pred == nil {
			fc.errs = append(fc.errs, errors.New("refine predicate is nil"))
			return
		}
		fc.refinements = append(fc.refinements, refinement{check: pred, messageFunc: message})
	}
}

// Message overrides the rendered message of every error this field emits,
// preserving code and path.
func Message(msg string) FieldOption {
	return func(fc *fieldConfig) { fc.message = msg }
}

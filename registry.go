package validrb

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// TypeConfig carries the construction options a symbolic type name can
// take. Fields irrelevant to the named type are ignored by its factory.
type TypeConfig struct {
	Of            Type               // array item type
	Schema        *Schema            // object nested schema
	Members       []Type             // union member types, in order
	Discriminator string             // discriminated-union dispatch field
	Mapping       map[string]*Schema // discriminated-union variants
	Values        []any              // literal values
}

// ConstraintConfig carries the construction options a symbolic constraint
// name can take.
type ConstraintConfig struct {
	Threshold any            // min/max
	Length    LengthConfig   // length
	Format    string         // named format
	Pattern   *regexp.Regexp // caller-supplied format pattern
	Allowed   []any          // enum
}

// TypeFactory builds a Type from its configuration.
type TypeFactory func(cfg TypeConfig) (Type, error)

// ConstraintFactory builds a Constraint from its configuration.
type ConstraintFactory func(cfg ConstraintConfig) (Constraint, error)

// Registry resolves symbolic type and constraint names to factories. It is
// an explicit object rather than ambient package state so applications can
// construct isolated registries; registration is expected during startup,
// but a mutex guards late registration against concurrent lookups.
type Registry struct {
	mu          sync.RWMutex
	types       map[string]TypeFactory
	constraints map[string]ConstraintFactory
}

// NewRegistry returns an empty registry. Most callers want
// DefaultRegistry, which carries the built-in variants.
func NewRegistry() *Registry {
	return &Registry{
		types:       map[string]TypeFactory{},
		constraints: map[string]ConstraintFactory{},
	}
}

// RegisterType installs a type factory under name, replacing any previous
// registration.
func (r *Registry) RegisterType(name string, f TypeFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = f
}

// RegisterConstraint installs a constraint factory under name, replacing
// any previous registration.
func (r *Registry) RegisterConstraint(name string, f ConstraintFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constraints[name] = f
}

// BuildType resolves name and builds a Type from cfg. Unknown names fail
// with ErrUnknownType.
func (r *Registry) BuildType(name string, cfg TypeConfig) (Type, error) {
	r.mu.RLock()
	f, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return f(cfg)
}

// BuildConstraint resolves name and builds a Constraint from cfg. Unknown
// names fail with ErrUnknownConstraint.
func (r *Registry) BuildConstraint(name string, cfg ConstraintConfig) (Constraint, error) {
	r.mu.RLock()
	f, ok := r.constraints[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
	}
	return f(cfg)
}

// TypeNames lists the registered type names.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	return out
}

var defaultRegistry = newBuiltinRegistry()

// DefaultRegistry returns the process-wide registry pre-populated with the
// built-in type and constraint variants. It is ready before any Schema is
// built.
func DefaultRegistry() *Registry { return defaultRegistry }

func newBuiltinRegistry() *Registry {
	r := NewRegistry()

	scalar := func(t Type) TypeFactory {
		return func(TypeConfig) (Type, error) { return t, nil }
	}
	r.RegisterType("string", scalar(StringType()))
	r.RegisterType("integer", scalar(IntegerType()))
	r.RegisterType("float", scalar(FloatType()))
	r.RegisterType("decimal", scalar(DecimalType()))
	r.RegisterType("boolean", scalar(BooleanType()))
	r.RegisterType("date", scalar(DateType()))
	r.RegisterType("datetime", scalar(DateTimeType()))
	r.RegisterType("time", scalar(TimeType()))

	r.RegisterType("array", func(cfg TypeConfig) (Type, error) {
		return ArrayType(cfg.Of), nil
	})
	r.RegisterType("object", func(cfg TypeConfig) (Type, error) {
		return ObjectType(cfg.Schema), nil
	})
	r.RegisterType("union", func(cfg TypeConfig) (Type, error) {
		if len(cfg.Members) == 0 {
			return nil, errors.New("validrb: union type needs at least one member")
		}
		for _, m := range cfg.Members {
			if m == nil {
				return nil, errors.New("validrb: union member type is nil")
			}
		}
		return UnionType(cfg.Members...), nil
	})
	r.RegisterType("discriminated_union", func(cfg TypeConfig) (Type, error) {
		if cfg.Discriminator == "" {
			return nil, errors.New("validrb: discriminated union needs a discriminator field")
		}
		if len(cfg.Mapping) == 0 {
			return nil, errors.New("validrb: discriminated union needs a non-empty mapping")
		}
		for k, s := range cfg.Mapping {
			if s == nil {
				return nil, fmt.Errorf("validrb: discriminated union variant %q has a nil schema", k)
			}
		}
		return DiscriminatedUnionType(cfg.Discriminator, cfg.Mapping), nil
	})
	r.RegisterType("literal", func(cfg TypeConfig) (Type, error) {
		if len(cfg.Values) == 0 {
			return nil, errors.New("validrb: literal type needs at least one value")
		}
		return LiteralType(cfg.Values...), nil
	})

	r.RegisterConstraint("min", func(cfg ConstraintConfig) (Constraint, error) {
		return NewMinConstraint(cfg.Threshold)
	})
	r.RegisterConstraint("max", func(cfg ConstraintConfig) (Constraint, error) {
		return NewMaxConstraint(cfg.Threshold)
	})
	r.RegisterConstraint("length", func(cfg ConstraintConfig) (Constraint, error) {
		return NewLengthConstraint(cfg.Length)
	})
	r.RegisterConstraint("format", func(cfg ConstraintConfig) (Constraint, error) {
		if cfg.Pattern != nil {
			return NewPatternConstraint(cfg.Pattern)
		}
		return NewFormatConstraint(cfg.Format)
	})
	r.RegisterConstraint("enum", func(cfg ConstraintConfig) (Constraint, error) {
		return NewEnumConstraint(cfg.Allowed...)
	})
	return r
}

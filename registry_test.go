package validrb_test

import (
	"errors"
	"strings"
	"testing"

	validrb "github.com/Elysium-Arc/validrb"
)

func TestRegistry_BuildUnknownNames(t *testing.T) {
	reg := validrb.DefaultRegistry()

	_, err := reg.BuildType("fraction", validrb.TypeConfig{})
	if !errors.Is(err, validrb.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if !strings.Contains(err.Error(), "fraction") {
		t.Fatalf("error should name the type: %v", err)
	}

	_, err = reg.BuildConstraint("divisible_by", validrb.ConstraintConfig{})
	if !errors.Is(err, validrb.ErrUnknownConstraint) {
		t.Fatalf("expected ErrUnknownConstraint, got %v", err)
	}
}

func TestRegistry_BuiltinTypeNames(t *testing.T) {
	names := validrb.DefaultRegistry().TypeNames()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{
		"string", "integer", "float", "decimal", "boolean",
		"date", "datetime", "time",
		"array", "object", "union", "discriminated_union", "literal",
	} {
		if !seen[want] {
			t.Fatalf("built-in type %q missing (have %v)", want, names)
		}
	}
}

func TestRegistry_CompositeConfigValidation(t *testing.T) {
	reg := validrb.DefaultRegistry()

	if _, err := reg.BuildType("union", validrb.TypeConfig{}); err == nil {
		t.Fatal("union without members built")
	}
	if _, err := reg.BuildType("discriminated_union", validrb.TypeConfig{Discriminator: "type"}); err == nil {
		t.Fatal("discriminated union without mapping built")
	}
	if _, err := reg.BuildType("discriminated_union", validrb.TypeConfig{
		Mapping: map[string]*validrb.Schema{"cat": validrb.NewSchema().MustBuild()},
	}); err == nil {
		t.Fatal("discriminated union without discriminator built")
	}
	if _, err := reg.BuildType("literal", validrb.TypeConfig{}); err == nil {
		t.Fatal("literal without values built")
	}

	// array and object tolerate empty configs (shape-only checks)
	if _, err := reg.BuildType("array", validrb.TypeConfig{}); err != nil {
		t.Fatalf("bare array: %v", err)
	}
	if _, err := reg.BuildType("object", validrb.TypeConfig{}); err != nil {
		t.Fatalf("bare object: %v", err)
	}
}

// An isolated registry can rename or restrict the vocabulary without
// touching the default one.
func TestRegistry_IsolatedRegistries(t *testing.T) {
	custom := validrb.NewRegistry()
	custom.RegisterType("str", func(validrb.TypeConfig) (validrb.Type, error) {
		return validrb.StringType(), nil
	})

	if _, err := custom.BuildType("str", validrb.TypeConfig{}); err != nil {
		t.Fatalf("custom name: %v", err)
	}
	if _, err := custom.BuildType("string", validrb.TypeConfig{}); !errors.Is(err, validrb.ErrUnknownType) {
		t.Fatalf("builtin leaked into isolated registry: %v", err)
	}
	if _, err := validrb.DefaultRegistry().BuildType("str", validrb.TypeConfig{}); !errors.Is(err, validrb.ErrUnknownType) {
		t.Fatalf("custom name leaked into default registry: %v", err)
	}

	// a builder over the custom registry resolves through it
	schema := validrb.NewSchemaWith(custom).Field("name", "str").MustBuild()
	res, err := schema.SafeParse(map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if !res.IsSuccess() || res.Data()["name"] != "Ada" {
		t.Fatalf("result: %+v", res)
	}

	if _, err := validrb.NewSchemaWith(custom).Field("name", "string").Build(); err == nil {
		t.Fatal("builder resolved a name the registry does not know")
	}
}

func TestRegistry_CustomConstraint(t *testing.T) {
	reg := validrb.NewRegistry()
	reg.RegisterType("integer", func(validrb.TypeConfig) (validrb.Type, error) {
		return validrb.IntegerType(), nil
	})
	reg.RegisterConstraint("min", func(cfg validrb.ConstraintConfig) (validrb.Constraint, error) {
		return validrb.NewMinConstraint(cfg.Threshold)
	})

	schema := validrb.NewSchemaWith(reg).
		Field("age", "integer", validrb.Min(18)).
		MustBuild()

	res, err := schema.SafeParse(map[string]any{"age": 17})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if !res.IsFailure() || res.Errors()[0].Code != validrb.CodeMin {
		t.Fatalf("result: %+v", res)
	}
}

package validrb_test

import (
	"errors"
	"strings"
	"testing"

	validrb "github.com/Elysium-Arc/validrb"
)

func TestBuilder_CollectsDeclarationErrors(t *testing.T) {
	_, err := validrb.NewSchema().
		Field("", "string").
		Field("age", "years").
		Field("age", "integer").
		Field("tag", "string", validrb.Refine(nil, "x")).
		Build()
	if err == nil {
		t.Fatal("expected build error")
	}
	msg := err.Error()
	for _, want := range []string{
		"field name is empty",
		"years",
		"refine predicate is nil",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
	if !errors.Is(err, validrb.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType in chain: %v", err)
	}
}

func TestBuilder_DuplicateField(t *testing.T) {
	_, err := validrb.NewSchema().
		Field("name", "string").
		Field("name", "string").
		Build()
	if err == nil || !strings.Contains(err.Error(), `duplicate field "name"`) {
		t.Fatalf("error: %v", err)
	}
}

func TestBuilder_ErrorsNameTheField(t *testing.T) {
	_, err := validrb.NewSchema().
		Field("zip", "string", validrb.Length(0), validrb.Format("zipcode")).
		Build()
	if err == nil {
		t.Fatal("expected build error")
	}
	if !strings.Contains(err.Error(), `field "zip"`) {
		t.Fatalf("error does not name the field: %v", err)
	}
}

func TestBuilder_MisconfiguredConstraintsFailAtBuild(t *testing.T) {
	cases := []struct {
		name string
		b    *validrb.Builder
	}{
		{"non-numeric min", validrb.NewSchema().Field("n", "integer", validrb.Min("low"))},
		{"unknown format", validrb.NewSchema().Field("s", "string", validrb.Format("morse"))},
		{"empty enum", validrb.NewSchema().Field("s", "string", validrb.Enum())},
		{"empty union", validrb.NewSchema().Field("u", "union")},
		{"empty literal", validrb.NewSchema().Field("l", "literal")},
		{"nil nested schema", validrb.NewSchema().Field("o", "object", validrb.Nested(nil))},
		{"nil item type", validrb.NewSchema().Field("a", "array", validrb.OfType(nil))},
		{"nil transform", validrb.NewSchema().Field("s", "string", validrb.Transform(nil))},
		{"nil when", validrb.NewSchema().Field("s", "string", validrb.When(nil))},
		{"nil default thunk", validrb.NewSchema().Field("s", "string", validrb.DefaultFunc(nil))},
	}
	for _, tc := range cases {
		if _, err := tc.b.Build(); err == nil {
			t.Fatalf("%s: expected build error", tc.name)
		}
	}
}

func TestBuilder_MustBuildPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	validrb.NewSchema().Field("", "string").MustBuild()
}

func TestBuilder_FieldTypeBypassesRegistry(t *testing.T) {
	schema := validrb.NewSchema().
		FieldType("when", validrb.DateType()).
		MustBuild()

	res, err := schema.SafeParse(map[string]any{"when": "2024-03-05"})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors())
	}

	if _, err := validrb.NewSchema().FieldType("x", nil).Build(); err == nil {
		t.Fatal("nil type accepted")
	}
}

// A built schema is detached from its builder: further declarations on the
// builder never reach it.
func TestBuilder_BuildSnapshotsFields(t *testing.T) {
	b := validrb.NewSchema().Field("a", "string")
	first := b.MustBuild()
	b.Field("b", "string")
	second := b.MustBuild()

	if len(first.FieldNames()) != 1 {
		t.Fatalf("first schema grew: %v", first.FieldNames())
	}
	if len(second.FieldNames()) != 2 {
		t.Fatalf("second schema: %v", second.FieldNames())
	}
}

func TestBuilder_UnionMembersByName(t *testing.T) {
	schema := validrb.NewSchema().
		Field("id", "union", validrb.Members("integer", "string")).
		MustBuild()

	res, err := schema.SafeParse(map[string]any{"id": "42"})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if res.Data()["id"] != int64(42) {
		t.Fatalf("id: %#v", res.Data()["id"])
	}

	if _, err := validrb.NewSchema().Field("id", "union", validrb.Members("integer", "blob")).Build(); err == nil {
		t.Fatal("unknown member name accepted")
	}
}

func TestBuilder_LiteralField(t *testing.T) {
	schema := validrb.NewSchema().
		Field("status", "literal", validrb.Literals("draft", "published")).
		MustBuild()

	res, err := schema.SafeParse(map[string]any{"status": "draft"})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if !res.IsSuccess() {
		t.Fatalf("errors: %v", res.Errors())
	}

	res, err = schema.SafeParse(map[string]any{"status": "archived"})
	if err != nil {
		t.Fatalf("SafeParse: %v", err)
	}
	if !res.IsFailure() {
		t.Fatal("unknown literal accepted")
	}
}

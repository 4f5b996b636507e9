// Package validrb is a runtime schema/type-validation engine: a declarative
// schema accepts untyped input (form params, JSON bodies, query strings)
// and produces either a fully coerced, strictly typed output mapping or a
// path-addressed collection of errors.
//
// It provides:
//
// - A builder DSL over an injectable type/constraint registry (Builder,
//   Registry) with construction-time misconfiguration errors
// - Scalar, structural and combinator types (string through
//   discriminated_union) with exact, stable coercion rules
// - Post-coercion constraints (min/max/length/format/enum) and field-level
//   policy (optional/nullable/default/conditional/preprocess/transform/
//   refine/message)
// - A stable error model via Error/ErrorList (path, code, message) and a
//   Result sum with Map/FlatMap/ValueOr combinators
// - A pluggable message renderer under i18n
//
// Design policy:
// - Every definitional object (Schema, Field, Type, Constraint) is
//   immutable after Build; SafeParse allocates only call-local state, so
//   schemas are safe for concurrent use.
// - Validation problems are data, never panics; SafeParse returns a
//   Failure, Parse converts it to *ValidationError for error-based flow.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := validrb.NewSchema().
//		Field("name", "string", validrb.Min(2)).
//		Field("age", "integer", validrb.Optional(), validrb.Min(0)).
//		MustBuild()
//
//	res, err := s.SafeParse(map[string]any{"name": "Al", "age": "17"})
package validrb

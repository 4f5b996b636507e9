package validrb

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired             = "required"
	CodeTypeError            = "type_error"
	CodeMin                  = "min"
	CodeMax                  = "max"
	CodeLength               = "length"
	CodeFormat               = "format"
	CodeEnum                 = "enum"
	CodeRefinement           = "refinement"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeInvalidDiscriminator = "invalid_discriminator"
	CodeUnionTypeError       = "union_type_error"
)

// Construction-time misconfiguration is a programmer error and is surfaced
// immediately at schema-build time, never deferred to parse time.
var (
	ErrUnknownType       = errors.New("validrb: unknown type")
	ErrUnknownConstraint = errors.New("validrb: unknown constraint")
	ErrInvalidInput      = errors.New("validrb: input is not a key-value structure")
)

// Error represents a single validation entry. Values are immutable once
// created; aggregation copies, never mutates.
type Error struct {
	Path    Path           // Nesting position relative to the top-level SafeParse call.
	Code    string         // One of the codes listed above.
	Message string         // Rendered message.
	Params  map[string]any // Structured parameters (e.g. {"min": 2, "got": 1}) for renderers.
}

// Equal reports structural equality on path, code and message.
func (e Error) Equal(other Error) bool {
	return e.Code == other.Code && e.Message == other.Message && e.Path.Equal(other.Path)
}

func (e Error) String() string {
	if len(e.Path) == 0 {
		return e.Code + ": " + e.Message
	}
	return e.Code + " at " + e.Path.String() + ": " + e.Message
}

// ErrorList is an ordered collection of validation errors that implements
// error. Operations return new lists; an ErrorList carried by a Failure is
// never mutated afterwards.
type ErrorList []Error

// Error summarizes the first few entries.
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(el)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := el[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path.String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Add returns a new list with more appended.
func (el ErrorList) Add(more ...Error) ErrorList {
	if len(more) == 0 {
		return el
	}
	out := make(ErrorList, 0, len(el)+len(more))
	out = append(out, el...)
	out = append(out, more...)
	return out
}

// Merge returns a new list with other concatenated after el.
func (el ErrorList) Merge(other ErrorList) ErrorList {
	return el.Add(other...)
}

// ByPath returns the errors whose path equals p.
func (el ErrorList) ByPath(p Path) ErrorList {
	var out ErrorList
	for _, e := range el {
		if e.Path.Equal(p) {
			out = append(out, e)
		}
	}
	return out
}

// FilterPrefix returns the errors whose path starts with prefix.
func (el ErrorList) FilterPrefix(prefix Path) ErrorList {
	var out ErrorList
	for _, e := range el {
		if e.Path.HasPrefix(prefix) {
			out = append(out, e)
		}
	}
	return out
}

// ToMap groups messages by rendered path, suitable for attribute-style
// error bags.
func (el ErrorList) ToMap() map[string][]string {
	out := make(map[string][]string, len(el))
	for _, e := range el {
		k := e.Path.String()
		out[k] = append(out[k], e.Message)
	}
	return out
}

// Messages renders every entry as "path message" ("message" at the root).
func (el ErrorList) Messages() []string {
	out := make([]string, 0, len(el))
	for _, e := range el {
		if len(e.Path) == 0 {
			out = append(out, e.Message)
			continue
		}
		out = append(out, e.Path.String()+" "+e.Message)
	}
	return out
}

// AsErrorList extracts an ErrorList from an error using errors.As internally.
func AsErrorList(err error) (ErrorList, bool) {
	if err == nil {
		return nil, false
	}
	var el ErrorList
	if errors.As(err, &el) {
		return el, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errors, true
	}
	return nil, false
}

// ValidationError is returned by Parse when validation fails. It carries the
// original ErrorList intact; SafeParse never produces it.
type ValidationError struct {
	Errors ErrorList
}

func (e *ValidationError) Error() string {
	return "validrb: validation failed: " + e.Errors.Error()
}

// Unwrap exposes the ErrorList to errors.As chains.
func (e *ValidationError) Unwrap() error { return e.Errors }

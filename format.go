package validrb

import (
	"regexp"

	"github.com/google/uuid"
)

// namedFormats is the fixed named-format table for the format constraint.
var namedFormats = map[string]func(string) bool{
	"email":        regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`).MatchString,
	"url":          regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`).MatchString,
	"uuid":         isUUID,
	"phone":        regexp.MustCompile(`^\+?[0-9][0-9\s().-]{5,19}$`).MatchString,
	"alphanumeric": regexp.MustCompile(`^[a-zA-Z0-9]+$`).MatchString,
	"alpha":        regexp.MustCompile(`^[a-zA-Z]+$`).MatchString,
	"numeric":      regexp.MustCompile(`^-?\d+(\.\d+)?$`).MatchString,
	"hex":          regexp.MustCompile(`^[0-9a-fA-F]+$`).MatchString,
	"slug":         regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`).MatchString,
}

func isUUID(s string) bool {
	// canonical 36-char form only; uuid.Parse also accepts braced and
	// bare-hex variants which are not valid here
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// FormatNames lists the built-in named formats.
func FormatNames() []string {
	out := make([]string, 0, len(namedFormats))
	for name := range namedFormats {
		out = append(out, name)
	}
	return out
}

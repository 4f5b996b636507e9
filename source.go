package validrb

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Input helpers decode raw payload bytes into the untyped value shape
// SafeParse consumes. They are conveniences for the common web-framework
// call sites (JSON bodies, YAML/TOML config forms); callers with an already
// decoded mapping pass it to SafeParse directly.

// JSONBytes decodes a JSON document. Numbers decode as json.Number so
// integer and decimal coercion see the exact numeral instead of a float64
// round trip.
func JSONBytes(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("validrb: decode json: %w", err)
	}
	return v, nil
}

// YAMLBytes decodes a YAML document.
func YAMLBytes(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("validrb: decode yaml: %w", err)
	}
	return v, nil
}

// TOMLBytes decodes a TOML document into a key-value mapping.
func TOMLBytes(b []byte) (any, error) {
	var v map[string]any
	if err := toml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("validrb: decode toml: %w", err)
	}
	return v, nil
}

package validrb

// Context is an optional key-value side channel (current user, request
// metadata, locale) handed to conditionals, refinements and the
// preprocess/transform hooks. It is not part of the validated data. A nil
// *Context behaves like an empty one.
type Context struct {
	values map[string]any
}

// NewContext copies values into a fresh Context. The copy keeps the Context
// immutable even if the caller mutates the original map.
func NewContext(values map[string]any) *Context {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &Context{values: m}
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil.
func (c *Context) Value(key string) any {
	v, _ := c.Get(key)
	return v
}

// Len reports how many entries the context carries.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

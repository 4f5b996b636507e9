package validrb

import (
	"strconv"
	"strings"
)

// Segment is a single step in an error path: either an object key or an
// array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// KeySegment builds a key segment.
func KeySegment(k string) Segment { return Segment{key: k} }

// IndexSegment builds an index segment.
func IndexSegment(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key; empty for index segments.
func (s Segment) Key() string { return s.key }

// Index returns the array index; zero for key segments.
func (s Segment) Index() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path addresses a value relative to the top-level SafeParse call.
// Paths are value-like: Key/Index/Join return new paths and never mutate
// the receiver, so a Path held by an Error stays stable.
type Path []Segment

// Key returns a new path extended with an object key segment.
func (p Path) Key(k string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = KeySegment(k)
	return out
}

// Index returns a new path extended with an array index segment.
func (p Path) Index(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = IndexSegment(i)
	return out
}

// Join returns a new path with child appended after p.
func (p Path) Join(child Path) Path {
	if len(child) == 0 {
		return p
	}
	out := make(Path, len(p)+len(child))
	copy(out, p)
	copy(out[len(p):], child)
	return out
}

// Equal reports structural equality of two paths.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// String renders the path in attribute style, e.g. "addresses[0].zip".
// The empty path renders as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, seg := range p {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.key)
	}
	return b.String()
}

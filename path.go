package verity

import (
	"strconv"
	"strings"
)

// Segment is one step in a value path: either a map key or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a value inside nested input, from the root down.
// The zero value addresses the root.
type Path []Segment

// Field returns a new Path extended with a key segment. The receiver is
// never mutated, so paths can be shared across branches.
func (p Path) Field(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Key: name})
}

// Index returns a new Path extended with a list index segment.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: i, IsIndex: true})
}

// Join returns a new Path extended with all segments of q.
func (p Path) Join(q Path) Path {
	if len(q) == 0 {
		return p
	}
	out := make(Path, len(p), len(p)+len(q))
	copy(out, p)
	return append(out, q...)
}

// Pointer renders the path as a JSON Pointer. The root renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(strconv.Itoa(seg.Index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg.Key, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

// ParsePointer converts a JSON Pointer into a Path. Numeric segments become
// index segments. "" and "/" address the root.
func ParsePointer(s string) Path {
	if s == "" || s == "/" {
		return nil
	}
	var p Path
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if i, err := strconv.Atoi(part); err == nil {
			p = append(p, Segment{Index: i, IsIndex: true})
			continue
		}
		p = append(p, Segment{Key: part})
	}
	return p
}

package verity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorNode is the structured failure produced by validation. The closed set
// of variants is Leaf, Group, OrError, CastError and RuleError. Every variant
// implements error so a failure can be returned or logged directly.
type ErrorNode interface {
	error
	errorNode()
}

// Leaf is a single predicate failure. Args holds the predicate's declared
// arguments with the offending value appended last; the has_key? leaf is the
// one exception and carries only the missing key name.
type Leaf struct {
	Path      Path
	Predicate string
	Args      []any
}

// Group aggregates independent failures from one map or list, in declaration
// order of keys or index order of members.
type Group struct {
	Nodes []ErrorNode
}

// OrError records that both alternatives of a sum type failed.
type OrError struct {
	Left  ErrorNode
	Right ErrorNode
	Path  Path
}

// CastError wraps the input-side failure of a cast node.
type CastError struct {
	Inner ErrorNode
}

// RuleError is produced by the rule engine only.
type RuleError struct {
	Path Path
	Text string
	Meta map[string]any
}

func (*Leaf) errorNode()      {}
func (*Group) errorNode()     {}
func (*OrError) errorNode()   {}
func (*CastError) errorNode() {}
func (*RuleError) errorNode() {}

func (l *Leaf) Error() string      { return summarize(l) }
func (g *Group) Error() string     { return summarize(g) }
func (o *OrError) Error() string   { return summarize(o) }
func (c *CastError) Error() string { return summarize(c) }
func (r *RuleError) Error() string { return summarize(r) }

// Flatten collapses Group nesting into one ordered flat list. Or and Cast
// wrappers survive as single elements with their insides collapsed; a
// multi-node branch is regrouped so each wrapper still holds one node.
func Flatten(n ErrorNode) []ErrorNode {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *Group:
		var out []ErrorNode
		for _, child := range t.Nodes {
			out = append(out, Flatten(child)...)
		}
		return out
	case *OrError:
		return []ErrorNode{&OrError{
			Left:  regroup(Flatten(t.Left)),
			Right: regroup(Flatten(t.Right)),
			Path:  t.Path,
		}}
	case *CastError:
		return []ErrorNode{&CastError{Inner: regroup(Flatten(t.Inner))}}
	default:
		return []ErrorNode{n}
	}
}

// regroup folds a flat list back into a single node.
func regroup(nodes []ErrorNode) ErrorNode {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return &Group{Nodes: nodes}
}

// summarize renders the first few flattened entries, the full detail being
// the tree itself.
func summarize(n ErrorNode) string {
	flat := Flatten(n)
	if len(flat) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(flat)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(describe(flat[i]))
	}
	if len(flat) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(flat))
	}
	return b.String()
}

func describe(n ErrorNode) string {
	switch t := n.(type) {
	case *Leaf:
		return fmt.Sprintf("%s at %s", t.Predicate, t.Path.Pointer())
	case *OrError:
		return fmt.Sprintf("or(%s | %s) at %s", describe(t.Left), describe(t.Right), t.Path.Pointer())
	case *CastError:
		return "cast: " + describe(t.Inner)
	case *RuleError:
		return fmt.Sprintf("rule at %s: %s", t.Path.Pointer(), t.Text)
	case *Group:
		parts := make([]string, 0, len(t.Nodes))
		for _, child := range t.Nodes {
			parts = append(parts, describe(child))
		}
		return strings.Join(parts, "; ")
	default:
		return n.Error()
	}
}

// AsErrorNode extracts an ErrorNode from an error using errors.As internally.
func AsErrorNode(err error) (ErrorNode, bool) {
	if err == nil {
		return nil, false
	}
	var n ErrorNode
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}

// ProgrammerError reports a malformed spec: unknown primitive or predicate,
// arity mismatch, duplicate key, missing caster. It is returned at compile
// or build time and never at validation time.
type ProgrammerError struct {
	Op     string
	Detail string
}

func (e *ProgrammerError) Error() string {
	if e.Op == "" {
		return e.Detail
	}
	return e.Op + ": " + e.Detail
}

func programmerErrorf(op, format string, args ...any) *ProgrammerError {
	return &ProgrammerError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// RuleViolation is the error a rule body returns to shape its RuleError.
// Plain errors are accepted too; their Error() text becomes the rule text.
type RuleViolation struct {
	Path Path
	Text string
	Meta map[string]any
}

func (v *RuleViolation) Error() string { return v.Text }

package verity

// Outcome is the result of one validation: a materialized success value or a
// structured failure tree, never both and never partial.
type Outcome struct {
	Value any
	Path  Path
	Err   ErrorNode
}

// OK reports whether validation succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

func succeed(v any, path Path) Outcome { return Outcome{Value: v, Path: path} }

func fail(n ErrorNode) Outcome { return Outcome{Err: n} }

package verity

import (
	"fmt"
	"regexp"
)

type compiler struct {
	cfg compileConfig
}

func (c compiler) compile(s Spec) (Type, error) {
	switch n := s.(type) {
	case typeRef:
		return n.t, nil
	case TypeSpec:
		return c.compileType(n)
	case MapSpec:
		return c.compileMap(n)
	case ListSpec:
		return c.compileList(n)
	case UnionSpec:
		return c.compileUnion(n)
	case CastSpec:
		return c.compileCast(n)
	case nil:
		return nil, programmerErrorf("compile", "nil spec")
	default:
		return nil, programmerErrorf("compile", "unsupported spec %T", s)
	}
}

func (c compiler) compileType(n TypeSpec) (Type, error) {
	if !knownPrimitive(n.Primitive) {
		return nil, programmerErrorf("compile", "unknown primitive %q", n.Primitive)
	}
	preds, err := c.compilePredicates(n.Predicates)
	if err != nil {
		return nil, err
	}
	return &Primitive{
		Name:        n.Primitive,
		Constraints: withTypeCheck(n.Primitive, preds),
	}, nil
}

func (c compiler) compileMap(n MapSpec) (Type, error) {
	seen := make(map[string]bool, len(n.Keys))
	keys := make([]Key, 0, len(n.Keys))
	for _, ks := range n.Keys {
		if ks.Name == "" {
			return nil, programmerErrorf("compile", "map key with empty name")
		}
		if seen[ks.Name] {
			return nil, programmerErrorf("compile", "duplicate key %q", ks.Name)
		}
		seen[ks.Name] = true

		child, err := c.compile(ks.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", ks.Name, err)
		}
		presence := ks.Presence
		if presence == PresenceDefault {
			presence = c.cfg.defaultPresence
		}
		keys = append(keys, Key{
			Path:     Path{}.Field(ks.Name),
			Presence: presence,
			Type:     child,
		})
	}
	return &MapType{
		Keys:        keys,
		Atomize:     c.cfg.atomize,
		Constraints: withTypeCheck(PrimMap, nil),
	}, nil
}

func (c compiler) compileList(n ListSpec) (Type, error) {
	if n.Member == nil {
		return nil, programmerErrorf("compile", "list spec without member")
	}
	member, err := c.compile(n.Member)
	if err != nil {
		return nil, err
	}
	preds, err := c.compilePredicates(n.Predicates)
	if err != nil {
		return nil, err
	}
	return &ListType{
		Member:      member,
		Constraints: withTypeCheck(PrimList, preds),
	}, nil
}

func (c compiler) compileUnion(n UnionSpec) (Type, error) {
	if n.Left == nil || n.Right == nil {
		return nil, programmerErrorf("compile", "union spec requires both branches")
	}
	left, err := c.compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Right)
	if err != nil {
		return nil, err
	}
	return &SumType{Left: left, Right: right}, nil
}

func (c compiler) compileCast(n CastSpec) (Type, error) {
	if n.Input == nil || n.Output == nil {
		return nil, programmerErrorf("compile", "cast spec requires input and output")
	}
	if !c.cfg.casting {
		return c.compile(n.Input)
	}
	input, err := c.compile(n.Input)
	if err != nil {
		return nil, err
	}
	output, err := c.compile(n.Output)
	if err != nil {
		return nil, err
	}
	inPrim, ok := primitiveName(input)
	if !ok {
		return nil, programmerErrorf("compile", "cast input must name a primitive")
	}
	outPrim, ok := primitiveName(output)
	if !ok {
		return nil, programmerErrorf("compile", "cast output must name a primitive")
	}
	if n.Opts.Caster == nil {
		if _, ok := casterFor(inPrim, outPrim); !ok {
			return nil, programmerErrorf("compile", "no caster registered for %s => %s", inPrim, outPrim)
		}
	}
	return &CastType{Input: input, Output: output, Opts: n.Opts}, nil
}

// compilePredicates resolves names against the registry and normalizes
// arguments so validation can run them blind.
func (c compiler) compilePredicates(preds []Predicate) ([]Predicate, error) {
	if len(preds) == 0 {
		return nil, nil
	}
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		entry, ok := predicateByName(p.Name)
		if !ok {
			return nil, programmerErrorf("compile", "unknown predicate %q", p.Name)
		}
		if entry.arity >= 0 && len(p.Args) != entry.arity {
			return nil, programmerErrorf("compile", "predicate %q wants %d argument(s), got %d", p.Name, entry.arity, len(p.Args))
		}
		args, err := normalizeArgs(p.Name, p.Args)
		if err != nil {
			return nil, err
		}
		out = append(out, Predicate{Name: p.Name, Args: args})
	}
	return out, nil
}

func normalizeArgs(name string, args []any) ([]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]any, len(args))
	copy(out, args)
	switch name {
	case PredMatch:
		switch a := out[0].(type) {
		case *regexp.Regexp:
		case string:
			re, err := regexp.Compile(a)
			if err != nil {
				return nil, programmerErrorf("compile", "match? pattern: %v", err)
			}
			out[0] = re
		default:
			return nil, programmerErrorf("compile", "match? wants a pattern string or *regexp.Regexp, got %T", args[0])
		}
	case PredType:
		prim, ok := out[0].(string)
		if !ok || !knownPrimitive(prim) {
			return nil, programmerErrorf("compile", "type? wants a known primitive name, got %v", args[0])
		}
	case PredSize, PredMaxSize, PredMinSize:
		if _, ok := intArg(out[0]); !ok {
			return nil, programmerErrorf("compile", "%s wants an integer, got %T", name, args[0])
		}
	}
	return out, nil
}

// withTypeCheck prepends the implicit type? guard so every compiled node
// checks its primitive before any user constraint runs.
func withTypeCheck(prim string, preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds)+1)
	out = append(out, Predicate{Name: PredType, Args: []any{prim}})
	out = append(out, preds...)
	return out
}

package verity

import "reflect"

// validateAt dispatches on the compiled node kind. Every branch either
// returns a success carrying the (possibly rebuilt) value or a failure
// carrying an error tree rooted at path.
func validateAt(v any, t Type, path Path) Outcome {
	switch n := t.(type) {
	case *Primitive:
		return validatePrimitive(v, n, path)
	case *MapType:
		return validateMap(v, n, path)
	case *ListType:
		return validateList(v, n, path)
	case *SumType:
		return validateSum(v, n, path)
	case *CastType:
		return validateCast(v, n, path)
	default:
		return succeed(v, path)
	}
}

// validatePrimitive runs constraints in order and stops at the first miss,
// so a type? failure suppresses the noise the remaining checks would add.
func validatePrimitive(v any, n *Primitive, path Path) Outcome {
	for _, p := range n.Constraints {
		if !evalPredicate(p, v) {
			return fail(&Leaf{Path: path, Predicate: p.Name, Args: leafArgs(p, v)})
		}
	}
	return succeed(v, path)
}

func validateMap(v any, n *MapType, path Path) Outcome {
	input := v
	if n.Atomize {
		input = atomizeValue(input, n.Keys)
	}
	for _, p := range n.Constraints {
		if !evalPredicate(p, input) {
			return fail(&Leaf{Path: path, Predicate: p.Name, Args: leafArgs(p, input)})
		}
	}

	var failures []ErrorNode
	output := make(map[string]any, len(n.Keys))
	for _, key := range n.Keys {
		val, present := valueAtPath(input, key.Path)
		if !present {
			if key.Presence == Required {
				failures = append(failures, &Leaf{
					Path:      path,
					Predicate: PredHasKey,
					Args:      []any{key.Path[0].Key},
				})
			}
			continue
		}
		child := validateAt(val, key.Type, path.Join(key.Path))
		if !child.OK() {
			failures = append(failures, child.Err)
			continue
		}
		setValueAt(output, key.Path, child.Value)
	}
	if len(failures) > 0 {
		return fail(regroup(failures))
	}
	return succeed(output, path)
}

func validateList(v any, n *ListType, path Path) Outcome {
	for _, p := range n.Constraints {
		if !evalPredicate(p, v) {
			return fail(&Leaf{Path: path, Predicate: p.Name, Args: leafArgs(p, v)})
		}
	}

	elems := listElems(v)
	var failures []ErrorNode
	output := make([]any, 0, len(elems))
	for i, elem := range elems {
		child := validateAt(elem, n.Member, path.Index(i))
		if !child.OK() {
			failures = append(failures, child.Err)
			continue
		}
		output = append(output, child.Value)
	}
	if len(failures) > 0 {
		return fail(regroup(failures))
	}
	return succeed(output, path)
}

// validateSum tries left first; a left success wins outright and the right
// branch never runs.
func validateSum(v any, n *SumType, path Path) Outcome {
	left := validateAt(v, n.Left, path)
	if left.OK() {
		return left
	}
	right := validateAt(v, n.Right, path)
	if right.OK() {
		return right
	}
	return fail(&OrError{Left: left.Err, Right: right.Err, Path: path})
}

// validateCast validates the input side, converts, then validates the
// converted value against the output side. The output outcome is returned
// as-is: callers see the cast result at the same path.
func validateCast(v any, n *CastType, path Path) Outcome {
	in := validateAt(v, n.Input, path)
	if !in.OK() {
		return fail(&CastError{Inner: in.Err})
	}

	outPrim, _ := primitiveName(n.Output)
	fn := n.Opts.Caster
	if fn == nil {
		inPrim, _ := primitiveName(n.Input)
		fn, _ = casterFor(inPrim, outPrim)
	}
	if fn == nil {
		return fail(&CastError{Inner: &Leaf{Path: path, Predicate: PredType, Args: []any{outPrim, in.Value}}})
	}
	out, ok := fn(in.Value, n.Opts)
	if !ok {
		return fail(&CastError{Inner: &Leaf{Path: path, Predicate: PredType, Args: []any{outPrim, in.Value}}})
	}
	return validateAt(out, n.Output, path)
}

// leafArgs appends the offending value after the declared arguments, except
// for has_key? whose single argument is the key name itself.
func leafArgs(p Predicate, v any) []any {
	if p.Name == PredHasKey {
		out := make([]any, len(p.Args))
		copy(out, p.Args)
		return out
	}
	out := make([]any, 0, len(p.Args)+1)
	out = append(out, p.Args...)
	out = append(out, v)
	return out
}

// atomizeValue rebuilds a map container as map[string]any keeping only
// declared field names. Non-map values pass through untouched.
func atomizeValue(v any, keys []Key) any {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k.Path) > 0 && !k.Path[0].IsIndex {
			names = append(names, k.Path[0].Key)
		}
	}
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(names))
		for _, name := range names {
			if val, ok := m[name]; ok {
				out[name] = val
			}
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(names))
		for _, name := range names {
			if val, ok := m[name]; ok {
				out[name] = val
			}
		}
		return out
	default:
		return v
	}
}

// valueAtPath walks key and index segments through maps and lists. Any miss
// along the way reports absence.
func valueAtPath(v any, path Path) (any, bool) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex {
			list, ok := cur.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(list) {
				return nil, false
			}
			cur = list[seg.Index]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg.Key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setValueAt writes v into out under path, materializing intermediate maps.
// Compiled map keys only produce key segments, so index segments never
// reach here.
func setValueAt(out map[string]any, path Path, v any) {
	cur := out
	for i, seg := range path {
		if i == len(path)-1 {
			cur[seg.Key] = v
			return
		}
		next, ok := cur[seg.Key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg.Key] = next
		}
		cur = next
	}
}

func listElems(v any) []any {
	if elems, ok := v.([]any); ok {
		return elems
	}
	if !isListValue(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

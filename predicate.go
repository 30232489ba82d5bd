package verity

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// PredicateFunc checks a value against the predicate's declared arguments.
// Args carries the declared arguments only; the value arrives separately.
type PredicateFunc func(value any, args []any) bool

// Built-in predicate names. Leaf.Predicate carries these verbatim.
const (
	PredType     = "type?"
	PredFilled   = "filled?"
	PredEmpty    = "empty?"
	PredEql      = "eql?"
	PredNotEql   = "not_eql?"
	PredGt       = "gt?"
	PredGtEq     = "gteq?"
	PredLt       = "lt?"
	PredLtEq     = "lteq?"
	PredSize     = "size?"
	PredMaxSize  = "max_size?"
	PredMinSize  = "min_size?"
	PredIncludes = "includes?"
	PredExcludes = "excludes?"
	PredMatch    = "match?"
	PredEven     = "even?"
	PredOdd      = "odd?"
	PredUUID     = "uuid?"
	PredHasKey   = "has_key?"
)

type predicateEntry struct {
	fn    PredicateFunc
	arity int
}

var (
	predMu  sync.RWMutex
	predTab = builtinPredicates()
)

// RegisterPredicate adds a named predicate to the process-wide registry.
// The registry is append-only: re-registering a name is an error. Register
// at startup, before schemas compile against the name.
func RegisterPredicate(name string, arity int, fn PredicateFunc) error {
	if name == "" || fn == nil {
		return programmerErrorf("RegisterPredicate", "name and fn are required")
	}
	if arity < 0 {
		return programmerErrorf("RegisterPredicate", "negative arity for %s", name)
	}
	predMu.Lock()
	defer predMu.Unlock()
	if _, ok := predTab[name]; ok {
		return programmerErrorf("RegisterPredicate", "predicate %s already registered", name)
	}
	predTab[name] = predicateEntry{fn: fn, arity: arity}
	return nil
}

func predicateByName(name string) (predicateEntry, bool) {
	predMu.RLock()
	defer predMu.RUnlock()
	e, ok := predTab[name]
	return e, ok
}

func evalPredicate(p Predicate, value any) bool {
	e, ok := predicateByName(p.Name)
	if !ok {
		return false
	}
	return e.fn(value, p.Args)
}

func builtinPredicates() map[string]predicateEntry {
	return map[string]predicateEntry{
		PredType:   {arity: 1, fn: func(v any, args []any) bool { n, _ := args[0].(string); return typeCheck(n, v) }},
		PredFilled: {arity: 0, fn: func(v any, _ []any) bool { return !isEmptyValue(v) }},
		PredEmpty:  {arity: 0, fn: func(v any, _ []any) bool { return isEmptyValue(v) }},
		PredEql:    {arity: 1, fn: func(v any, args []any) bool { return eqValues(v, args[0]) }},
		PredNotEql: {arity: 1, fn: func(v any, args []any) bool { return !eqValues(v, args[0]) }},
		PredGt:     {arity: 1, fn: func(v any, args []any) bool { c, ok := compareValues(v, args[0]); return ok && c > 0 }},
		PredGtEq:   {arity: 1, fn: func(v any, args []any) bool { c, ok := compareValues(v, args[0]); return ok && c >= 0 }},
		PredLt:     {arity: 1, fn: func(v any, args []any) bool { c, ok := compareValues(v, args[0]); return ok && c < 0 }},
		PredLtEq:   {arity: 1, fn: func(v any, args []any) bool { c, ok := compareValues(v, args[0]); return ok && c <= 0 }},
		PredSize: {arity: 1, fn: func(v any, args []any) bool {
			n, ok := intArg(args[0])
			s, sok := sizeOf(v)
			return ok && sok && int64(s) == n
		}},
		PredMaxSize: {arity: 1, fn: func(v any, args []any) bool {
			n, ok := intArg(args[0])
			s, sok := sizeOf(v)
			return ok && sok && int64(s) <= n
		}},
		PredMinSize: {arity: 1, fn: func(v any, args []any) bool {
			n, ok := intArg(args[0])
			s, sok := sizeOf(v)
			return ok && sok && int64(s) >= n
		}},
		PredIncludes: {arity: 1, fn: func(v any, args []any) bool { return containsValue(v, args[0]) }},
		PredExcludes: {arity: 1, fn: func(v any, args []any) bool { return !containsValue(v, args[0]) }},
		PredMatch:    {arity: 1, fn: matchPredicate},
		PredEven: {arity: 0, fn: func(v any, _ []any) bool {
			i, ok := intArg(v)
			return ok && i%2 == 0
		}},
		PredOdd: {arity: 0, fn: func(v any, _ []any) bool {
			i, ok := intArg(v)
			return ok && i%2 != 0
		}},
		PredUUID: {arity: 0, fn: func(v any, _ []any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		}},
		PredHasKey: {arity: 1, fn: func(v any, args []any) bool {
			name, _ := args[0].(string)
			m, ok := v.(map[string]any)
			if !ok {
				return false
			}
			_, ok = m[name]
			return ok
		}},
	}
}

func matchPredicate(v any, args []any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch re := args[0].(type) {
	case *regexp.Regexp:
		return re.MatchString(s)
	case string:
		compiled, err := regexp.Compile(re)
		return err == nil && compiled.MatchString(s)
	default:
		return false
	}
}

// ---- value classification ----

func typeCheck(name string, v any) bool {
	switch name {
	case PrimAny:
		return true
	case PrimNil:
		return v == nil
	case PrimString:
		_, ok := v.(string)
		return ok
	case PrimInteger:
		_, ok := intArg(v)
		return ok
	case PrimFloat:
		return isFloat(v)
	case PrimNumber:
		if _, ok := intArg(v); ok {
			return true
		}
		return isFloat(v)
	case PrimBoolean:
		_, ok := v.(bool)
		return ok
	case PrimMap:
		return isMapValue(v)
	case PrimList:
		return isListValue(v)
	case PrimDateTime:
		_, ok := v.(time.Time)
		return ok
	default:
		return false
	}
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func isMapValue(v any) bool {
	switch v.(type) {
	case map[string]any, map[any]any:
		return true
	}
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

func isListValue(v any) bool {
	switch v.(type) {
	case []any:
		return true
	case []byte, string, nil:
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// intArg extracts an integer from any integer kind. Floats are rejected even
// when integral; 21.0 is not an integer.
func intArg(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}

func floatArg(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		if i, ok := intArg(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// isEmptyValue reports nil, "", empty list or empty map.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case map[any]any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

// eqValues compares loosely across numeric kinds and exactly otherwise.
func eqValues(a, b any) bool {
	if af, aok := floatArg(a); aok {
		if bf, bok := floatArg(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two numbers or two strings; anything else does not
// compare.
func compareValues(a, b any) (int, bool) {
	if af, aok := floatArg(a); aok {
		bf, bok := floatArg(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

// sizeOf measures strings in runes and collections in elements.
func sizeOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []any:
		return len(t), true
	case map[string]any:
		return len(t), true
	case map[any]any:
		return len(t), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func containsValue(v, elem any) bool {
	switch t := v.(type) {
	case string:
		s, ok := elem.(string)
		return ok && strings.Contains(t, s)
	case []any:
		for _, item := range t {
			if eqValues(item, elem) {
				return true
			}
		}
		return false
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if eqValues(rv.Index(i).Interface(), elem) {
				return true
			}
		}
	}
	return false
}

package verity

import (
	"strconv"
	"sync"
	"time"
)

// CasterFunc transforms a value that already passed its input type. A false
// result folds into a type failure naming the target primitive; casters
// never panic.
type CasterFunc func(value any, opts CastOpts) (any, bool)

// CastOpts configures a single cast node.
type CastOpts struct {
	// Caster overrides registry dispatch for this node.
	Caster CasterFunc
	// Unit selects the epoch unit for integer→date_time conversion.
	Unit string
}

// Units recognized by the integer→date_time caster. An empty unit means
// seconds.
const (
	UnitSecond      = "second"
	UnitMillisecond = "millisecond"
)

type casterKey struct {
	in  string
	out string
}

var (
	castMu  sync.RWMutex
	castTab = builtinCasters()
)

// RegisterCaster adds a caster for the given primitive pair. The registry is
// append-only: re-registering a pair is an error.
func RegisterCaster(in, out string, fn CasterFunc) error {
	if in == "" || out == "" || fn == nil {
		return programmerErrorf("RegisterCaster", "input, output and fn are required")
	}
	castMu.Lock()
	defer castMu.Unlock()
	k := casterKey{in: in, out: out}
	if _, ok := castTab[k]; ok {
		return programmerErrorf("RegisterCaster", "caster %s->%s already registered", in, out)
	}
	castTab[k] = fn
	return nil
}

func casterFor(in, out string) (CasterFunc, bool) {
	castMu.RLock()
	defer castMu.RUnlock()
	fn, ok := castTab[casterKey{in: in, out: out}]
	return fn, ok
}

func builtinCasters() map[casterKey]CasterFunc {
	return map[casterKey]CasterFunc{
		{in: PrimString, out: PrimInteger}: func(v any, _ CastOpts) (any, bool) {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, false
			}
			return i, true
		},
		{in: PrimInteger, out: PrimString}: func(v any, _ CastOpts) (any, bool) {
			i, ok := intArg(v)
			if !ok {
				return nil, false
			}
			return strconv.FormatInt(i, 10), true
		},
		{in: PrimString, out: PrimFloat}: func(v any, _ CastOpts) (any, bool) {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false
			}
			return f, true
		},
		{in: PrimInteger, out: PrimDateTime}: func(v any, opts CastOpts) (any, bool) {
			i, ok := intArg(v)
			if !ok {
				return nil, false
			}
			switch opts.Unit {
			case "", UnitSecond:
				return time.Unix(i, 0).UTC(), true
			case UnitMillisecond:
				return time.UnixMilli(i).UTC(), true
			default:
				return nil, false
			}
		},
		{in: PrimString, out: PrimDateTime}: func(v any, _ CastOpts) (any, bool) {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			t, err := parseRFC3339(s)
			if err != nil {
				return nil, false
			}
			return t, true
		},
	}
}

// parseRFC3339 accepts RFC3339Nano (trailing zeros optional) and plain
// RFC3339.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

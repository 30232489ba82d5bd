package dsl

import (
	verity "github.com/verity-go/verity"
)

// Filled rejects empty strings, lists and maps.
func Filled() verity.Predicate { return verity.Predicate{Name: verity.PredFilled} }

// Empty accepts only empty strings, lists and maps.
func Empty() verity.Predicate { return verity.Predicate{Name: verity.PredEmpty} }

// Eql requires equality with want.
func Eql(want any) verity.Predicate {
	return verity.Predicate{Name: verity.PredEql, Args: []any{want}}
}

// NotEql rejects equality with want.
func NotEql(want any) verity.Predicate {
	return verity.Predicate{Name: verity.PredNotEql, Args: []any{want}}
}

// Gt requires value > bound.
func Gt(bound any) verity.Predicate {
	return verity.Predicate{Name: verity.PredGt, Args: []any{bound}}
}

// Gteq requires value >= bound.
func Gteq(bound any) verity.Predicate {
	return verity.Predicate{Name: verity.PredGtEq, Args: []any{bound}}
}

// Lt requires value < bound.
func Lt(bound any) verity.Predicate {
	return verity.Predicate{Name: verity.PredLt, Args: []any{bound}}
}

// Lteq requires value <= bound.
func Lteq(bound any) verity.Predicate {
	return verity.Predicate{Name: verity.PredLtEq, Args: []any{bound}}
}

// Size requires exact size; strings count runes.
func Size(n int) verity.Predicate {
	return verity.Predicate{Name: verity.PredSize, Args: []any{n}}
}

// MaxSize bounds size from above.
func MaxSize(n int) verity.Predicate {
	return verity.Predicate{Name: verity.PredMaxSize, Args: []any{n}}
}

// MinSize bounds size from below.
func MinSize(n int) verity.Predicate {
	return verity.Predicate{Name: verity.PredMinSize, Args: []any{n}}
}

// Includes requires membership: substring for strings, element for lists.
func Includes(member any) verity.Predicate {
	return verity.Predicate{Name: verity.PredIncludes, Args: []any{member}}
}

// Excludes rejects membership.
func Excludes(member any) verity.Predicate {
	return verity.Predicate{Name: verity.PredExcludes, Args: []any{member}}
}

// Match requires the string to match pattern, given as a pattern string or
// a *regexp.Regexp. Pattern strings are compiled once, at schema compile.
func Match(pattern any) verity.Predicate {
	return verity.Predicate{Name: verity.PredMatch, Args: []any{pattern}}
}

// Even requires an even integer.
func Even() verity.Predicate { return verity.Predicate{Name: verity.PredEven} }

// Odd requires an odd integer.
func Odd() verity.Predicate { return verity.Predicate{Name: verity.PredOdd} }

// UUID requires an RFC 4122 string form.
func UUID() verity.Predicate { return verity.Predicate{Name: verity.PredUUID} }

// Check references any registered predicate by name, custom ones included.
func Check(name string, args ...any) verity.Predicate {
	return verity.Predicate{Name: name, Args: args}
}

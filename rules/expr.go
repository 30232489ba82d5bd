package rules

import (
	"fmt"

	"github.com/expr-lang/expr"

	verity "github.com/verity-go/verity"
)

// Deny compiles a boolean expression over the validated value and returns a
// rule that fails when the expression evaluates to true. The value is bound
// as `record`, so "record.age < 18" denies minors. Missing map keys read as
// nil inside the expression.
func Deny(name, expression, text string) (verity.Rule, error) {
	prog, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return verity.Rule{}, fmt.Errorf("rules: compile %q: %w", name, err)
	}
	if text == "" {
		text = "expression rule violated"
	}
	return verity.Rule{
		Name: name,
		Body: func(v any) error {
			out, err := expr.Run(prog, map[string]any{"record": v})
			if err != nil {
				return &verity.RuleViolation{Text: fmt.Sprintf("rule evaluation error: %v", err)}
			}
			if violated, ok := out.(bool); ok && violated {
				return &verity.RuleViolation{Text: text}
			}
			return nil
		},
	}, nil
}

// MustDeny is Deny that panics on a bad expression.
func MustDeny(name, expression, text string) verity.Rule {
	r, err := Deny(name, expression, text)
	if err != nil {
		panic(err)
	}
	return r
}

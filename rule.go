package verity

import "errors"

// Rule is a named cross-field check that runs against the fully validated
// root value. Guard gates the body: a false guard skips the rule outright,
// which keeps conditional rules quiet when their precondition does not hold.
type Rule struct {
	Name  string
	Guard func(value any) bool
	Body  func(value any) error
}

// runRules evaluates rules in declaration order and collects every failure.
// One rule failing never stops the rest.
func runRules(value any, rules []Rule) []ErrorNode {
	var failures []ErrorNode
	for _, r := range rules {
		if r.Body == nil {
			continue
		}
		if r.Guard != nil && !r.Guard(value) {
			continue
		}
		if err := r.Body(value); err != nil {
			failures = append(failures, ruleErrorFrom(r, err))
		}
	}
	return failures
}

// ruleErrorFrom lifts a rule body error into the error tree. A *RuleViolation
// carries its own path, text and meta; any other error contributes its
// message at the root path.
func ruleErrorFrom(r Rule, err error) *RuleError {
	node := &RuleError{Text: err.Error()}
	var v *RuleViolation
	if errors.As(err, &v) {
		node.Path = v.Path
		node.Text = v.Text
		if len(v.Meta) > 0 {
			node.Meta = make(map[string]any, len(v.Meta)+1)
			for k, mv := range v.Meta {
				node.Meta[k] = mv
			}
		}
	}
	if r.Name != "" {
		if node.Meta == nil {
			node.Meta = make(map[string]any, 1)
		}
		node.Meta["rule"] = r.Name
	}
	return node
}

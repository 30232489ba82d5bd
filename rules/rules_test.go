package rules_test

import (
	"errors"
	"strings"
	"testing"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/rules"
)

func violation(t *testing.T, err error) *verity.RuleViolation {
	t.Helper()
	var v *verity.RuleViolation
	if !errors.As(err, &v) {
		t.Fatalf("expected a rule violation, got %T: %v", err, err)
	}
	return v
}

func TestGuards_KeyPresent(t *testing.T) {
	g := rules.KeyPresent("/login")
	if !g(map[string]any{"login": nil}) {
		t.Fatalf("a key bound to nil is present")
	}
	if g(map[string]any{}) {
		t.Fatalf("an absent key is not present")
	}
	if g("not a map") {
		t.Fatalf("non-map values have no keys")
	}
}

func TestGuards_KeyEqualsComparesNumbersLoosely(t *testing.T) {
	g := rules.KeyEquals("/n", 2)
	if !g(map[string]any{"n": int64(2)}) {
		t.Fatalf("int64(2) must equal 2")
	}
	if !g(map[string]any{"n": 2.0}) {
		t.Fatalf("2.0 must equal 2")
	}
	if g(map[string]any{"n": 3}) {
		t.Fatalf("3 must not equal 2")
	}
	if g(map[string]any{}) {
		t.Fatalf("absence never equals")
	}
}

func TestGuards_PointersWalkIndexes(t *testing.T) {
	v := map[string]any{"tags": []any{"a", "b"}}
	if !rules.KeyEquals("/tags/1", "b")(v) {
		t.Fatalf("index segment lookup failed")
	}
	if rules.KeyPresent("/tags/5")(v) {
		t.Fatalf("out of range index is absent")
	}
}

func TestGuards_AllNil(t *testing.T) {
	g := rules.AllNil("/a", "/b")
	if !g(map[string]any{"a": nil, "b": nil}) {
		t.Fatalf("both nil must hold")
	}
	if g(map[string]any{"a": nil}) {
		t.Fatalf("an absent key does not count as nil")
	}
	if g(map[string]any{"a": nil, "b": "x"}) {
		t.Fatalf("a bound value is not nil")
	}
}

func TestGuards_Combinators(t *testing.T) {
	yes := rules.Always
	no := rules.Not(rules.Always)

	if no(nil) {
		t.Fatalf("Not(Always) must never hold")
	}
	if !rules.All(yes, yes)(nil) || rules.All(yes, no)(nil) {
		t.Fatalf("All mismatch")
	}
	if !rules.Any(no, yes)(nil) || rules.Any(no, no)(nil) {
		t.Fatalf("Any mismatch")
	}
}

func TestBodies_ShapeTheViolation(t *testing.T) {
	v := violation(t, rules.Fail("nope")(nil))
	if v.Text != "nope" || v.Path != nil {
		t.Fatalf("Fail mismatch: %#v", v)
	}

	v = violation(t, rules.Failf("bad %s: %d", "count", 3)(nil))
	if v.Text != "bad count: 3" {
		t.Fatalf("Failf mismatch: %q", v.Text)
	}

	v = violation(t, rules.FailAt("/user/email", "taken")(nil))
	if v.Path.Pointer() != "/user/email" || v.Text != "taken" {
		t.Fatalf("FailAt mismatch: %#v", v)
	}

	v = violation(t, rules.FailWith("/n", "too big", map[string]any{"max": 10})(nil))
	if v.Path.Pointer() != "/n" || v.Meta["max"] != 10 {
		t.Fatalf("FailWith mismatch: %#v", v)
	}
}

func TestDeny_FailsWhenExpressionIsTrue(t *testing.T) {
	r, err := rules.Deny("adults-only", "record.age < 18", "must be an adult")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	if err := r.Body(map[string]any{"age": 21}); err != nil {
		t.Fatalf("21 must pass: %v", err)
	}
	v := violation(t, r.Body(map[string]any{"age": 17}))
	if v.Text != "must be an adult" {
		t.Fatalf("text mismatch: %q", v.Text)
	}
}

func TestDeny_EmptyTextGetsDefault(t *testing.T) {
	r, err := rules.Deny("always", "true", "")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	v := violation(t, r.Body(map[string]any{}))
	if v.Text != "expression rule violated" {
		t.Fatalf("text mismatch: %q", v.Text)
	}
}

func TestDeny_RuntimeErrorBecomesViolation(t *testing.T) {
	r, err := rules.Deny("adults-only", "record.age < 18", "must be an adult")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	v := violation(t, r.Body(map[string]any{"name": "jane"}))
	if !strings.HasPrefix(v.Text, "rule evaluation error:") {
		t.Fatalf("expected an evaluation error, got %q", v.Text)
	}
}

func TestDeny_RejectsBadExpressions(t *testing.T) {
	if _, err := rules.Deny("broken", "record.age <", ""); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestMustDeny_PanicsOnBadExpression(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	rules.MustDeny("broken", "((", "")
}

package schemafile

import (
	"fmt"
	"os"
	"strings"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/rules"
)

// Spec builds the declarative spec from the document's key list.
func (d *Document) Spec() (verity.Spec, error) {
	if len(d.Keys) == 0 {
		return nil, fmt.Errorf("schemafile: document %q has no keys", d.Name)
	}
	return buildMap(d.Keys)
}

// CompileOptions translates the options block.
func (d *Document) CompileOptions() ([]verity.Option, error) {
	var opts []verity.Option
	switch strings.ToLower(d.Options.DefaultPresence) {
	case "":
	case "required":
		opts = append(opts, verity.DefaultPresence(verity.Required))
	case "optional":
		opts = append(opts, verity.DefaultPresence(verity.Optional))
	default:
		return nil, fmt.Errorf("schemafile: unknown default_presence %q", d.Options.DefaultPresence)
	}
	if d.Options.Atomize {
		opts = append(opts, verity.Atomize(true))
	}
	if d.Options.Casting != nil {
		opts = append(opts, verity.Casting(*d.Options.Casting))
	}
	return opts, nil
}

// RuleSet compiles the deny rules in document order.
func (d *Document) RuleSet() ([]verity.Rule, error) {
	if len(d.Rules) == 0 {
		return nil, nil
	}
	out := make([]verity.Rule, 0, len(d.Rules))
	for _, r := range d.Rules {
		if r.Deny == "" {
			return nil, fmt.Errorf("schemafile: rule %q has no deny expression", r.Name)
		}
		rule, err := rules.Deny(r.Name, r.Deny, r.Text)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

// Contract assembles spec, options and rules into a ready contract.
func (d *Document) Contract() (*verity.Contract, error) {
	spec, err := d.Spec()
	if err != nil {
		return nil, err
	}
	opts, err := d.CompileOptions()
	if err != nil {
		return nil, err
	}
	rs, err := d.RuleSet()
	if err != nil {
		return nil, err
	}
	return verity.NewContract().Schema(spec, opts...).Rules(rs...).Build()
}

// Load reads a schema file and builds its contract.
func Load(path string) (*verity.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	doc, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return doc.Contract()
}

func buildMap(fields []FieldDoc) (verity.Spec, error) {
	keys := make([]verity.KeySpec, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schemafile: key without a name")
		}
		value, err := buildNode(f.NodeDoc)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", f.Name, err)
		}
		presence, err := parsePresence(f.Presence)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", f.Name, err)
		}
		keys = append(keys, verity.KeySpec{Name: f.Name, Presence: presence, Value: value})
	}
	return verity.MapSpec{Keys: keys}, nil
}

func buildNode(n NodeDoc) (verity.Spec, error) {
	forms := 0
	if n.Type != "" {
		forms++
	}
	if len(n.Keys) > 0 {
		forms++
	}
	if n.List != nil {
		forms++
	}
	if len(n.Union) > 0 {
		forms++
	}
	if n.Cast != nil {
		forms++
	}
	if forms != 1 {
		return nil, fmt.Errorf("schemafile: node needs exactly one of type/keys/list/union/cast")
	}

	switch {
	case n.Type != "":
		preds, err := buildChecks(n.Checks)
		if err != nil {
			return nil, err
		}
		return verity.TypeSpec{Primitive: n.Type, Predicates: preds}, nil
	case len(n.Keys) > 0:
		return buildMap(n.Keys)
	case n.List != nil:
		member, err := buildNode(*n.List)
		if err != nil {
			return nil, err
		}
		preds, err := buildChecks(n.Checks)
		if err != nil {
			return nil, err
		}
		return verity.ListSpec{Member: member, Predicates: preds}, nil
	case len(n.Union) > 0:
		if len(n.Union) < 2 {
			return nil, fmt.Errorf("schemafile: union needs at least two alternatives")
		}
		specs := make([]verity.Spec, len(n.Union))
		for i, alt := range n.Union {
			s, err := buildNode(alt)
			if err != nil {
				return nil, err
			}
			specs[i] = s
		}
		out := specs[len(specs)-1]
		for i := len(specs) - 2; i >= 0; i-- {
			out = verity.UnionSpec{Left: specs[i], Right: out}
		}
		return out, nil
	default:
		if n.Cast.Input == nil || n.Cast.Output == nil {
			return nil, fmt.Errorf("schemafile: cast needs input and output")
		}
		input, err := buildNode(*n.Cast.Input)
		if err != nil {
			return nil, err
		}
		output, err := buildNode(*n.Cast.Output)
		if err != nil {
			return nil, err
		}
		return verity.CastSpec{Input: input, Output: output, Opts: verity.CastOpts{Unit: n.Cast.Unit}}, nil
	}
}

func buildChecks(checks []CheckDoc) ([]verity.Predicate, error) {
	if len(checks) == 0 {
		return nil, nil
	}
	out := make([]verity.Predicate, 0, len(checks))
	for _, c := range checks {
		if c.Name == "" {
			return nil, fmt.Errorf("schemafile: check without a name")
		}
		name := c.Name
		if !strings.HasSuffix(name, "?") {
			name += "?"
		}
		out = append(out, verity.Predicate{Name: name, Args: c.Args})
	}
	return out, nil
}

func parsePresence(s string) (verity.Presence, error) {
	switch strings.ToLower(s) {
	case "":
		return verity.PresenceDefault, nil
	case "required":
		return verity.Required, nil
	case "optional":
		return verity.Optional, nil
	default:
		return verity.PresenceDefault, fmt.Errorf("schemafile: unknown presence %q", s)
	}
}

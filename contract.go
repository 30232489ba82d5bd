package verity

// Contract pairs a compiled schema with post-validation rules. Build one at
// startup (or MustBuild into a package variable) and conform inputs against
// it from any goroutine.
type Contract struct {
	typ   Type
	rules []Rule
}

// ContractBuilder assembles a Contract. Schema is mandatory; Rules appends
// and may be called more than once.
type ContractBuilder struct {
	spec  Spec
	opts  []Option
	rules []Rule
}

// NewContract starts an empty builder.
func NewContract() *ContractBuilder { return &ContractBuilder{} }

// Schema sets the spec and its compile options, replacing any earlier call.
func (b *ContractBuilder) Schema(spec Spec, opts ...Option) *ContractBuilder {
	b.spec = spec
	b.opts = opts
	return b
}

// Rules appends cross-field rules in the order they should run.
func (b *ContractBuilder) Rules(rules ...Rule) *ContractBuilder {
	b.rules = append(b.rules, rules...)
	return b
}

// Build compiles the schema and freezes the rule list. Authoring mistakes
// come back as *ProgrammerError.
func (b *ContractBuilder) Build() (*Contract, error) {
	if b.spec == nil {
		return nil, programmerErrorf("contract", "schema is required")
	}
	t, err := Compile(b.spec, b.opts...)
	if err != nil {
		return nil, err
	}
	for i, r := range b.rules {
		if r.Body == nil {
			return nil, programmerErrorf("contract", "rule %d (%q) has no body", i, r.Name)
		}
	}
	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)
	return &Contract{typ: t, rules: rules}, nil
}

// MustBuild is Build that panics on error.
func (b *ContractBuilder) MustBuild() *Contract {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Type exposes the compiled tree, e.g. for plain Validate calls.
func (c *Contract) Type() Type { return c.typ }

// Conform validates value against the schema and, only when the schema
// passes, runs the rules against the validated output.
func (c *Contract) Conform(value any) Outcome {
	out := Validate(value, c.typ)
	if !out.OK() {
		return out
	}
	if failures := runRules(out.Value, c.rules); len(failures) > 0 {
		return fail(regroup(failures))
	}
	return out
}

// ConformJSON decodes JSON and conforms the result. Decode errors are
// returned as plain errors, distinct from validation failures.
func (c *Contract) ConformJSON(data []byte) (Outcome, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return Outcome{}, err
	}
	return c.Conform(v), nil
}

// ConformYAML decodes a single YAML document and conforms the result.
func (c *Contract) ConformYAML(data []byte) (Outcome, error) {
	v, err := decodeYAML(data)
	if err != nil {
		return Outcome{}, err
	}
	return c.Conform(v), nil
}

package schemafile

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is a schema file: one map schema plus compile options and deny
// rules. Keys are a sequence, so declaration order survives decoding.
type Document struct {
	Name    string     `yaml:"name,omitempty" json:"name,omitempty"`
	Options OptionsDoc `yaml:"options,omitempty" json:"options,omitempty"`
	Keys    []FieldDoc `yaml:"keys" json:"keys"`
	Rules   []RuleDoc  `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// OptionsDoc mirrors compile options in file form.
type OptionsDoc struct {
	DefaultPresence string `yaml:"default_presence,omitempty" json:"default_presence,omitempty"`
	Atomize         bool   `yaml:"atomize,omitempty" json:"atomize,omitempty"`
	Casting         *bool  `yaml:"casting,omitempty" json:"casting,omitempty"`
}

// FieldDoc is one declared key. Exactly one of the NodeDoc forms must be
// set on the embedded node.
type FieldDoc struct {
	Name     string `yaml:"name" json:"name"`
	Presence string `yaml:"presence,omitempty" json:"presence,omitempty"`
	NodeDoc  `yaml:",inline"`
}

// NodeDoc is a recursive value shape: a primitive with checks, a nested key
// list, a list, ordered alternatives, or a cast.
type NodeDoc struct {
	Type   string     `yaml:"type,omitempty" json:"type,omitempty"`
	Checks []CheckDoc `yaml:"checks,omitempty" json:"checks,omitempty"`
	Keys   []FieldDoc `yaml:"keys,omitempty" json:"keys,omitempty"`
	List   *NodeDoc   `yaml:"list,omitempty" json:"list,omitempty"`
	Union  []NodeDoc  `yaml:"union,omitempty" json:"union,omitempty"`
	Cast   *CastDoc   `yaml:"cast,omitempty" json:"cast,omitempty"`
}

// CastDoc declares input and output sides plus the epoch unit for integer
// to date_time casts.
type CastDoc struct {
	Input  *NodeDoc `yaml:"input" json:"input"`
	Output *NodeDoc `yaml:"output" json:"output"`
	Unit   string   `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// CheckDoc references a predicate. In YAML and JSON it may be written as a
// bare name ("filled") or as an object with arguments
// ({name: gteq, args: [18]}). The trailing question mark is optional.
type CheckDoc struct {
	Name string `yaml:"name" json:"name"`
	Args []any  `yaml:"args,omitempty" json:"args,omitempty"`
}

func (c *CheckDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&c.Name)
	}
	type raw CheckDoc
	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = CheckDoc(r)
	return nil
}

func (c *CheckDoc) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		c.Args = nil
		return nil
	}
	type raw CheckDoc
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = CheckDoc(r)
	return nil
}

// RuleDoc is a named deny rule: an expression over `record` that fails the
// document when it evaluates to true.
type RuleDoc struct {
	Name string `yaml:"name" json:"name"`
	Deny string `yaml:"deny" json:"deny"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// ParseYAML decodes a single schema document strictly: unknown fields are
// rejected.
func ParseYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode yaml: %w", err)
	}
	return &doc, nil
}

// ParseJSON decodes a schema document from JSON, also strictly.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode json: %w", err)
	}
	return &doc, nil
}

// Parse picks the decoder from the file name extension; anything not .json
// is treated as YAML.
func Parse(name string, data []byte) (*Document, error) {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

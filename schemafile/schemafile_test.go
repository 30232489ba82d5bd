package schemafile_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/verity-go/verity/schemafile"
)

const userSchema = `
name: user
options:
  default_presence: required
keys:
  - name: name
    type: string
    checks: [filled]
  - name: age
    presence: optional
    cast:
      input: {type: string}
      output: {type: integer, checks: [{name: gteq, args: [18]}]}
  - name: contact
    presence: optional
    keys:
      - name: email
        type: string
rules:
  - name: adults-only
    deny: record.age != nil and record.age < 21
    text: must be 21 or older
`

func TestParseYAML_DecodesDocumentShape(t *testing.T) {
	doc, err := schemafile.ParseYAML([]byte(userSchema))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if doc.Name != "user" {
		t.Fatalf("name mismatch: %q", doc.Name)
	}
	if doc.Options.DefaultPresence != "required" {
		t.Fatalf("options mismatch: %#v", doc.Options)
	}
	if len(doc.Keys) != 3 || doc.Keys[0].Name != "name" || doc.Keys[1].Name != "age" {
		t.Fatalf("key order lost: %#v", doc.Keys)
	}
	if got := doc.Keys[0].Checks; len(got) != 1 || got[0].Name != "filled" || got[0].Args != nil {
		t.Fatalf("scalar check mismatch: %#v", got)
	}
	cast := doc.Keys[1].Cast
	if cast == nil || cast.Input.Type != "string" || cast.Output.Type != "integer" {
		t.Fatalf("cast mismatch: %#v", cast)
	}
	if got := cast.Output.Checks; len(got) != 1 || got[0].Name != "gteq" || !reflect.DeepEqual(got[0].Args, []any{18}) {
		t.Fatalf("object check mismatch: %#v", got)
	}
	if len(doc.Rules) != 1 || doc.Rules[0].Name != "adults-only" {
		t.Fatalf("rules mismatch: %#v", doc.Rules)
	}
}

func TestParseYAML_RejectsUnknownFields(t *testing.T) {
	_, err := schemafile.ParseYAML([]byte("keys:\n  - name: a\n    type: string\nbogus: 1\n"))
	if err == nil {
		t.Fatalf("expected an unknown field error")
	}
}

func TestDocument_ContractConforms(t *testing.T) {
	doc, err := schemafile.ParseYAML([]byte(userSchema))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c, err := doc.Contract()
	if err != nil {
		t.Fatalf("unexpected contract error: %v", err)
	}

	out := c.Conform(map[string]any{"name": "jane", "age": "30"})
	if !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	want := map[string]any{"name": "jane", "age": int64(30)}
	if !reflect.DeepEqual(out.Value, want) {
		t.Fatalf("output mismatch: %#v", out.Value)
	}

	if out := c.Conform(map[string]any{"name": ""}); out.OK() {
		t.Fatalf("an empty name must fail filled?")
	}
	if out := c.Conform(map[string]any{"name": "kid", "age": "19"}); out.OK() {
		t.Fatalf("the deny rule must reject age 19")
	}
	if out := c.Conform(map[string]any{"name": "jane", "contact": map[string]any{"email": "a@b"}}); !out.OK() {
		t.Fatalf("nested keys must validate: %v", out.Err)
	}
}

func TestDocument_UnionAndList(t *testing.T) {
	src := `
keys:
  - name: id
    union:
      - {type: string}
      - {type: integer}
  - name: tags
    presence: optional
    list: {type: string}
    checks: [{name: min_size, args: [1]}]
`
	doc, err := schemafile.ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c, err := doc.Contract()
	if err != nil {
		t.Fatalf("unexpected contract error: %v", err)
	}

	if out := c.Conform(map[string]any{"id": "abc"}); !out.OK() {
		t.Fatalf("string id must pass: %v", out.Err)
	}
	if out := c.Conform(map[string]any{"id": 7}); !out.OK() {
		t.Fatalf("integer id must pass: %v", out.Err)
	}
	if out := c.Conform(map[string]any{"id": true}); out.OK() {
		t.Fatalf("bool id must fail both alternatives")
	}
	if out := c.Conform(map[string]any{"id": 7, "tags": []any{}}); out.OK() {
		t.Fatalf("empty tags must fail min_size?")
	}
}

func TestDocument_CastUnit(t *testing.T) {
	src := `
keys:
  - name: ts
    cast:
      input: {type: integer}
      output: {type: date_time}
      unit: millisecond
`
	doc, err := schemafile.ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c, err := doc.Contract()
	if err != nil {
		t.Fatalf("unexpected contract error: %v", err)
	}

	out := c.Conform(map[string]any{"ts": 1700000000000})
	if !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	got, ok := out.Value.(map[string]any)["ts"].(time.Time)
	if !ok || !got.Equal(time.UnixMilli(1700000000000)) {
		t.Fatalf("timestamp mismatch: %#v", out.Value.(map[string]any)["ts"])
	}
}

func TestDocument_CastingOptionDisablesCasts(t *testing.T) {
	src := `
options:
  casting: false
keys:
  - name: n
    cast:
      input: {type: string}
      output: {type: integer}
`
	doc, err := schemafile.ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c, err := doc.Contract()
	if err != nil {
		t.Fatalf("unexpected contract error: %v", err)
	}

	out := c.Conform(map[string]any{"n": "12"})
	if !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	if !reflect.DeepEqual(out.Value, map[string]any{"n": "12"}) {
		t.Fatalf("casting disabled must leave the input untouched: %#v", out.Value)
	}
}

func TestDocument_BuildErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"no keys", "name: empty\n", "has no keys"},
		{"key without name", "keys:\n  - type: string\n", "key without a name"},
		{"two forms", "keys:\n  - name: a\n    type: string\n    keys:\n      - name: b\n        type: string\n", "exactly one of"},
		{"no form", "keys:\n  - name: a\n    presence: optional\n", "exactly one of"},
		{"single union", "keys:\n  - name: a\n    union:\n      - {type: string}\n", "at least two"},
		{"cast missing side", "keys:\n  - name: a\n    cast:\n      input: {type: string}\n", "input and output"},
		{"bad presence", "keys:\n  - name: a\n    type: string\n    presence: sometimes\n", "unknown presence"},
		{"bad default presence", "options:\n  default_presence: maybe\nkeys:\n  - name: a\n    type: string\n", "unknown default_presence"},
		{"check without name", "keys:\n  - name: a\n    type: string\n    checks: [{args: [1]}]\n", "check without a name"},
		{"rule without deny", "keys:\n  - name: a\n    type: string\nrules:\n  - name: r\n", "no deny expression"},
		{"unknown primitive", "keys:\n  - name: a\n    type: strang\n", "unknown primitive"},
	}
	for _, tc := range cases {
		doc, err := schemafile.ParseYAML([]byte(tc.src))
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", tc.name, err)
		}
		_, err = doc.Contract()
		if err == nil {
			t.Fatalf("%s: expected a build error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestParseJSON_DecodesChecksBothWays(t *testing.T) {
	src := `{
  "keys": [
    {"name": "name", "type": "string", "checks": ["filled"]},
    {"name": "age", "type": "number", "checks": [{"name": "gteq", "args": [18]}]}
  ]
}`
	doc, err := schemafile.ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c, err := doc.Contract()
	if err != nil {
		t.Fatalf("unexpected contract error: %v", err)
	}

	if out := c.Conform(map[string]any{"name": "jane", "age": 21}); !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	if out := c.Conform(map[string]any{"name": "jane", "age": 7}); out.OK() {
		t.Fatalf("7 must fail gteq? 18")
	}
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	if _, err := schemafile.ParseJSON([]byte(`{"keys": [], "bogus": 1}`)); err == nil {
		t.Fatalf("expected an unknown field error")
	}
}

func TestParse_PicksDecoderByExtension(t *testing.T) {
	if _, err := schemafile.Parse("user.json", []byte(`{"keys": [{"name": "a", "type": "string"}]}`)); err != nil {
		t.Fatalf("json path failed: %v", err)
	}
	if _, err := schemafile.Parse("user.yaml", []byte("keys:\n  - name: a\n    type: string\n")); err != nil {
		t.Fatalf("yaml path failed: %v", err)
	}
}

func TestLoad_ReadsContractFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte(userSchema), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := schemafile.Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if out := c.Conform(map[string]any{"name": "jane"}); !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}

	if _, err := schemafile.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

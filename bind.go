package verity

import "github.com/mitchellh/mapstructure"

// Bind decodes a successful outcome's value into T, matching struct fields
// by `verity` tag or field name. A failed outcome returns its error tree
// untouched.
func Bind[T any](o Outcome) (T, error) {
	var out T
	if !o.OK() {
		return out, o.Err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "verity",
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(o.Value); err != nil {
		return out, err
	}
	return out, nil
}

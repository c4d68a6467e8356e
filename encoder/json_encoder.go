package encoder

import (
	"encoding/json"
)

// JSONEncoder implements Codec using the encoding/json package.
//
// The zero value produces compact output. When Indent is set the output
// is indented with Prefix and Indent as in json.MarshalIndent.
// No trailing newline is ever written.
type JSONEncoder struct {
	Prefix string
	Indent string
}

func (e JSONEncoder) Marshal(v any) ([]byte, error) {
	if e.Prefix == "" && e.Indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, e.Prefix, e.Indent)
}

// Unmarshal parses the JSON data and stores the result in the value pointed to by out.
func (JSONEncoder) Unmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

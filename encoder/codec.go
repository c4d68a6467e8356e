// Package encoder provides the codecs used to turn values into bytes and back.
package encoder

// Codec marshals values to bytes and unmarshals bytes into a target value.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrIO              = errors.New("jsonio: i/o failure")
	ErrSerialization   = errors.New("jsonio: serialization failure")
	ErrDeserialization = errors.New("jsonio: deserialization failure")
)

// Kind classifies an Error.
type Kind uint8

const (
	KindIO     Kind = iota + 1 // The path could not be opened, created, read or written.
	KindEncode                 // The value could not be serialized.
	KindParse                  // The content is not valid UTF-8 JSON text.
	KindDecode                 // The content is valid JSON but does not fit the target type.
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindEncode:
		return "encode"
	case KindParse:
		return "parse"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Error is the error returned by every operation in this package.
//
// errors.Is reports true for ErrIO, ErrSerialization or ErrDeserialization
// depending on Kind, and for anything in the chain of the underlying cause.
type Error struct {
	Kind Kind
	Op   string // "save", "load", "marshal" or "unmarshal".
	Path string // Empty for in-memory operations.
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("jsonio: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("jsonio: %s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrSerialization:
		return e.Kind == KindEncode
	case ErrDeserialization:
		return e.Kind == KindParse || e.Kind == KindDecode
	}
	return false
}

// IsDeserialization reports whether err is a parse or decode failure.
func IsDeserialization(err error) bool {
	return errors.Is(err, ErrDeserialization)
}

// decodeKind separates malformed JSON from JSON that does not fit the target.
// Codecs that do not report *json.SyntaxError are covered by checkSyntax.
func decodeKind(err error) Kind {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return KindParse
	}
	return KindDecode
}

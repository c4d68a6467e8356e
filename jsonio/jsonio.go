// Package jsonio saves values to JSON files and loads them back.
//
// Save serializes a value and writes it to a path, creating or truncating the
// file. Load reads a path and deserializes its content into a fresh value of
// the requested type:
//
//	if err := jsonio.Save("test/output.json", "This is a json_io test!"); err != nil {
//		return err
//	}
//	s, err := jsonio.Load[string]("test/output.json")
//
// Calls are synchronous and share no state. Writes are not atomic and calls
// against the same path are not coordinated; a crash mid-write may leave a
// truncated file behind.
package jsonio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/holmberd/go-jsonio/encoder"
)

const (
	// Extension is tried by Load when the given path does not exist.
	Extension = ".json"

	fileMode fs.FileMode = 0o644
)

// DefaultCodec is the codec used by Save, Load, Marshal and Unmarshal.
var DefaultCodec encoder.Codec = encoder.JSONEncoder{}

// Save writes the JSON encoding of v to path.
// The file is created if absent and truncated if present. Parent directories are not created.
func Save(path string, v any) error {
	return SaveWith(path, v, DefaultCodec)
}

// SaveWith is like Save but encodes v with codec.
//
// v is encoded before the file is opened, so an encoding failure leaves any
// existing file untouched.
func SaveWith(path string, v any, codec encoder.Codec) error {
	data, err := codec.Marshal(v)
	if err != nil {
		return &Error{Kind: KindEncode, Op: "save", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return &Error{Kind: KindIO, Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load reads the JSON file at path and decodes it into a new value of type T.
//
// If path does not exist and does not already end in ".json", Load retries
// once with the extension replaced by ".json".
func Load[T any](path string) (T, error) {
	return LoadWith[T](path, DefaultCodec)
}

// LoadWith is like Load but decodes with codec.
func LoadWith[T any](path string, codec encoder.Codec) (T, error) {
	var v T
	data, err := readFile(path)
	if err != nil {
		return v, &Error{Kind: KindIO, Op: "load", Path: path, Err: err}
	}
	if err := unmarshal(codec, data, &v); err != nil {
		err.Op = "load"
		err.Path = path
		return v, err
	}
	return v, nil
}

// Marshal encodes v with codec. Failures are reported as KindEncode errors.
func Marshal(codec encoder.Codec, v any) ([]byte, error) {
	data, err := codec.Marshal(v)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Op: "marshal", Err: err}
	}
	return data, nil
}

// Unmarshal decodes data with codec into a new value of type T.
// Failures are reported as KindParse or KindDecode errors.
func Unmarshal[T any](codec encoder.Codec, data []byte) (T, error) {
	var v T
	if err := unmarshal(codec, data, &v); err != nil {
		return v, err
	}
	return v, nil
}

func unmarshal(codec encoder.Codec, data []byte, out any) *Error {
	if !utf8.Valid(data) {
		return &Error{Kind: KindParse, Op: "unmarshal", Err: errors.New("content is not valid UTF-8")}
	}
	if err := checkSyntax(data); err != nil {
		return &Error{Kind: KindParse, Op: "unmarshal", Err: err}
	}
	if t := reflect.TypeOf(out).Elem(); isNull(data) && !nullable(t) {
		return &Error{Kind: KindDecode, Op: "unmarshal", Err: fmt.Errorf("cannot decode null into %s", t)}
	}
	if err := codec.Unmarshal(data, out); err != nil {
		return &Error{Kind: decodeKind(err), Op: "unmarshal", Err: err}
	}
	return nil
}

// checkSyntax reports malformed JSON independently of the codec in use.
func checkSyntax(data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return errors.New("content is not valid JSON")
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// nullable reports whether null is a valid value of t.
func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	alt := withExtension(path, Extension)
	if alt == path {
		return nil, err
	}
	data, altErr := os.ReadFile(alt)
	if altErr != nil {
		return nil, err // Report the path as given.
	}
	return data, nil
}

// withExtension replaces the extension of path's last element with ext.
// A dotfile name such as ".settings" has no extension, so ext is appended.
func withExtension(path, ext string) string {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return path
	}
	if strings.HasPrefix(base, ".") && !strings.Contains(base[1:], ".") {
		return path + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

package encoder

import (
	"errors"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var (
	ErrNotProtoMessage = errors.New("encoder: value does not implement proto.Message")
)

// ProtoJSONEncoder implements Codec for protobuf messages using the canonical
// protobuf JSON mapping.
//
// NOTE: protojson output is not stable across library versions,
// so files written by one build are only byte-identical within that build.
type ProtoJSONEncoder struct {
	Multiline bool
}

func (e ProtoJSONEncoder) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, ErrNotProtoMessage
	}
	return protojson.MarshalOptions{Multiline: e.Multiline}.Marshal(m)
}

// Unmarshal parses protojson data into out.
// The target is either a proto.Message or a pointer to a message pointer,
// in which case a nil message pointer is allocated first.
func (ProtoJSONEncoder) Unmarshal(data []byte, out any) error {
	m, err := protoTarget(out)
	if err != nil {
		return err
	}
	return protojson.Unmarshal(data, m)
}

func protoTarget(out any) (proto.Message, error) {
	if m, ok := out.(proto.Message); ok {
		if !m.ProtoReflect().IsValid() {
			return nil, errors.New("encoder: target is a nil proto.Message")
		}
		return m, nil
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Pointer {
		return nil, ErrNotProtoMessage
	}
	elem := rv.Elem()
	if _, ok := elem.Interface().(proto.Message); !ok {
		return nil, ErrNotProtoMessage
	}
	if elem.IsNil() {
		elem.Set(reflect.New(elem.Type().Elem()))
	}
	return elem.Interface().(proto.Message), nil
}

package encoder

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type point struct {
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Tag string `json:"tag,omitempty"`
}

func TestJSONEncoder(t *testing.T) {
	t.Run("Marshal compact", func(t *testing.T) {
		data, err := JSONEncoder{}.Marshal(point{X: 1, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, `{"x":1,"y":2}`, string(data))
	})

	t.Run("Marshal indented", func(t *testing.T) {
		data, err := JSONEncoder{Indent: "  "}.Marshal(point{X: 1, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"x\": 1,\n  \"y\": 2\n}", string(data))
	})

	t.Run("Marshal sorts map keys", func(t *testing.T) {
		data, err := JSONEncoder{}.Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
	})

	t.Run("Marshal rejects non-finite floats", func(t *testing.T) {
		_, err := JSONEncoder{}.Marshal(math.NaN())
		var uerr *json.UnsupportedValueError
		assert.ErrorAs(t, err, &uerr)
	})

	t.Run("Unmarshal", func(t *testing.T) {
		var p point
		require.NoError(t, JSONEncoder{}.Unmarshal([]byte(`{"x":3,"y":4,"tag":"t"}`), &p))
		assert.Equal(t, point{X: 3, Y: 4, Tag: "t"}, p)
	})

	t.Run("Unmarshal type mismatch", func(t *testing.T) {
		var s string
		err := JSONEncoder{}.Unmarshal([]byte(`{"x":1}`), &s)
		var terr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &terr)
	})
}

func TestProtoJSONEncoder(t *testing.T) {
	t.Run("Marshal and Unmarshal message", func(t *testing.T) {
		in, err := structpb.NewStruct(map[string]any{"name": "jsonio", "count": 2})
		require.NoError(t, err)

		data, err := ProtoJSONEncoder{}.Marshal(in)
		require.NoError(t, err)

		out := &structpb.Struct{}
		require.NoError(t, ProtoJSONEncoder{}.Unmarshal(data, out))
		assert.True(t, proto.Equal(in, out))
	})

	t.Run("Unmarshal into pointer to nil message", func(t *testing.T) {
		data, err := ProtoJSONEncoder{}.Marshal(wrapperspb.String("hello"))
		require.NoError(t, err)

		var out *wrapperspb.StringValue
		require.NoError(t, ProtoJSONEncoder{}.Unmarshal(data, &out))
		require.NotNil(t, out)
		assert.Equal(t, "hello", out.GetValue())
	})

	t.Run("Marshal rejects non-proto value", func(t *testing.T) {
		_, err := ProtoJSONEncoder{}.Marshal(point{})
		assert.ErrorIs(t, err, ErrNotProtoMessage)
	})

	t.Run("Unmarshal rejects non-proto target", func(t *testing.T) {
		var p point
		assert.ErrorIs(t, ProtoJSONEncoder{}.Unmarshal([]byte(`{}`), &p), ErrNotProtoMessage)
	})

	t.Run("Unmarshal rejects nil message", func(t *testing.T) {
		var out *wrapperspb.StringValue
		assert.Error(t, ProtoJSONEncoder{}.Unmarshal([]byte(`"x"`), out))
	})

	t.Run("Unmarshal malformed input", func(t *testing.T) {
		out := &structpb.Struct{}
		assert.Error(t, ProtoJSONEncoder{}.Unmarshal([]byte(`{"a":`), out))
	})
}

package encoder

import (
	"fmt"
	"testing"

	"mapkit/internal/pkg/normalizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	jsonEnc, err := NewJSONEncoder(nil)
	require.NoError(t, err)
	yamlEnc, err := NewYAMLEncoder(nil)
	require.NoError(t, err)

	r := NewRegistry(jsonEnc, yamlEnc)
	assert.Equal(t, []string{"json", "yaml"}, r.Formats())

	got, err := r.Get(FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, got.Format())

	_, err = r.Get("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONEncoder_Encode(t *testing.T) {
	enc, err := NewJSONEncoder(nil)
	require.NoError(t, err)

	out, err := enc.Encode(map[string]any{"timezone": "UTC", "date": "2024-01-01T00:00:00+00:00"})
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-01T00:00:00+00:00","timezone":"UTC"}`, string(out))

	indented, err := NewJSONEncoder(normalizer.Context{JSONIndentKey: "2"})
	require.NoError(t, err)
	out, err = indented.Encode(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}

func TestJSONEncoder_DecodeKeepsNumbers(t *testing.T) {
	enc, err := NewJSONEncoder(nil)
	require.NoError(t, err)

	got, err := enc.Decode([]byte(`{"at":1704067200,"frac":1704067200.000001}`))
	require.NoError(t, err)

	fields := got.(map[string]any)
	assert.Equal(t, "1704067200", fmt.Sprint(fields["at"]))
	assert.Equal(t, "1704067200.000001", fmt.Sprint(fields["frac"]))

	_, err = enc.Decode([]byte(`{"at":`))
	assert.Error(t, err)
}

func TestYAMLEncoder_RoundTrip(t *testing.T) {
	enc, err := NewYAMLEncoder(normalizer.Context{YAMLIndentKey: 2})
	require.NoError(t, err)

	out, err := enc.Encode(map[string]any{"event": map[string]any{"date": "2024-01-01T00:00:00+00:00", "timezone": "UTC"}})
	require.NoError(t, err)
	assert.Equal(t, "event:\n  date: \"2024-01-01T00:00:00+00:00\"\n  timezone: UTC\n", string(out))

	back, err := enc.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"event": map[string]any{"date": "2024-01-01T00:00:00+00:00", "timezone": "UTC"}}, back)
}

func TestNewEncoder_InvalidIndent(t *testing.T) {
	_, err := NewJSONEncoder(normalizer.Context{JSONIndentKey: "wide"})
	assert.ErrorIs(t, err, ErrInvalidContext)

	_, err = NewYAMLEncoder(normalizer.Context{YAMLIndentKey: -1})
	assert.ErrorIs(t, err, ErrInvalidContext)
}

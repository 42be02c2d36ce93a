// Package encoder writes normalized data to bytes and reads it back.
package encoder

import (
	"errors"
	"fmt"
	"sort"

	"mapkit/internal/pkg/normalizer"

	"github.com/spf13/cast"
)

// Context keys understood by the encoders
const (
	JSONIndentKey = "json_indent"
	YAMLIndentKey = "yaml_indent"
)

// Formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrUnsupportedFormat indicates a format no registered encoder handles
	ErrUnsupportedFormat = errors.New("encoder: unsupported format")

	// ErrInvalidContext indicates an encoder option of the wrong type
	ErrInvalidContext = errors.New("encoder: invalid context")
)

// Encoder converts normalized data (strings, numbers, bools, maps and
// slices) to and from one wire format
type Encoder interface {
	Format() string
	Encode(data any) ([]byte, error)
	Decode(in []byte) (any, error)
}

// Registry looks encoders up by format name
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry; a later encoder replaces an earlier one
// with the same format
func NewRegistry(encoders ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder, len(encoders))}
	for _, e := range encoders {
		r.encoders[e.Format()] = e
	}
	return r
}

// Get returns the encoder for format
func (r *Registry) Get(format string) (Encoder, error) {
	e, ok := r.encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return e, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.encoders))
	for f := range r.encoders {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

func intOption(ctx normalizer.Context, key string, fallback int) (int, error) {
	v, ok := ctx[key]
	if !ok || v == nil {
		return fallback, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %v", ErrInvalidContext, key, v)
	}
	return n, nil
}

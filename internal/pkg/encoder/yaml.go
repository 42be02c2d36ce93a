package encoder

import (
	"bytes"
	"fmt"

	"mapkit/internal/pkg/normalizer"

	"gopkg.in/yaml.v3"
)

const defaultYAMLIndent = 4

type yamlEncoder struct {
	indent int
}

var _ Encoder = (*yamlEncoder)(nil)

// NewYAMLEncoder creates a YAML encoder. yaml_indent sets the indentation,
// 4 when unset.
func NewYAMLEncoder(ctx normalizer.Context) (Encoder, error) {
	indent, err := intOption(ctx, YAMLIndentKey, defaultYAMLIndent)
	if err != nil {
		return nil, err
	}
	if indent == 0 {
		indent = defaultYAMLIndent
	}
	return &yamlEncoder{indent: indent}, nil
}

func (e *yamlEncoder) Format() string {
	return FormatYAML
}

func (e *yamlEncoder) Encode(data any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.indent)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *yamlEncoder) Decode(in []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(in, &out); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return out, nil
}

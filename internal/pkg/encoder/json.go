package encoder

import (
	"fmt"
	"strings"

	"mapkit/internal/pkg/normalizer"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

type jsonEncoder struct {
	indent string
}

var _ Encoder = (*jsonEncoder)(nil)

// NewJSONEncoder creates a JSON encoder. json_indent sets the number of
// spaces to indent with; zero keeps the output compact.
func NewJSONEncoder(ctx normalizer.Context) (Encoder, error) {
	indent, err := intOption(ctx, JSONIndentKey, 0)
	if err != nil {
		return nil, err
	}
	return &jsonEncoder{indent: strings.Repeat(" ", indent)}, nil
}

func (e *jsonEncoder) Format() string {
	return FormatJSON
}

func (e *jsonEncoder) Encode(data any) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if e.indent == "" {
		out, err = jsonAPI.Marshal(data)
	} else {
		out, err = jsonAPI.MarshalIndent(data, "", e.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return out, nil
}

// Decode reads numbers as json.Number so epoch timestamps keep their precision
func (e *jsonEncoder) Decode(in []byte) (any, error) {
	var out any
	if err := jsonAPI.Unmarshal(in, &out); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return out, nil
}

package normalizer

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/samber/lo"
)

var rowType = reflect.TypeOf(Row{})

// Row is a database result row keyed by column name
type Row map[string]any

// Columns returns the column names in sorted order
func (r Row) Columns() []string {
	columns := lo.Keys(r)
	slices.Sort(columns)
	return columns
}

// RowNormalizer turns rows into plain maps and back. Columns holding
// calendar-time values go through the date-time normalizer.
type RowNormalizer struct {
	datetime *DateTimeNormalizer
}

// NewRowNormalizer creates a row normalizer; datetime may be nil
func NewRowNormalizer(datetime *DateTimeNormalizer) *RowNormalizer {
	return &RowNormalizer{datetime: datetime}
}

func (n *RowNormalizer) SupportsNormalization(data any) bool {
	_, ok := data.(Row)
	return ok
}

// Normalize copies the row into a map, skipping ignored attributes
func (n *RowNormalizer) Normalize(data any, ctx Context) (any, error) {
	row, ok := data.(Row)
	if !ok {
		return nil, &NotNormalizableError{
			Message:       fmt.Sprintf("the value must be a normalizer.Row, got %T", data),
			Value:         data,
			ExpectedTypes: []string{"normalizer.Row"},
			Path:          ctx.Path(),
		}
	}

	ignored := ctx.IgnoredAttributes()
	out := make(map[string]any, len(row))
	for _, column := range row.Columns() {
		if lo.Contains(ignored, column) {
			continue
		}

		value := row[column]
		if n.datetime != nil && n.datetime.SupportsNormalization(value) {
			normalized, err := n.datetime.Normalize(value, ctx)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", column, err)
			}
			value = normalized
		}
		out[column] = value
	}
	return out, nil
}

func (n *RowNormalizer) SupportsDenormalization(data any, target reflect.Type) bool {
	if target != rowType && target != reflect.PointerTo(rowType) {
		return false
	}
	switch data.(type) {
	case map[string]any, Row:
		return true
	}
	return false
}

// Denormalize copies a map into a fresh Row
func (n *RowNormalizer) Denormalize(data any, target reflect.Type, ctx Context) (any, error) {
	var fields map[string]any
	switch v := data.(type) {
	case map[string]any:
		fields = v
	case Row:
		fields = v
	default:
		return nil, &NotNormalizableError{
			Message:           fmt.Sprintf("a row can only be built from a map, got %T", data),
			Value:             data,
			ExpectedTypes:     []string{"map"},
			Path:              ctx.Path(),
			UseMessageForUser: true,
		}
	}

	row := make(Row, len(fields))
	for k, v := range fields {
		row[k] = v
	}
	if target != nil && target.Kind() == reflect.Pointer {
		return &row, nil
	}
	return row, nil
}

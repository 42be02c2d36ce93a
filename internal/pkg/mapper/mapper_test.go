package mapper

import (
	"errors"
	"testing"
	"time"

	"mapkit/internal/pkg/normalizer"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Name     string     `json:"name" validate:"required"`
	StartsAt time.Time  `json:"startsAt" validate:"required"`
	EndsAt   *time.Time `json:"endsAt"`
	Seats    int        `json:"seats"`
}

type export struct {
	Table string         `json:"table"`
	Row   normalizer.Row `json:"row"`
}

var newYear = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMapper(t *testing.T, opts ...Option) *Mapper {
	t.Helper()
	dt, err := normalizer.NewDateTimeNormalizer(nil)
	require.NoError(t, err)
	return New([]normalizer.Denormalizer{dt, normalizer.NewRowNormalizer(dt)}, opts...)
}

func TestMapper_MapStruct(t *testing.T) {
	m := newTestMapper(t)

	var out event
	err := m.Map(map[string]any{
		"name":     "launch",
		"startsAt": "2024-01-01T00:00:00+00:00",
		"endsAt":   map[string]any{"date": "2024-01-01T03:00:00+01:00", "timezone": "Europe/Prague"},
		"seats":    "12",
	}, &out, nil)
	require.NoError(t, err)

	assert.Equal(t, "launch", out.Name)
	assert.True(t, newYear.Equal(out.StartsAt))
	require.NotNil(t, out.EndsAt)
	assert.True(t, newYear.Add(2*time.Hour).Equal(*out.EndsAt))
	assert.Equal(t, "Europe/Prague", out.EndsAt.Location().String())
	assert.Equal(t, 12, out.Seats)
}

func TestMapper_MapUsesCallContext(t *testing.T) {
	m := newTestMapper(t, WithDefaultContext(normalizer.Context{normalizer.FormatKey: normalizer.FormatUnix}))

	var out event
	require.NoError(t, m.Map(map[string]any{"name": "a", "startsAt": 1704067200}, &out, nil))
	assert.True(t, newYear.Equal(out.StartsAt))

	err := m.Map(map[string]any{"name": "a", "startsAt": "01.01.2024"}, &out, normalizer.Context{
		normalizer.FormatKey: "02.01.2006",
	})
	require.NoError(t, err)
	assert.True(t, newYear.Equal(out.StartsAt))
}

func TestMapper_DenormalizerFailureSurfacesUnchanged(t *testing.T) {
	m := newTestMapper(t)

	var out event
	err := m.Map(map[string]any{"name": "a", "startsAt": "abcdef"}, &out, nil)
	require.Error(t, err)

	var nn *normalizer.NotNormalizableError
	require.ErrorAs(t, err, &nn)
	assert.Equal(t, "abcdef", nn.Value)
	assert.False(t, errors.Is(err, ErrMapping))
}

func TestMapper_SeveralFailuresArePartial(t *testing.T) {
	m := newTestMapper(t)

	var out event
	err := m.Map(map[string]any{"name": "a", "startsAt": "", "endsAt": 123}, &out, nil)

	var partial *PartialDenormalizationError
	require.ErrorAs(t, err, &partial)
	assert.Len(t, partial.Errors, 2)
	assert.ErrorIs(t, err, normalizer.ErrNotNormalizable)
}

func TestMapper_OtherDecodeFailuresWrapErrMapping(t *testing.T) {
	m := newTestMapper(t)

	var out event
	err := m.Map(map[string]any{"name": "a", "seats": []int{1}}, &out, nil)
	assert.ErrorIs(t, err, ErrMapping)
}

func TestMapper_ExtraAttributes(t *testing.T) {
	m := newTestMapper(t)
	data := map[string]any{"name": "a", "startsAt": "2024-01-01T00:00:00+00:00", "venue": "hall"}

	var out event
	require.NoError(t, m.Map(data, &out, nil))

	err := m.Map(data, &out, normalizer.Context{normalizer.AllowExtraAttributesKey: false})
	assert.ErrorIs(t, err, ErrMapping)
	assert.Contains(t, err.Error(), "venue")
}

func TestMapper_IgnoredAttributes(t *testing.T) {
	m := newTestMapper(t)

	var out event
	err := m.Map(map[string]any{"name": "a", "seats": 3}, &out, normalizer.Context{
		normalizer.IgnoredAttributesKey: []string{"seats"},
	})
	require.NoError(t, err)
	assert.Zero(t, out.Seats)
}

func TestMapper_Validation(t *testing.T) {
	m := newTestMapper(t, WithValidator(NewValidator("json")))

	var out event
	err := m.Map(map[string]any{"startsAt": "2024-01-01T00:00:00+00:00"}, &out, nil)
	require.ErrorIs(t, err, ErrValidation)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "name", validationErrs[0].Field())
}

func TestMapper_RowField(t *testing.T) {
	m := newTestMapper(t)

	out, err := MapTo[export](m, map[string]any{
		"table": "orders",
		"row":   map[string]any{"id": 1, "total": 9.5},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "orders", out.Table)
	assert.Equal(t, normalizer.Row{"id": 1, "total": 9.5}, out.Row)
}

func TestMapTo_TimeValue(t *testing.T) {
	m := newTestMapper(t)

	got, err := MapTo[time.Time](m, "2024-01-01T00:00:00+00:00", nil)
	require.NoError(t, err)
	assert.True(t, newYear.Equal(got))
}

func TestMapper_InvalidTarget(t *testing.T) {
	m := newTestMapper(t)

	var out event
	assert.ErrorIs(t, m.Map(map[string]any{}, out, nil), ErrInvalidTarget)
	assert.ErrorIs(t, m.Map(map[string]any{}, (*event)(nil), nil), ErrInvalidTarget)
}

func TestWithTagName(t *testing.T) {
	type tagged struct {
		When time.Time `mapstructure:"when"`
	}
	m := newTestMapper(t, WithTagName("mapstructure"))

	out, err := MapTo[tagged](m, map[string]any{"when": "2024-01-01T00:00:00+00:00"}, nil)
	require.NoError(t, err)
	assert.True(t, newYear.Equal(out.When))
}

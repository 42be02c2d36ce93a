package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Merge(t *testing.T) {
	common := Context{FormatKey: FormatUnix, CastKey: "int"}
	merged := common.Merge(map[string]any{CastKey: "float", TimezoneKey: "UTC"})

	assert.Equal(t, Context{FormatKey: FormatUnix, CastKey: "float", TimezoneKey: "UTC"}, merged)
	assert.Equal(t, "int", common[CastKey], "receiver must stay untouched")

	var empty Context
	assert.Empty(t, empty.Merge(nil))
}

func TestContext_Accessors(t *testing.T) {
	var nilCtx Context
	_, ok := nilCtx.Format()
	assert.False(t, ok)
	assert.Empty(t, nilCtx.Path())
	assert.True(t, nilCtx.AllowExtraAttributes())
	assert.Nil(t, nilCtx.IgnoredAttributes())

	ctx := Context{
		FormatKey:               "",
		CastKey:                 CastArray,
		DeserializationPathKey:  "items[0].createdAt",
		IgnoredAttributesKey:    []any{"password", 7, "token"},
		AllowExtraAttributesKey: false,
	}

	_, ok = ctx.Format()
	assert.False(t, ok, "an empty format counts as unset")

	cast, ok := ctx.Cast()
	assert.True(t, ok)
	assert.Equal(t, CastArray, cast)

	assert.Equal(t, "items[0].createdAt", ctx.Path())
	assert.Equal(t, []string{"password", "token"}, ctx.IgnoredAttributes())
	assert.False(t, ctx.AllowExtraAttributes())
}

func TestContext_NilValueMeansUnset(t *testing.T) {
	opts, err := DefaultDateTimeOptions().WithOverrides(Context{
		FormatKey:   nil,
		TimezoneKey: nil,
		CastKey:     nil,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultDateTimeOptions(), opts)
}

func TestDateTimeOptions_WithOverrides(t *testing.T) {
	defaults := DefaultDateTimeOptions()

	opts, err := defaults.WithOverrides(Context{
		FormatKey:   time.DateOnly,
		TimezoneKey: time.UTC,
		CastKey:     "int",
	})
	require.NoError(t, err)

	assert.Equal(t, time.DateOnly, opts.Format)
	assert.Equal(t, time.UTC, opts.Timezone)
	assert.Equal(t, CastInt, opts.Cast)
	assert.Equal(t, DefaultFormat, defaults.Format)
	assert.Nil(t, defaults.Timezone)

	_, err = defaults.WithOverrides(Context{TimezoneKey: "Atlantis/Capital"})
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestLoadLocation(t *testing.T) {
	loc, err := loadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	loc, err = loadLocation("-03:00")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -3*3600, offset)

	_, err = loadLocation("")
	assert.ErrorIs(t, err, ErrUnknownTimezone)

	_, err = loadLocation("not a zone")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestZoneName(t *testing.T) {
	assert.Equal(t, "UTC", ZoneName(newYear))
	assert.Equal(t, "+02:00", ZoneName(newYear.In(time.FixedZone("", 2*3600))))
	assert.Equal(t, "CEST", ZoneName(newYear.In(time.FixedZone("CEST", 2*3600))))
}

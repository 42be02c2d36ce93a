package normalizer

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Context keys understood by the normalizers in this package
const (
	FormatKey               = "datetime_format"
	TimezoneKey             = "datetime_timezone"
	CastKey                 = "datetime_cast"
	DeserializationPathKey  = "deserialization_path"
	IgnoredAttributesKey    = "ignored_attributes"
	AllowExtraAttributesKey = "allow_extra_attributes"
)

// Pseudo-layouts for epoch timestamps. Any other format is a Go reference layout.
const (
	FormatUnix      = "U"
	FormatUnixMicro = "U.u"

	// DefaultFormat is RFC 3339 with a numeric offset, so UTC renders as +00:00
	DefaultFormat = "2006-01-02T15:04:05-07:00"
)

// Cast selects the representation Normalize produces
type Cast string

const (
	CastNone  Cast = ""
	CastInt   Cast = "int"
	CastFloat Cast = "float"
	CastArray Cast = "array"
)

// Context carries per-call options, keyed by option name.
// A nil value means "not set", the same as a missing key.
type Context map[string]any

func (c Context) lookup(key string) (any, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Merge returns a new context with other's entries layered over c
func (c Context) Merge(other map[string]any) Context {
	merged := make(Context, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Format returns the explicitly supplied date-time format, if any
func (c Context) Format() (string, bool) {
	v, ok := c.lookup(FormatKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Cast returns the explicitly supplied cast, if any
func (c Context) Cast() (Cast, bool) {
	v, ok := c.lookup(CastKey)
	if !ok {
		return CastNone, false
	}
	switch cast := v.(type) {
	case Cast:
		return cast, true
	case string:
		return Cast(cast), true
	}
	return CastNone, false
}

// Path returns the deserialization path used in diagnostics
func (c Context) Path() string {
	v, ok := c.lookup(DeserializationPathKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IgnoredAttributes returns the attribute names a normalizer must skip
func (c Context) IgnoredAttributes() []string {
	v, ok := c.lookup(IgnoredAttributesKey)
	if !ok {
		return nil
	}
	switch attrs := v.(type) {
	case []string:
		return attrs
	case []any:
		names := make([]string, 0, len(attrs))
		for _, a := range attrs {
			if s, ok := a.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

// AllowExtraAttributes reports whether unknown input keys are tolerated (default true)
func (c Context) AllowExtraAttributes() bool {
	v, ok := c.lookup(AllowExtraAttributesKey)
	if !ok {
		return true
	}
	allow, ok := v.(bool)
	return !ok || allow
}

// DateTimeOptions is the resolved date-time configuration.
// Values are immutable: WithOverrides always returns a copy.
type DateTimeOptions struct {
	Format string
	// Timezone is the target zone; nil keeps the zone of the value
	Timezone *time.Location
	Cast     Cast
}

// DefaultDateTimeOptions returns the built-in defaults
func DefaultDateTimeOptions() DateTimeOptions {
	return DateTimeOptions{Format: DefaultFormat}
}

// WithOverrides layers the options present in ctx over o
func (o DateTimeOptions) WithOverrides(ctx Context) (DateTimeOptions, error) {
	out := o
	if format, ok := ctx.Format(); ok {
		out.Format = format
	}
	if v, ok := ctx.lookup(TimezoneKey); ok {
		loc, err := resolveLocation(v)
		if err != nil {
			return o, err
		}
		out.Timezone = loc
	}
	if cast, ok := ctx.Cast(); ok {
		out.Cast = cast
	}
	return out, nil
}

func resolveLocation(v any) (*time.Location, error) {
	switch tz := v.(type) {
	case *time.Location:
		return tz, nil
	case string:
		return loadLocation(tz)
	}
	return nil, fmt.Errorf("%w: unsupported timezone value of type %T", ErrUnknownTimezone, v)
}

// loadLocation accepts IANA names as well as ±hh:mm offsets
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty timezone name", ErrUnknownTimezone)
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}
	if t, err := time.Parse("Z07:00", name); err == nil {
		_, offset := t.Zone()
		return time.FixedZone(name, offset), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
}

// ZoneName returns the location name, or the offset for anonymous fixed zones
func ZoneName(t time.Time) string {
	if name := t.Location().String(); name != "" {
		return name
	}
	return t.Format("-07:00")
}

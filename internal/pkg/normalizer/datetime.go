package normalizer

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// DateTimeNormalizer converts calendar-time values to strings, numbers or
// {date, timezone} records and back. It holds no mutable state and is safe
// for concurrent use.
type DateTimeNormalizer struct {
	defaults DateTimeOptions
	parser   DateTimeParser
}

// Option configures a DateTimeNormalizer
type Option func(*DateTimeNormalizer)

// WithParser replaces the lenient fallback parser
func WithParser(parser DateTimeParser) Option {
	return func(n *DateTimeNormalizer) {
		if parser != nil {
			n.parser = parser
		}
	}
}

// NewDateTimeNormalizer creates a normalizer whose defaults are the built-in
// ones overridden by defaultContext
func NewDateTimeNormalizer(defaultContext Context, opts ...Option) (*DateTimeNormalizer, error) {
	n := &DateTimeNormalizer{
		defaults: DefaultDateTimeOptions(),
		parser:   NewFlexibleParser(),
	}
	for _, opt := range opts {
		opt(n)
	}

	defaults, err := n.defaults.WithOverrides(defaultContext)
	if err != nil {
		return nil, fmt.Errorf("invalid default context: %w", err)
	}
	n.defaults = defaults
	return n, nil
}

// WithDefaultContext returns a copy whose defaults have ctx merged over the
// current ones. The receiver is left untouched.
func (n *DateTimeNormalizer) WithDefaultContext(ctx Context) (*DateTimeNormalizer, error) {
	defaults, err := n.defaults.WithOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid default context: %w", err)
	}
	return &DateTimeNormalizer{defaults: defaults, parser: n.parser}, nil
}

// Defaults returns the resolved default options
func (n *DateTimeNormalizer) Defaults() DateTimeOptions {
	return n.defaults
}

// SupportsNormalization reports whether data is a calendar-time value
func (n *DateTimeNormalizer) SupportsNormalization(data any) bool {
	_, ok := asTime(data)
	return ok
}

// Normalize renders a calendar-time value according to the effective
// format, timezone and cast. The result is a string, int64, float64 or a
// map with "date" and "timezone" keys.
func (n *DateTimeNormalizer) Normalize(data any, ctx Context) (any, error) {
	t, ok := asTime(data)
	if !ok {
		return nil, &NotNormalizableError{
			Message:       fmt.Sprintf("the value must be a calendar-time value, got %T", data),
			Value:         data,
			ExpectedTypes: []string{"time.Time"},
			Path:          ctx.Path(),
		}
	}

	opts, err := n.defaults.WithOverrides(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Timezone != nil {
		t = t.In(opts.Timezone)
	}

	formatted := formatTime(t, opts.Format)
	switch opts.Cast {
	case CastInt:
		return castInt(formatted), nil
	case CastFloat:
		return castFloat(formatted), nil
	case CastArray:
		return map[string]any{"date": formatted, "timezone": ZoneName(t)}, nil
	default:
		return formatted, nil
	}
}

// SupportsDenormalization reports whether target is a calendar-time type
func (n *DateTimeNormalizer) SupportsDenormalization(_ any, target reflect.Type) bool {
	return isTimeTarget(target)
}

// Denormalize builds a value of the target type from a calendar-time value,
// an epoch number, a {date, timezone} record or a date-time string.
// Value targets receive a value; pointer targets receive a fresh pointer.
func (n *DateTimeNormalizer) Denormalize(data any, target reflect.Type, ctx Context) (any, error) {
	if target != nil && !isTimeTarget(target) && !timeType.ConvertibleTo(target) {
		return nil, &NotNormalizableError{
			Message:       fmt.Sprintf("cannot build a value of type %s from a date-time", target),
			Value:         data,
			ExpectedTypes: []string{"string"},
			Path:          ctx.Path(),
		}
	}

	in := classify(data)
	if t, ok := in.(timeInput); ok {
		return toTarget(normalizeInstant(t.value), target), nil
	}

	opts, err := n.defaults.WithOverrides(ctx)
	if err != nil {
		return nil, wrapFailure(err, data, ctx)
	}

	switch in := in.(type) {
	case numberInput:
		if s, ok := in.text(opts.Format); ok {
			return n.createDateTime(s, target, opts.Timezone, ctx)
		}

	case recordInput:
		date, ok := in.date.(string)
		if !ok || strings.TrimSpace(date) == "" {
			return nil, unexpectedDataType(data, ctx)
		}
		loc := opts.Timezone
		if name, ok := in.timezone.(string); in.hasTimezone && ok {
			if loc, err = loadLocation(name); err != nil {
				return nil, wrapFailure(err, data, ctx)
			}
		}
		return n.createDateTime(date, target, loc, ctx)

	case stringInput:
		if strings.TrimSpace(in.value) != "" {
			return n.createDateTime(in.value, target, opts.Timezone, ctx)
		}
	}

	return nil, unexpectedDataType(data, ctx)
}

// createDateTime tries the call-site format, then the default format, then
// the lenient parser. A failing call-site format is final.
func (n *DateTimeNormalizer) createDateTime(value string, target reflect.Type, loc *time.Location, ctx Context) (any, error) {
	if loc == nil {
		loc = time.UTC
	}

	if layout, ok := ctx.Format(); ok {
		t, errs := parseStrict(layout, value, loc)
		if len(errs) > 0 {
			return nil, &NotNormalizableError{
				Message:           parseFailureMessage(value, layout, errs),
				Value:             value,
				ExpectedTypes:     []string{"string"},
				Path:              ctx.Path(),
				UseMessageForUser: true,
				ParseErrors:       errs,
			}
		}
		return toTarget(t, target), nil
	}

	if layout := n.defaults.Format; layout != "" {
		if t, errs := parseStrict(layout, value, loc); len(errs) == 0 {
			return toTarget(t, target), nil
		}
	}

	t, err := n.parser.Parse(value, loc)
	if err != nil {
		return nil, wrapFailure(err, value, ctx)
	}
	return toTarget(t, target), nil
}

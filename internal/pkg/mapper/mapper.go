// Package mapper decodes plain data into typed values. Decoding is done by
// mapstructure; values whose target type a denormalizer supports are built
// by that denormalizer instead.
package mapper

import (
	"fmt"
	"reflect"
	"sort"

	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/normalizer"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultTagName = "json"

// Mapper is immutable after construction and safe for concurrent use
type Mapper struct {
	denormalizers []normalizer.Denormalizer
	defaults      normalizer.Context
	tagName       string
	validate      *validator.Validate
	log           *logger.Logger
}

// Option configures a Mapper
type Option func(*Mapper)

// WithDefaultContext sets the context every call's context is merged over
func WithDefaultContext(ctx normalizer.Context) Option {
	return func(m *Mapper) {
		m.defaults = normalizer.Context{}.Merge(ctx)
	}
}

// WithTagName sets the struct tag field names are read from
func WithTagName(tag string) Option {
	return func(m *Mapper) {
		if tag != "" {
			m.tagName = tag
		}
	}
}

// WithValidator validates decoded structs with v
func WithValidator(v *validator.Validate) Option {
	return func(m *Mapper) {
		m.validate = v
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(log *logger.Logger) Option {
	return func(m *Mapper) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a mapper that consults denormalizers in the given order
func New(denormalizers []normalizer.Denormalizer, opts ...Option) *Mapper {
	m := &Mapper{
		denormalizers: append([]normalizer.Denormalizer(nil), denormalizers...),
		defaults:      normalizer.Context{},
		tagName:       defaultTagName,
		log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map decodes data into out, which must be a non-nil pointer.
//
// Denormalizer failures are returned unchanged: a single failure as is,
// several as a *PartialDenormalizationError. Any other decode failure wraps
// ErrMapping; a failed validation wraps ErrValidation.
func (m *Mapper) Map(data any, out any, ctx normalizer.Context) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, out)
	}

	callCtx := m.defaults.Merge(ctx)
	data = omitIgnored(data, callCtx.IgnoredAttributes())

	var (
		failures []error
		metadata mapstructure.Metadata
	)
	hook := func(_ reflect.Type, to reflect.Type, value any) (any, error) {
		for _, d := range m.denormalizers {
			if !d.SupportsDenormalization(value, to) {
				continue
			}
			result, err := d.Denormalize(value, to, callCtx)
			if err != nil {
				m.log.Debug("Denormalization failed",
					zap.String("target", to.String()),
					zap.Error(err),
				)
				failures = append(failures, err)
				return nil, err
			}
			return result, nil
		}
		return value, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          m.tagName,
		WeaklyTypedInput: true,
		ErrorUnused:      !callCtx.AllowExtraAttributes(),
		Metadata:         &metadata,
		DecodeHook:       mapstructure.DecodeHookFuncType(hook),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrMapping, err)
	}

	if err := decoder.Decode(data); err != nil {
		switch len(failures) {
		case 0:
			return fmt.Errorf("%w: %v", ErrMapping, err)
		case 1:
			return failures[0]
		default:
			return &PartialDenormalizationError{Errors: failures}
		}
	}

	if len(metadata.Unused) > 0 {
		sort.Strings(metadata.Unused)
		m.log.Debug("Ignoring extra attributes", zap.Strings("keys", metadata.Unused))
	}

	return m.validateResult(out)
}

func (m *Mapper) validateResult(out any) error {
	if m.validate == nil {
		return nil
	}
	if reflect.Indirect(reflect.ValueOf(out)).Kind() != reflect.Struct {
		return nil
	}
	if err := m.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// MapTo decodes data into a new value of type T
func MapTo[T any](m *Mapper, data any, ctx normalizer.Context) (T, error) {
	var out T
	err := m.Map(data, &out, ctx)
	return out, err
}

func omitIgnored(data any, ignored []string) any {
	if len(ignored) == 0 {
		return data
	}
	if fields, ok := data.(map[string]any); ok {
		return lo.OmitByKeys(fields, ignored)
	}
	return data
}

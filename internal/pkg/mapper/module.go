package mapper

import (
	"reflect"
	"strings"

	"mapkit/internal/pkg/config"
	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/normalizer"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// Module exports the mapper module for FX
var Module = fx.Module("mapper",
	fx.Provide(NewFromParams),
)

// Params holds the mapper dependencies; denormalizers come from the
// "denormalizers" value group
type Params struct {
	fx.In

	Config        *config.Config
	Logger        *logger.Logger
	Denormalizers []normalizer.Denormalizer `group:"denormalizers"`
}

// NewFromParams builds a validating mapper whose default context is the
// common context merged with the denormalizer context
func NewFromParams(p Params) *Mapper {
	serializer := p.Config.Serializer
	return New(p.Denormalizers,
		WithDefaultContext(normalizer.RoleContext(serializer.Context.Common, serializer.Context.Denormalizer)),
		WithTagName(serializer.TagName),
		WithValidator(NewValidator(serializer.TagName)),
		WithLogger(p.Logger),
	)
}

// NewValidator returns a validator that reports field names from tagName
func NewValidator(tagName string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get(tagName), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

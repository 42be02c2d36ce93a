package normalizer

import (
	"mapkit/internal/pkg/config"
	"mapkit/internal/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the configured normalizers and contributes them to the
// "normalizers" and "denormalizers" value groups
var Module = fx.Module("normalizer",
	fx.Provide(
		NewDateTimeNormalizerFromConfig,
		NewRowNormalizer,
		fx.Annotate(dateTimeAsNormalizer, fx.ResultTags(`group:"normalizers"`)),
		fx.Annotate(rowAsNormalizer, fx.ResultTags(`group:"normalizers"`)),
		fx.Annotate(dateTimeAsDenormalizer, fx.ResultTags(`group:"denormalizers"`)),
		fx.Annotate(rowAsDenormalizer, fx.ResultTags(`group:"denormalizers"`)),
	),
)

// NewDateTimeNormalizerFromConfig builds the normalizer from the serializer
// section: the common context, then the normalizer context, then the
// datetime settings
func NewDateTimeNormalizerFromConfig(cfg *config.Config, log *logger.Logger) (*DateTimeNormalizer, error) {
	ctx := RoleContext(cfg.Serializer.Context.Common, cfg.Serializer.Context.Normalizer).
		Merge(dateTimeSettings(cfg.Serializer.DateTime))

	n, err := NewDateTimeNormalizer(ctx)
	if err != nil {
		return nil, err
	}

	defaults := n.Defaults()
	timezone := "keep"
	if defaults.Timezone != nil {
		timezone = defaults.Timezone.String()
	}
	log.Info("Date-time normalizer configured",
		zap.String("format", defaults.Format),
		zap.String("timezone", timezone),
		zap.String("cast", string(defaults.Cast)),
	)
	return n, nil
}

// RoleContext layers a role's context over the common one
func RoleContext(common, role map[string]any) Context {
	return Context(common).Merge(role)
}

func dateTimeSettings(dt config.DateTimeConfig) map[string]any {
	settings := map[string]any{}
	if dt.Format != "" {
		settings[FormatKey] = dt.Format
	}
	if dt.Timezone != "" {
		settings[TimezoneKey] = dt.Timezone
	}
	if dt.Cast != "" {
		settings[CastKey] = dt.Cast
	}
	return settings
}

func dateTimeAsNormalizer(n *DateTimeNormalizer) Normalizer     { return n }
func rowAsNormalizer(n *RowNormalizer) Normalizer               { return n }
func dateTimeAsDenormalizer(n *DateTimeNormalizer) Denormalizer { return n }
func rowAsDenormalizer(n *RowNormalizer) Denormalizer           { return n }

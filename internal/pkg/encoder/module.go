package encoder

import (
	"mapkit/internal/pkg/config"
	"mapkit/internal/pkg/normalizer"

	"go.uber.org/fx"
)

// Module exports the encoder module for FX
var Module = fx.Module("encoder",
	fx.Provide(
		fx.Annotate(provideJSONEncoder, fx.ResultTags(`group:"encoders"`)),
		fx.Annotate(provideYAMLEncoder, fx.ResultTags(`group:"encoders"`)),
		provideRegistry,
	),
)

type registryParams struct {
	fx.In

	Encoders []Encoder `group:"encoders"`
}

func provideRegistry(p registryParams) *Registry {
	return NewRegistry(p.Encoders...)
}

func encoderContext(cfg *config.Config) normalizer.Context {
	return normalizer.RoleContext(cfg.Serializer.Context.Common, cfg.Serializer.Context.Encoder)
}

func provideJSONEncoder(cfg *config.Config) (Encoder, error) {
	return NewJSONEncoder(encoderContext(cfg))
}

func provideYAMLEncoder(cfg *config.Config) (Encoder, error) {
	return NewYAMLEncoder(encoderContext(cfg))
}

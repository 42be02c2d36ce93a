package health

import (
	"time"

	"mapkit/internal/pkg/database"
	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/normalizer"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module exports the health module for FX
var Module = fx.Module("health",
	fx.Provide(NewHealthService),
)

// HealthServiceParams defines the dependencies for the health service
type HealthServiceParams struct {
	fx.In

	Logger     *logger.Logger
	Normalizer *normalizer.DateTimeNormalizer
	DB         *database.Database `optional:"true"`
}

// NewHealthService constructs the health service with the providers the app has
func NewHealthService(params HealthServiceParams) (*Service, error) {
	service := NewService(DefaultTimeout, NewNormalizerProvider(params.Normalizer))

	if params.DB != nil {
		sqlDB, err := params.DB.DB.DB()
		if err != nil {
			return nil, err
		}
		service.RegisterProvider(NewDatabaseProvider("database", sqlDB, time.Second))
		params.Logger.Info("Registered database health provider")
	}

	params.Logger.Info("Health service initialized", zap.Int("providers", len(service.providers)))
	return service, nil
}

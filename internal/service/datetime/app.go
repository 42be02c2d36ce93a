package datetime

import (
	"mapkit/internal/pkg/config"
	"mapkit/internal/pkg/database"
	"mapkit/internal/pkg/encoder"
	"mapkit/internal/pkg/health"
	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/mapper"
	"mapkit/internal/pkg/normalizer"
	"mapkit/internal/pkg/server"

	"go.uber.org/fx"
)

// CoreApp provides the conversion pipeline without any transport
var CoreApp = fx.Options(
	config.Module,
	logger.Module,
	normalizer.Module,
	mapper.Module,
	encoder.Module,

	fx.Provide(NewDateTimeService),
)

// ServeApp provides the HTTP API
var ServeApp = fx.Options(
	CoreApp,
	server.Module,
	health.Module,

	fx.Provide(NewDateTimeHandler),

	fx.Invoke(registerDateTimeRoutes),
	fx.Invoke(registerHealthRoutes),
)

// RowsApp provides the conversion pipeline backed by the database
var RowsApp = fx.Options(
	CoreApp,
	database.Module,

	fx.Provide(provideRowSource),
)

func provideRowSource(db *database.Database) database.RowSource {
	return db
}

// registerDateTimeRoutes registers date-time routes on the Echo server
func registerDateTimeRoutes(srv *server.Server, handler *DateTimeHandler) {
	RegisterDateTimeRoutes(srv.GetEcho(), handler)
}

func registerHealthRoutes(srv *server.Server, service *health.Service) {
	health.RegisterRoutes(srv.GetEcho(), service)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mapkit/internal/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module exports the server module for FX
var Module = fx.Module("server",
	fx.Provide(NewEchoServer),
	fx.Invoke(registerHooks),
)

// registerHooks starts the listener on start and drains it on stop
func registerHooks(lc fx.Lifecycle, server *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server error", zap.Error(err))
				}
			}()
			log.Info("Server module started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			timeout := time.Duration(server.config.Server.ShutdownTimeout) * time.Second
			shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			log.Info("Stopping server")
			return server.Shutdown(shutdownCtx)
		},
	})
}

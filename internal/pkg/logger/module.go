package logger

import (
	"context"

	"go.uber.org/fx"
)

// Module exports the logger module for FX
var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Invoke(registerHooks),
)

// registerHooks flushes buffered entries on shutdown
func registerHooks(lc fx.Lifecycle, log *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stdout/stderr sinks return EINVAL on sync, nothing to report
			_ = log.Sync()
			return nil
		},
	})
}

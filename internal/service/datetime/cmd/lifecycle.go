package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"mapkit/internal/pkg/logger"

	"go.uber.org/fx"
)

// startApp starts an fx application with proper context handling
func startApp(app *fx.App, serviceName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start %s: %w", serviceName, err)
	}

	return nil
}

// stopApp stops an fx application with proper context handling
func stopApp(app *fx.App, serviceName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()

	if err := app.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop %s: %w", serviceName, err)
	}

	return nil
}

// quietLogger keeps log lines out of command output
var quietLogger = fx.Decorate(func(*logger.Logger) *logger.Logger {
	return logger.NewNop()
})

// writeOutput writes encoded output followed by exactly one newline
func writeOutput(w io.Writer, out []byte) error {
	_, err := fmt.Fprintf(w, "%s\n", bytes.TrimRight(out, "\n"))
	return err
}

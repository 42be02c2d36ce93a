package main

import (
	"fmt"

	"mapkit/internal/pkg/config"
	"mapkit/internal/service/datetime"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// runServer starts the HTTP API and blocks until a shutdown signal
func runServer() error {
	var cfg *config.Config
	app := fx.New(
		datetime.ServeApp,
		fx.Populate(&cfg),
		fx.NopLogger,
	)

	if err := startApp(app, "date-time service"); err != nil {
		return err
	}

	fmt.Printf("Date-time service started successfully on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	<-app.Done()

	return stopApp(app, "date-time service")
}

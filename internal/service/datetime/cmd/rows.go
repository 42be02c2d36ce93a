package main

import (
	"context"

	"mapkit/internal/pkg/encoder"
	"mapkit/internal/pkg/normalizer"
	"mapkit/internal/service/datetime"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// newRowsCmd creates the rows command
func newRowsCmd() *cobra.Command {
	var (
		limit   int
		output  string
		ignored []string
	)

	cmd := &cobra.Command{
		Use:   "rows TABLE",
		Short: "Export table rows with date-time columns normalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *datetime.DateTimeService
			app := fx.New(
				datetime.RowsApp,
				quietLogger,
				fx.Populate(&svc),
				fx.NopLogger,
			)
			if err := startApp(app, "row export"); err != nil {
				return err
			}
			defer stopApp(app, "row export")

			ctx := normalizer.Context{}
			if len(ignored) > 0 {
				ctx[normalizer.IgnoredAttributesKey] = ignored
			}

			rows, err := svc.ExportRows(context.Background(), args[0], limit, ctx)
			if err != nil {
				return err
			}

			out, err := svc.Encode(output, rows)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of rows, 0 for all")
	cmd.Flags().StringVarP(&output, "output", "o", encoder.FormatJSON, "output format: json or yaml")
	cmd.Flags().StringSliceVar(&ignored, "ignore", nil, "columns to leave out")

	return cmd
}

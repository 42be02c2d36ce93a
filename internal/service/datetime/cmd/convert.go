package main

import (
	"mapkit/internal/pkg/encoder"
	"mapkit/internal/pkg/normalizer"
	"mapkit/internal/service/datetime"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type convertOptions struct {
	fromFormat string
	toFormat   string
	fromZone   string
	timezone   string
	cast       string
	input      string
	output     string
}

// newConvertCmd creates the convert command
func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert a date-time value",
		Example: `  mapkit convert 2024-01-01T00:00:00+00:00 --to-format U --cast int
  mapkit convert 1704067200 --from-format U --timezone Europe/Prague --cast array --output yaml
  mapkit convert '{"date":"2024-01-01 01:00:00","timezone":"Europe/Prague"}' --input json --from-format "2006-01-02 15:04:05"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *datetime.DateTimeService
			app := fx.New(
				datetime.CoreApp,
				quietLogger,
				fx.Populate(&svc),
				fx.NopLogger,
			)
			err := startApp(app, "converter")
			if err != nil {
				return err
			}
			defer stopApp(app, "converter")

			var input any = args[0]
			if opts.input != "" {
				if input, err = svc.Decode(opts.input, []byte(args[0])); err != nil {
					return err
				}
			}

			value, err := svc.Convert(input, opts.fromContext(), opts.toContext())
			if err != nil {
				return err
			}

			out, err := svc.Encode(opts.output, value)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&opts.fromFormat, "from-format", "", "layout of VALUE (Go reference layout, U or U.u)")
	cmd.Flags().StringVar(&opts.fromZone, "from-timezone", "", "zone VALUE is read in when it carries no offset")
	cmd.Flags().StringVar(&opts.toFormat, "to-format", "", "layout of the result")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "zone of the result")
	cmd.Flags().StringVar(&opts.cast, "cast", "", "result type: int, float or array")
	cmd.Flags().StringVar(&opts.input, "input", "", "decode VALUE as json or yaml first; VALUE is a plain string when unset")
	cmd.Flags().StringVarP(&opts.output, "output", "o", encoder.FormatJSON, "output format: json or yaml")

	return cmd
}

func (o *convertOptions) fromContext() normalizer.Context {
	ctx := normalizer.Context{}
	if o.fromFormat != "" {
		ctx[normalizer.FormatKey] = o.fromFormat
	}
	if o.fromZone != "" {
		ctx[normalizer.TimezoneKey] = o.fromZone
	}
	return ctx
}

func (o *convertOptions) toContext() normalizer.Context {
	ctx := normalizer.Context{}
	if o.toFormat != "" {
		ctx[normalizer.FormatKey] = o.toFormat
	}
	if o.timezone != "" {
		ctx[normalizer.TimezoneKey] = o.timezone
	}
	if o.cast != "" {
		ctx[normalizer.CastKey] = o.cast
	}
	return ctx
}

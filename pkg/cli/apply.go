package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/cli/config"
	"github.com/secmon-lab/jsmconf/pkg/usecase"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdApply() *cli.Command {
	var rt runtime
	var iterations int
	var fieldsPath string
	var interval time.Duration

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "iterations",
			Aliases:     []string{"n"},
			Usage:       "Number of copies of each field template to create",
			Value:       1,
			Destination: &iterations,
		},
		&cli.StringFlag{
			Name:        "fields",
			Usage:       "Path to a TOML file of field templates (default: built-in templates)",
			Sources:     cli.EnvVars("JSMCONF_FIELDS"),
			Destination: &fieldsPath,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Pause between two field creations",
			Sources:     cli.EnvVars("JSMCONF_INTERVAL"),
			Destination: &interval,
		},
	}
	flags = append(flags, rt.Flags()...)

	return &cli.Command{
		Name:  "apply",
		Usage: "Destroy the fields of the previous run, then create new ones and record them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if iterations <= 0 {
				return goerr.Wrap(usecase.ErrInvalidIterations, "--iterations must be positive",
					goerr.V(usecase.IterationsKey, iterations))
			}

			schema, err := config.LoadFieldSchema(fieldsPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load field templates")
			}

			uc, closer, err := rt.useCases(ctx, usecase.WithInterval(interval))
			if err != nil {
				return err
			}
			defer closer()

			logging.From(ctx).Info("Applying custom fields",
				"templates", len(schema.Fields),
				"iterations", iterations,
				"interval", interval,
			)

			report, err := uc.Apply(ctx, schema.Fields, iterations)
			printApplyReport(c.Root().Writer, report)
			if err != nil {
				return goerr.Wrap(err, "apply failed")
			}
			return nil
		},
	}
}

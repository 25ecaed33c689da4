package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdClean() *cli.Command {
	var rt runtime
	var query string
	var dryRun bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Delete every custom field whose name matches this query",
			Required:    true,
			Destination: &query,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "List matching fields without deleting them",
			Destination: &dryRun,
		},
	}
	flags = append(flags, rt.Flags()...)

	return &cli.Command{
		Name:  "clean",
		Usage: "Delete custom fields by name, whether or not they are recorded in the state",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := rt.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			report, err := uc.Clean(ctx, query, dryRun)
			if err != nil {
				return goerr.Wrap(err, "clean failed")
			}
			printCleanReport(c.Root().Writer, report)
			return nil
		},
	}
}

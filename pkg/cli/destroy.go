package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdDestroy() *cli.Command {
	var rt runtime

	return &cli.Command{
		Name:  "destroy",
		Usage: "Delete every custom field recorded in the state",
		Flags: rt.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := rt.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			report, err := uc.Destroy(ctx)
			printDestroyReport(c.Root().Writer, report)
			if err != nil {
				return goerr.Wrap(err, "destroy failed")
			}
			return nil
		},
	}
}

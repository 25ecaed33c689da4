package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdInspect() *cli.Command {
	var rt runtime

	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the default answer of every recorded custom field as JSON",
		Flags: rt.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := rt.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			answers, err := uc.Inspect(ctx)
			if err != nil {
				return goerr.Wrap(err, "inspect failed")
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(answers); err != nil {
				return goerr.Wrap(err, "failed to write default answers")
			}
			return nil
		},
	}
}

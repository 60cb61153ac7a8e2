package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/emolens/pkg/usecase/history"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)

	return &cli.Command{
		Name:  "history",
		Usage: "List recent analysis records, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			user, err := cfg.currentUser()
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			records := history.New(repo).List(ctx, user.ID)
			if len(records) == 0 {
				fmt.Fprintf(c.Root().Writer, "No analysis history for %s\n", user.Email)
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(c.Root().Writer, "%s %s\t%-10s\t%s\n",
					r.DisplayDate,
					r.DisplayTime,
					r.Sentiment,
					r.Input,
				)
			}

			return nil
		},
	}
}

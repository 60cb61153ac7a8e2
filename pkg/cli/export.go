package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/emolens/pkg/usecase/export"
	"github.com/m-mizutani/emolens/pkg/usecase/history"
	"github.com/urfave/cli/v3"
)

func exportCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, bigqueryFlags(&cfg)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Archive the current history window to BigQuery",
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

			bq, err := cfg.newBigQuery(ctx)
			if err != nil {
				return err
			}

			store := history.New(repo)
			count, err := export.Run(ctx, store, bq, user.ID)
			if err != nil {
				return err
			}

			if count == 0 {
				fmt.Fprintf(c.Root().Writer, "No records to export\n")
				return nil
			}
			fmt.Fprintf(c.Root().Writer, "Exported %d records to %s.%s\n", count, cfg.bqDataset, cfg.bqTable)
			return nil
		},
	}
}

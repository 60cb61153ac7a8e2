package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/usecase/analysis"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func correctCommand() *cli.Command {
	return &cli.Command{
		Name:  "correct",
		Usage: "Teach the analyzer with corrected labels",
		Commands: []*cli.Command{
			correctAddCommand(),
			correctListCommand(),
			correctImportCommand(),
		},
	}
}

func correctAddCommand() *cli.Command {
	var (
		cfg         config
		text, label string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "The original input text",
			Destination: &text,
		},
		&cli.StringFlag{
			Name:        "label",
			Aliases:     []string{"l"},
			Usage:       "The sentiment label the text should have received",
			Destination: &label,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "add",
		Usage: "Record one correction",
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

			corrections, err := analysis.LoadCorrections(ctx, repo, user.ID)
			if err != nil {
				return err
			}

			if err := analysis.Teach(ctx, repo, user.ID, corrections, text, label); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Recorded: %q should be labeled %s\n", text, label)
			return nil
		},
	}
}

func correctListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List recorded corrections",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			user, err := cfg.currentUser()
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			corrections, err := analysis.LoadCorrections(ctx, repo, user.ID)
			if err != nil {
				return err
			}

			items := corrections.Items()
			if len(items) == 0 {
				fmt.Fprintf(c.Root().Writer, "No corrections recorded\n")
				return nil
			}

			for _, item := range items {
				fmt.Fprintf(c.Root().Writer, "%s\t%q -> %s\n",
					item.CreatedAt.Format("2006-01-02 15:04:05"),
					item.OriginalText,
					item.CorrectLabel,
				)
			}
			return nil
		},
	}
}

// correctionEntry is the YAML import format: a list of {text, label} pairs
type correctionEntry struct {
	Text  string `yaml:"text"`
	Label string `yaml:"label"`
}

func correctImportCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a YAML file of corrections",
			Destination: &inputPath,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Import corrections from a YAML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if inputPath == "" {
				return goerr.New("input file path is required")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
			}

			var entries []correctionEntry
			if err := yaml.Unmarshal(data, &entries); err != nil {
				return goerr.Wrap(err, "failed to parse corrections file")
			}

			user, err := cfg.currentUser()
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			corrections, err := analysis.LoadCorrections(ctx, repo, user.ID)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				if err := analysis.Teach(ctx, repo, user.ID, corrections, entry.Text, entry.Label); err != nil {
					return goerr.Wrap(err, "failed to import correction", goerr.V("text", entry.Text))
				}
			}

			fmt.Fprintf(c.Root().Writer, "Imported %d corrections\n", len(entries))
			return nil
		},
	}
}

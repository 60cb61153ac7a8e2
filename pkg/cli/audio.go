package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/adapter"
	"github.com/urfave/cli/v3"
)

func audioCommand() *cli.Command {
	var (
		cfg              config
		recordID, output string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "record",
			Aliases:     []string{"r"},
			Usage:       "Record ID of the archived audio",
			Destination: &recordID,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path to write the audio file",
			Destination: &output,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storageFlags(&cfg)...)

	return &cli.Command{
		Name:  "audio",
		Usage: "Download the archived audio of an analysis record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if recordID == "" {
				return goerr.New("record ID is required")
			}
			if output == "" {
				return goerr.New("output path is required")
			}

			user, err := cfg.currentUser()
			if err != nil {
				return err
			}

			st, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}
			if st == nil {
				return goerr.New("bucket is required")
			}

			f, err := os.Create(output)
			if err != nil {
				return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
			}
			defer f.Close()

			n, err := fetchAudio(ctx, st, user.ID, recordID, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Saved %d bytes to %s\n", n, output)
			return nil
		},
	}
}

// fetchAudio streams one archived audio blob into w
func fetchAudio(ctx context.Context, st adapter.Storage, uid, recordID string, w io.Writer) (int64, error) {
	r, err := st.Get(ctx, adapter.AudioKey(uid, recordID))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open archived audio",
			goerr.V("uid", uid), goerr.V("record_id", recordID))
	}
	defer r.Close()

	n, err := io.Copy(w, r)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read archived audio", goerr.V("record_id", recordID))
	}
	return n, nil
}

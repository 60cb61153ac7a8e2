package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/emolens/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	logger := logging.New(os.Getenv("EMOLENS_LOG_LEVEL"), os.Stderr)
	logging.SetDefault(logger)
	ctx = logging.With(ctx, logger)

	cmd := &cli.Command{
		Name:  "emolens",
		Usage: "Sentiment and emotion analysis with cloud-backed history",
		Commands: []*cli.Command{
			authCommand(),
			analyzeCommand(),
			historyCommand(),
			audioCommand(),
			profileCommand(),
			correctCommand(),
			exportCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logger.Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/usecase/analysis"
	"github.com/m-mizutani/emolens/pkg/usecase/history"
	"github.com/m-mizutani/emolens/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func analyzeCommand() *cli.Command {
	var (
		cfg         config
		text        string
		audioPath   string
		interactive bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "Text to analyze",
			Destination: &text,
		},
		&cli.StringFlag{
			Name:        "audio",
			Aliases:     []string{"a"},
			Usage:       "Path to an audio file to analyze",
			Destination: &audioPath,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "Read inputs interactively, one analysis per line",
			Destination: &interactive,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, storageFlags(&cfg)...)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Score the emotional tone of text or audio",
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

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			corrections, err := analysis.LoadCorrections(ctx, repo, user.ID)
			if err != nil {
				// Analysis still works without the teaching context
				logging.From(ctx).Warn("failed to load corrections", "error", err)
				corrections = analysis.NewCorrections()
			}

			session := analysis.New(analysis.NewInput{
				Gemini:      gemini,
				Store:       history.New(repo),
				Storage:     storage,
				Corrections: corrections,
				UID:         user.ID,
			})

			switch {
			case interactive:
				return runInteractive(ctx, c.Root().Writer, session)
			case audioPath != "":
				return analyzeAudioFile(ctx, c.Root().Writer, session, audioPath)
			case text != "":
				return analyzeText(ctx, c.Root().Writer, session, text)
			default:
				return goerr.New("one of --text, --audio or --interactive is required")
			}
		},
	}
}

func analyzeText(ctx context.Context, w io.Writer, session *analysis.Session, text string) error {
	result, err := submitWithSpinner(ctx, w, func() (*analysis.Result, error) {
		return session.Submit(ctx, text)
	})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	printResult(w, result)
	return nil
}

func analyzeAudioFile(ctx context.Context, w io.Writer, session *analysis.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read audio file", goerr.V("path", path))
	}

	result, err := submitWithSpinner(ctx, w, func() (*analysis.Result, error) {
		return session.SubmitAudio(ctx, data, audioMIMEType(path))
	})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	fmt.Fprintf(w, "Transcript: %s\n", result.Input)
	printResult(w, result)
	return nil
}

func runInteractive(ctx context.Context, w io.Writer, session *analysis.Session) error {
	rl, err := readline.New("emolens> ")
	if err != nil {
		return goerr.Wrap(err, "failed to start interactive prompt")
	}
	defer rl.Close()

	fmt.Fprintf(w, "Type text to analyze, 'exit' to quit.\n")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return goerr.Wrap(err, "failed to read input")
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		result, err := submitWithSpinner(ctx, w, func() (*analysis.Result, error) {
			return session.Submit(ctx, line)
		})
		if err != nil {
			// Failed state is recoverable, let the user retry
			fmt.Fprintf(w, "Error: %s\n", session.ErrMessage())
			continue
		}
		if result != nil {
			printResult(w, result)
		}
	}
}

func submitWithSpinner(ctx context.Context, w io.Writer, submit func() (*analysis.Result, error)) (*analysis.Result, error) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	sp.Suffix = " analyzing..."
	sp.Start()
	defer sp.Stop()

	return submit()
}

func printResult(w io.Writer, result *analysis.Result) {
	fmt.Fprintf(w, "Sentiment: %s\n", result.Sentiment)
	fmt.Fprintf(w, "  Happiness: %d\n", result.Profile.Happiness)
	fmt.Fprintf(w, "  Sadness:   %d\n", result.Profile.Sadness)
	fmt.Fprintf(w, "  Anger:     %d\n", result.Profile.Anger)
	fmt.Fprintf(w, "  Fear:      %d\n", result.Profile.Fear)
	fmt.Fprintf(w, "  Surprise:  %d\n", result.Profile.Surprise)
	fmt.Fprintf(w, "  Disgust:   %d\n", result.Profile.Disgust)
}

// audioMIMEType maps the file extension to the MIME type the model expects
func audioMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		// default to mp4 for unknown extensions
		return "audio/mp4"
	}
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/usecase/profile"
	"github.com/urfave/cli/v3"
)

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show or update the user profile",
		Commands: []*cli.Command{
			profileShowCommand(),
			profileUpdateCommand(),
			profileAvatarCommand(),
		},
	}
}

func (cfg *config) newProfileUseCase(ctx context.Context) (*profile.UseCase, *model.User, error) {
	user, err := cfg.currentUser()
	if err != nil {
		return nil, nil, err
	}

	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	gemini, err := cfg.newGemini(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := []profile.Option{}
	if cfg.authAPIKey != "" {
		auth, err := cfg.newAuth(ctx)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, profile.WithAuth(auth))
	}

	return profile.New(repo, gemini, opts...), user, nil
}

func profileShowCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Print the current profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, user, err := cfg.newProfileUseCase(ctx)
			if err != nil {
				return err
			}

			p, err := uc.Get(ctx, user.ID)
			if err != nil {
				return err
			}

			printProfile(c.Root().Writer, p)
			return nil
		},
	}
}

func profileUpdateCommand() *cli.Command {
	var (
		cfg         config
		name, email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Display name",
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Email address",
			Destination: &email,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, authFlags(&cfg)...)

	return &cli.Command{
		Name:  "update",
		Usage: "Update display name and email",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, user, err := cfg.newProfileUseCase(ctx)
			if err != nil {
				return err
			}

			if email == "" {
				email = user.Email
			}

			p, err := uc.Update(ctx, user, name, email)
			if err != nil {
				return err
			}

			printProfile(c.Root().Writer, p)
			return nil
		},
	}
}

func profileAvatarCommand() *cli.Command {
	var (
		cfg            config
		imageURI       string
		emoji          string
		generatePrompt string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "image",
			Usage:       "Photo reference for the avatar",
			Destination: &imageURI,
		},
		&cli.StringFlag{
			Name:        "emoji",
			Usage:       "Emoji glyph for the avatar",
			Destination: &emoji,
		},
		&cli.StringFlag{
			Name:        "generate",
			Usage:       "Ask the model to pick an emoji for this description",
			Destination: &generatePrompt,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "avatar",
		Usage: "Set the avatar (photo, emoji, or AI-generated emoji)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, user, err := cfg.newProfileUseCase(ctx)
			if err != nil {
				return err
			}

			var p *model.UserProfile
			switch {
			case imageURI != "":
				p, err = uc.SetImage(ctx, user.ID, imageURI)
			case emoji != "":
				p, err = uc.SetEmoji(ctx, user.ID, emoji)
			case generatePrompt != "":
				p, err = uc.GenerateAvatar(ctx, user.ID, generatePrompt)
			default:
				return goerr.New("one of --image, --emoji or --generate is required")
			}
			if err != nil {
				return err
			}

			printProfile(c.Root().Writer, p)
			return nil
		},
	}
}

func printProfile(w io.Writer, p *model.UserProfile) {
	fmt.Fprintf(w, "Name:  %s\n", p.Name)
	fmt.Fprintf(w, "Email: %s\n", p.Email)
	switch {
	case p.ImageURI != "":
		fmt.Fprintf(w, "Avatar: photo (%s)\n", p.ImageURI)
	case p.AvatarEmoji != "" && p.GeneratedAvatar:
		fmt.Fprintf(w, "Avatar: %s (generated)\n", p.AvatarEmoji)
	case p.AvatarEmoji != "":
		fmt.Fprintf(w, "Avatar: %s\n", p.AvatarEmoji)
	default:
		fmt.Fprintf(w, "Avatar: none\n")
	}
}

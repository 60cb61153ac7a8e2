package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in account",
		Commands: []*cli.Command{
			loginCommand(),
			signupCommand(),
			resetPasswordCommand(),
			logoutCommand(),
			whoamiCommand(),
		},
	}
}

func credentialFlags(email, password *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Account email address",
			Sources:     cli.EnvVars("EMOLENS_EMAIL"),
			Destination: email,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Account password",
			Sources:     cli.EnvVars("EMOLENS_PASSWORD"),
			Destination: password,
		},
	}
}

func loginCommand() *cli.Command {
	var (
		cfg             config
		email, password string
	)

	flags := credentialFlags(&email, &password)
	flags = append(flags, authFlags(&cfg)...)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "login",
		Usage: "Sign in with email and password",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if email == "" || password == "" {
				return goerr.New("email and password are required")
			}

			auth, err := cfg.newAuth(ctx)
			if err != nil {
				return err
			}

			user, err := auth.SignIn(ctx, email, password)
			if err != nil {
				return goerr.Wrap(err, "sign in failed")
			}

			if err := cfg.saveSession(user); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Signed in as %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	var (
		cfg             config
		email, password string
	)

	flags := credentialFlags(&email, &password)
	flags = append(flags, authFlags(&cfg)...)
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "signup",
		Usage: "Create a new account",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if email == "" || password == "" {
				return goerr.New("email and password are required")
			}

			auth, err := cfg.newAuth(ctx)
			if err != nil {
				return err
			}

			user, err := auth.SignUp(ctx, email, password)
			if err != nil {
				return goerr.Wrap(err, "sign up failed")
			}

			if err := cfg.saveSession(user); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Account created: %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
}

func resetPasswordCommand() *cli.Command {
	var (
		cfg   config
		email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Account email address",
			Sources:     cli.EnvVars("EMOLENS_EMAIL"),
			Destination: &email,
		},
	}
	flags = append(flags, authFlags(&cfg)...)

	return &cli.Command{
		Name:  "reset-password",
		Usage: "Send a password reset email",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if email == "" {
				return goerr.New("email is required")
			}

			auth, err := cfg.newAuth(ctx)
			if err != nil {
				return err
			}

			if err := auth.SendPasswordReset(ctx, email); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Password reset email sent to %s\n", email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the signed-in account",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.clearSession(); err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "Signed out\n")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in account",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			user, err := cfg.currentUser()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\n", user.ID, user.Email, user.DisplayName)
			return nil
		},
	}
}

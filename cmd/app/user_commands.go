package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/staffdocs/cmd/app/commands"
	"github.com/allisson/staffdocs/internal/app"
	"github.com/allisson/staffdocs/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a new user account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name (lowercase letters, digits, dots, underscores)",
				},
				&cli.StringFlag{
					Name:     "full-name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name of the account holder",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Contact email address",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Initial password (omit for interactive prompt)",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "operator",
					Usage:   "Account role: 'admin' or 'operator'",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the account can log in immediately",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("username"),
					cmd.String("full-name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("role"),
					cmd.Bool("active"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

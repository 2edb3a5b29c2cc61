package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/keyfort/keyfort/cmd/app/commands"
	"github.com/keyfort/keyfort/internal/app"
	"github.com/keyfort/keyfort/internal/config"
)

func getAPIKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-api-key",
			Usage: "Create a new API key under a unique label",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "label",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Unique label identifying the key (e.g., deploy, backup)",
				},
				&cli.IntFlag{
					Name:    "ttl-days",
					Aliases: []string{"t"},
					Value:   0,
					Usage:   "Key lifetime in days (0 means the key never expires)",
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

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAPIKey(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("label"),
					time.Duration(cmd.Int("ttl-days"))*24*time.Hour,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-api-key",
			Usage: "Permanently revoke an API key by label",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "label",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Label of the key to revoke",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeAPIKey(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("label"),
				)
			},
		},
		{
			Name:  "list-api-keys",
			Usage: "List active API keys",
			Flags: []cli.Flag{
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

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunListAPIKeys(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}

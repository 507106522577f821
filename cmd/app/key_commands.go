package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/redactor/cmd/app/commands"
	"github.com/allisson/redactor/internal/app"
	"github.com/allisson/redactor/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key-pair",
			Usage: "Generate the RSA private key used for the session key handshake",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Value:   2048,
					Usage:   "RSA modulus size (at least 2048)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "Encrypt the key with this KMS key (e.g., base64key://, hashivault://, awskms://)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "Write the key to this file instead of stdout",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					return commands.RunCreateKeyPair(
						ctx,
						container.KeyLoader(),
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("bits")),
						cmd.String("kms-key-uri"),
						cmd.String("output"),
					)
				})
			},
		},
	}
}

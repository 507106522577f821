package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/redactor/cmd/app/commands"
	"github.com/allisson/redactor/internal/client"
)

func clientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Value:   "http://localhost:10003",
			Usage:   "Base URL of the redactor server",
			Sources: cli.EnvVars("REDACTOR_URL"),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 2 * time.Minute,
			Usage: "Timeout of every request",
		},
	}
}

func newClient(cmd *cli.Command) *client.Client {
	return client.New(client.Config{
		BaseURL: cmd.String("server"),
		Timeout: cmd.Duration("timeout"),
	})
}

func getClientCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "upload",
			Usage:     "Encrypt a document and upload it for redaction",
			ArgsUsage: "[file|-]",
			Flags: append(clientFlags(),
				&cli.StringFlag{
					Name:    "strategy",
					Aliases: []string{"r"},
					Value:   "",
					Usage:   "Redaction strategy: replace, mask, fake or custom (server default when empty)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Value:   "",
					Usage:   "File name sent to the server (defaults to the input file name)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunUpload(
					ctx,
					newClient(cmd),
					commands.DefaultIO(),
					cmd.Args().First(),
					cmd.String("name"),
					cmd.String("strategy"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "download",
			Usage:     "Download a redacted document",
			ArgsUsage: "<file_id>",
			Flags: append(clientFlags(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "Write to this file or directory instead of stdout",
				},
				&cli.BoolFlag{
					Name:  "delete",
					Value: false,
					Usage: "Delete the artifact from the server after downloading it",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return cli.Exit("download expects exactly one file id", 2)
				}
				return commands.RunDownload(
					ctx,
					newClient(cmd),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.String("output"),
					cmd.Bool("delete"),
				)
			},
		},
		{
			Name:      "delete",
			Usage:     "Delete a redacted document from the server",
			ArgsUsage: "<file_id>",
			Flags:     clientFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return cli.Exit("delete expects exactly one file id", 2)
				}
				return commands.RunDelete(ctx, newClient(cmd), commands.DefaultIO().Writer, cmd.Args().First())
			},
		},
		{
			Name:  "strategies",
			Usage: "List the redaction strategies offered by the server",
			Flags: append(clientFlags(),
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunStrategies(ctx, newClient(cmd), commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}

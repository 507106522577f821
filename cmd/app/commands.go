package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/redactor/internal/app"
	"github.com/allisson/redactor/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := getSystemCommands(version)
	cmds = append(cmds, getKeyCommands()...)
	return append(cmds, getClientCommands()...)
}

// withContainer runs fn against a container built from the environment and shuts
// the container down afterwards.
func withContainer(ctx context.Context, fn func(cfg *config.Config, container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return fn(cfg, container)
}

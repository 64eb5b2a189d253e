package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("ignoring config.toml", "err", err)
		}
	}

	fd := os.Stdout.Fd()
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
		Styled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	})

	app := &cli.Command{
		Name:     "shelf",
		Usage:    "Manage an in-memory library catalog",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

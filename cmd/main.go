package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytag/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "ytag",
		Usage:    "Analyze YouTube channel tags & build playlists from them",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrConfigMissing):
			logger.Error("client secrets not configured")
			logger.Fatalf("%v", err)
		case errors.Is(err, shared.ErrReauthRequired):
			logger.Error("stored credential could not be refreshed, run 'ytag auth login' to reauthorize")
			logger.Fatalf("%v", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

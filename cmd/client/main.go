package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/forumkit/forumkit/internal/client/cli"
	"github.com/forumkit/forumkit/internal/client/config"
	"github.com/forumkit/forumkit/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

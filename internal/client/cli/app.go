// Package cli is the interactive front end of the client: a small REPL over
// the Application.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/forumkit/forumkit/internal/client/app"
	"github.com/forumkit/forumkit/internal/client/config"
	"github.com/forumkit/forumkit/internal/logging"
)

type App struct {
	application *app.Application
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	application, err := app.New(cfg, logger, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &App{
		application: application,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run boots the application and enters the command loop.
func (a *App) Run(ctx context.Context) error {
	defer a.application.Close()

	if err := a.application.Boot(ctx); err != nil {
		return err
	}

	a.printWelcome()
	a.loop(ctx)
	return nil
}

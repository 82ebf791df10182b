// Package server initializes and runs the forum backend: it opens the
// database, runs migrations, starts the HTTP endpoint, and keeps a
// background sweep that purges expired access tokens.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/forumkit/forumkit/internal/logging"
	"github.com/forumkit/forumkit/internal/server/accesstokens"
	"github.com/forumkit/forumkit/internal/server/avatars"
	"github.com/forumkit/forumkit/internal/server/config"
	"github.com/forumkit/forumkit/internal/server/discussions"
	"github.com/forumkit/forumkit/internal/server/httpapi"
	"github.com/forumkit/forumkit/internal/server/posts"
	"github.com/forumkit/forumkit/internal/server/shared/db"
	"github.com/forumkit/forumkit/internal/server/users"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	repoManager  db.RepositoryManager
	httpServer   *httpapi.Server
	tokenService *accesstokens.Service
	gcInterval   time.Duration
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := users.NewService(rm.Users())
	tokenService := accesstokens.NewService(rm.AccessTokens(), cfg)
	discussionService := discussions.NewService(rm.Discussions())
	postService := posts.NewService(rm.Posts(), rm.Discussions())
	avatarService := avatars.NewService(cfg)

	httpServer := httpapi.NewServer(cfg, logger,
		userService, tokenService, discussionService, postService, avatarService)

	return &App{
		config:       cfg,
		logger:       logger,
		repoManager:  rm,
		httpServer:   httpServer,
		tokenService: tokenService,
		gcInterval:   cfg.TokenGCInterval,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runTokenGC periodically deletes expired access tokens.
func (app *App) runTokenGC(ctx context.Context) {
	ticker := time.NewTicker(app.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.tokenService.CollectGarbage(ctx)
			if err != nil {
				app.logger.Error(ctx, "error collecting expired tokens", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "Expired access tokens removed", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repoManager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runTokenGC(ctx)
	}()

	wg.Wait()

	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}

// Package httpapi exposes the forum over HTTP: a ServeMux of JSON endpoints
// behind a middleware chain of CORS, method-override folding, token
// authentication, and anti-forgery protection.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/forumkit/forumkit/internal/logging"
	"github.com/forumkit/forumkit/internal/server/accesstokens"
	"github.com/forumkit/forumkit/internal/server/avatars"
	"github.com/forumkit/forumkit/internal/server/config"
	"github.com/forumkit/forumkit/internal/server/discussions"
	"github.com/forumkit/forumkit/internal/server/posts"
	"github.com/forumkit/forumkit/internal/server/users"
)

type Server struct {
	addr         string
	logger       logging.Logger
	config       *config.Config
	secretKey    []byte
	csrfLifetime time.Duration

	userService       *users.Service
	tokenService      *accesstokens.Service
	discussionService *discussions.Service
	postService       *posts.Service
	avatarService     *avatars.Service
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	userService *users.Service,
	tokenService *accesstokens.Service,
	discussionService *discussions.Service,
	postService *posts.Service,
	avatarService *avatars.Service,
) *Server {
	return &Server{
		addr:              cfg.EndpointAddr,
		logger:            logger.With("module", "httpapi"),
		config:            cfg,
		secretKey:         []byte(cfg.SecretKey),
		csrfLifetime:      cfg.CSRFTokenLifetime,
		userService:       userService,
		tokenService:      tokenService,
		discussionService: discussionService,
		postService:       postService,
		avatarService:     avatarService,
	}
}

// Handler builds the routing table wrapped in the middleware chain. The
// method-override shim must run before routing so the mux dispatches on the
// folded verb, and before authentication so the anti-forgery check sees the
// real method.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/forum", s.handleForum)

	mux.HandleFunc("POST /api/token", s.handleLogin)
	mux.HandleFunc("DELETE /api/token", s.handleLogout)

	mux.HandleFunc("POST /api/users", s.handleRegister)
	mux.HandleFunc("GET /api/users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /api/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("POST /api/users/{id}/avatar", s.handleAvatarUpload)

	mux.HandleFunc("GET /api/discussions", s.handleListDiscussions)
	mux.HandleFunc("POST /api/discussions", s.handleCreateDiscussion)
	mux.HandleFunc("GET /api/discussions/{id}", s.handleGetDiscussion)
	mux.HandleFunc("GET /api/discussions/{id}/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/discussions/{id}/posts", s.handleCreatePost)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-CSRF-Token"},
		AllowCredentials: true,
	})

	var handler http.Handler = mux
	handler = s.csrfProtect(handler)
	handler = s.authenticate(handler)
	handler = s.methodOverride(handler)
	handler = c.Handler(handler)

	return handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down http server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "addr", s.addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

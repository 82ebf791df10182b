package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/forumkit/forumkit/internal/client/config"
	"github.com/forumkit/forumkit/internal/client/forum"
	"github.com/forumkit/forumkit/internal/client/session"
	"github.com/forumkit/forumkit/internal/client/store"
	"github.com/forumkit/forumkit/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// forumServer is a minimal backend good enough for Application tests.
func forumServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/forum", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(forum.Forum{Title: "Test Forum", BasePath: "/forum", Debug: false})
	})
	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(forum.Credentials{Token: "tok-1", UserID: "u1"})
	})
	mux.HandleFunc("GET /api/users/u1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(session.User{ID: "u1", Username: "alice"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, baseURL, dbPath string) *Application {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = baseURL
	cfg.DatabasePath = dbPath

	a, err := New(cfg, testLogger(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// ---- tests ----

func TestBoot_LoadsForumMetaAndRoutes(t *testing.T) {
	srv := forumServer(t)
	a := newTestApp(t, srv.URL, filepath.Join(t.TempDir(), "client.db"))

	require.NoError(t, a.Boot(context.Background()))
	require.Equal(t, "Test Forum", a.Forum().Title)

	url, err := a.URL("discussion", map[string]string{"id": "5", "sort": "top"})
	require.NoError(t, err)
	require.Equal(t, "/forum/d/5?sort=top", url)
}

func TestBoot_FallsBackToCachedMeta(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.db")

	// first boot against a live server warms the cache
	srv := forumServer(t)
	a := newTestApp(t, srv.URL, dbPath)
	require.NoError(t, a.Boot(context.Background()))
	require.NoError(t, a.Close())

	// second boot against a dead endpoint succeeds from cache
	b := newTestApp(t, "http://127.0.0.1:1", dbPath)
	require.NoError(t, b.Boot(context.Background()))
	require.Equal(t, "Test Forum", b.Forum().Title)
}

func TestBoot_FailsWithoutServerOrCache(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1", filepath.Join(t.TempDir(), "client.db"))
	require.Error(t, a.Boot(context.Background()))
}

func TestLogin_PersistsSessionAcrossRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.db")
	srv := forumServer(t)

	a := newTestApp(t, srv.URL, dbPath)
	require.NoError(t, a.Boot(context.Background()))
	require.NoError(t, a.Login(context.Background(), "alice", "secret", true))
	require.True(t, a.Session().LoggedIn())
	require.NoError(t, a.Close())

	// a fresh Application restores the persisted session during boot
	b := newTestApp(t, srv.URL, dbPath)
	require.NoError(t, b.Boot(context.Background()))
	require.True(t, b.Session().LoggedIn())
	require.Equal(t, "tok-1", b.Session().AccessToken())
	require.Equal(t, "alice", b.Session().User().Username)
}

func TestLogout_ClearsSessionAndStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.db")
	srv := forumServer(t)

	a := newTestApp(t, srv.URL, dbPath)
	require.NoError(t, a.Boot(context.Background()))
	require.NoError(t, a.Login(context.Background(), "alice", "secret", false))

	require.NoError(t, a.Logout(context.Background()))
	require.False(t, a.Session().LoggedIn())

	token, err := store.NewSQLiteRepository(a.db).Get(context.Background(), store.KeyAccessToken)
	require.NoError(t, err)
	require.Nil(t, token)
}

func TestNavigate(t *testing.T) {
	srv := forumServer(t)
	a := newTestApp(t, srv.URL, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, a.Boot(context.Background()))

	a.Navigate("discussion")
	require.Equal(t, "discussion", a.CurrentRoute())
}

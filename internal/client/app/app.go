// Package app composes the client: config, session, local store, route
// table, request pipeline, and the typed API client, and orchestrates the
// boot order.
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"github.com/forumkit/forumkit/internal/client/api"
	"github.com/forumkit/forumkit/internal/client/config"
	"github.com/forumkit/forumkit/internal/client/forum"
	"github.com/forumkit/forumkit/internal/client/routes"
	"github.com/forumkit/forumkit/internal/client/session"
	"github.com/forumkit/forumkit/internal/client/store"
	"github.com/forumkit/forumkit/internal/dbx"
	"github.com/forumkit/forumkit/internal/logging"
)

// Application wires the client together.
//
// Boot order:
//  1. open the local store
//  2. restore the persisted session (access token + cached user)
//  3. fetch the forum meta (background request; cached copy is the fallback)
//  4. build the route table with the forum's base path
type Application struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Session
	store    store.Repository
	alerts   *ConsoleAlerts
	pipeline *api.Pipeline
	client   forum.Client
	routes   *routes.Table
	forum    *forum.Forum
	db       *sql.DB

	currentRoute string
}

// New constructs an Application. alertsOut receives user-facing alerts
// (usually os.Stderr).
func New(cfg *config.Config, logger logging.Logger, alertsOut io.Writer) (*Application, error) {
	db, err := store.InitDatabase(context.Background(), cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	alerts := NewConsoleAlerts(alertsOut)
	pipeline := api.New(
		cfg.ServerBaseURL,
		&http.Client{Timeout: cfg.RequestTimeout},
		sess,
		alerts,
		logger,
		cfg.Debug,
	)

	return &Application{
		config:   cfg,
		logger:   logger,
		session:  sess,
		store:    store.NewSQLiteRepository(db),
		alerts:   alerts,
		pipeline: pipeline,
		client:   forum.NewAPIClient(pipeline),
		db:       db,
	}, nil
}

// Boot restores the session, loads the forum meta, and registers routes.
// A backend that is briefly unreachable does not fail the boot as long as a
// cached forum meta exists.
func (a *Application) Boot(ctx context.Context) error {
	a.restoreSession(ctx)

	meta, err := a.client.Forum(ctx)
	if err != nil {
		cached, cacheErr := a.store.Get(ctx, store.KeyForumMeta)
		if cacheErr != nil || cached == nil {
			return err
		}
		var f forum.Forum
		if jsonErr := json.Unmarshal(cached, &f); jsonErr != nil {
			return err
		}
		meta = &f
		a.logger.Warn(ctx, "using cached forum meta", "error", err)
	} else {
		if encoded, jsonErr := json.Marshal(meta); jsonErr == nil {
			_ = a.store.Set(ctx, store.KeyForumMeta, encoded)
		}
	}

	a.forum = meta
	a.pipeline.SetDebug(a.config.Debug || meta.Debug)

	table := routes.NewTable("", meta.BasePath)
	for _, r := range defaultRoutes {
		if err := table.Register(r.Name, r.Path, r.Page); err != nil {
			return err
		}
	}
	a.routes = table

	return nil
}

var defaultRoutes = []routes.Route{
	{Name: "index", Path: "/", Page: "IndexPage"},
	{Name: "discussion", Path: "/d/:id", Page: "DiscussionPage"},
	{Name: "post", Path: "/d/:id/:number", Page: "DiscussionPage"},
	{Name: "user", Path: "/u/:username", Page: "UserPage"},
	{Name: "settings", Path: "/settings", Page: "SettingsPage"},
}

// restoreSession brings back the persisted access token and user, if any.
func (a *Application) restoreSession(ctx context.Context) {
	token, err := a.store.Get(ctx, store.KeyAccessToken)
	if err != nil || len(token) == 0 {
		return
	}
	a.session.SetAccessToken(string(token))

	if cached, err := a.store.Get(ctx, store.KeyCurrentUser); err == nil && cached != nil {
		var u session.User
		if json.Unmarshal(cached, &u) == nil {
			a.session.SetUser(&u)
		}
	}
}

// Login authenticates, stores the access token, and loads the user.
func (a *Application) Login(ctx context.Context, identification, password string, remember bool) error {
	creds, err := a.client.Login(ctx, identification, password, remember)
	if err != nil {
		return err
	}
	a.session.SetAccessToken(creds.Token)

	user, err := a.client.User(ctx, creds.UserID)
	if err != nil {
		return err
	}
	a.session.SetUser(user)

	// Persist token and user together: restoring one without the other
	// would leave the next start half signed-in.
	_ = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, store.KeyAccessToken, []byte(creds.Token)); err != nil {
			return err
		}
		encoded, jsonErr := json.Marshal(user)
		if jsonErr != nil {
			return jsonErr
		}
		return repo.Set(ctx, store.KeyCurrentUser, encoded)
	})
	return nil
}

// Logout revokes the server-side token and wipes local session state. Local
// state is cleared even when the revocation call fails: the user asked to be
// logged out.
func (a *Application) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.session.Clear()
	_ = a.store.Delete(ctx, store.KeyAccessToken)
	_ = a.store.Delete(ctx, store.KeyCurrentUser)
	return err
}

// URL resolves a route name and parameters into a relative URL.
func (a *Application) URL(name string, params map[string]string) (string, error) {
	return a.routes.Build(name, params)
}

// Navigate records the current page. Navigation state only; rendering is the
// CLI's concern.
func (a *Application) Navigate(route string) {
	a.currentRoute = route
}

func (a *Application) CurrentRoute() string { return a.currentRoute }

func (a *Application) Session() *session.Session { return a.session }

func (a *Application) Client() forum.Client { return a.client }

func (a *Application) Alerts() *ConsoleAlerts { return a.alerts }

func (a *Application) Forum() *forum.Forum { return a.forum }

func (a *Application) Routes() *routes.Table { return a.routes }

// Close releases the local store.
func (a *Application) Close() error {
	return a.db.Close()
}

package db

import (
	"context"
	"database/sql"

	"github.com/forumkit/forumkit/internal/server/accesstokens"
	"github.com/forumkit/forumkit/internal/server/discussions"
	"github.com/forumkit/forumkit/internal/server/posts"
	"github.com/forumkit/forumkit/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	AccessTokens() accesstokens.Repository
	Discussions() discussions.Repository
	Posts() posts.Repository
}

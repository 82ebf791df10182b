// Package db wires PostgreSQL-backed repositories together and owns the
// schema migrations (goose over an embedded FS).
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/forumkit/forumkit/internal/server/accesstokens"
	"github.com/forumkit/forumkit/internal/server/discussions"
	"github.com/forumkit/forumkit/internal/server/migrations"
	"github.com/forumkit/forumkit/internal/server/posts"
	"github.com/forumkit/forumkit/internal/server/users"
)

type PostgresRepositoryManager struct {
	db           *sql.DB
	users        users.Repository
	accessTokens accesstokens.Repository
	discussions  discussions.Repository
	posts        posts.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) AccessTokens() accesstokens.Repository {
	return m.accessTokens
}

func (m *PostgresRepositoryManager) Discussions() discussions.Repository {
	return m.discussions
}

func (m *PostgresRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	tokenRepo, err := accesstokens.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("access token repo creation error: %w", err)
	}

	discussionRepo, err := discussions.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("discussion repo creation error: %w", err)
	}

	postRepo, err := posts.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("post repo creation error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:           db,
		users:        userRepo,
		accessTokens: tokenRepo,
		discussions:  discussionRepo,
		posts:        postRepo,
	}, nil
}

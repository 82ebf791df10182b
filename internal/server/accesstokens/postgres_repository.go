package accesstokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/forumkit/forumkit/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, token *AccessToken) (*AccessToken, error) {

	query :=
		`INSERT INTO access_tokens (id, user_id, type, title, last_activity_at)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Type, token.Title, token.LastActivityAt).Scan(&token.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return token, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*AccessToken, error) {
	query :=
		`SELECT id, user_id, type, title, created_at, last_activity_at FROM access_tokens
		 WHERE id = $1
		 `

	token := &AccessToken{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.Type, &token.Title, &token.CreatedAt, &token.LastActivityAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return token, nil
}

func (r *PostgresRepository) UpdateLastActivity(ctx context.Context, id string, at time.Time) error {
	query :=
		`UPDATE access_tokens SET last_activity_at = $2
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM access_tokens WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DeleteExpired removes session tokens inactive since sessionCutoff and
// remember tokens inactive since rememberCutoff. Developer tokens are kept.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, sessionCutoff, rememberCutoff time.Time) (int64, error) {
	query :=
		`DELETE FROM access_tokens
		 WHERE (type = $1 AND last_activity_at < $2)
		    OR (type = $3 AND last_activity_at < $4)
		 `

	res, err := r.db.ExecContext(ctx, query, TypeSession, sessionCutoff, TypeSessionRemember, rememberCutoff)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	return n, nil
}

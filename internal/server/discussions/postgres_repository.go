package discussions

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

func (r *PostgresRepository) Create(ctx context.Context, discussion *Discussion) (*Discussion, error) {

	query :=
		`INSERT INTO discussions (id, title, user_id, last_posted_at)
         VALUES ($1, $2, $3, now())
		 RETURNING created_at, last_posted_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		discussion.ID, discussion.Title, discussion.UserID).Scan(&discussion.CreatedAt, &discussion.LastPostedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return discussion, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Discussion, error) {
	query :=
		`SELECT id, title, user_id, comment_count, created_at, last_posted_at FROM discussions
		 WHERE id = $1
		 `

	d := &Discussion{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.UserID, &d.CommentCount, &d.CreatedAt, &d.LastPostedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return d, nil
}

func (r *PostgresRepository) List(ctx context.Context, sort string, limit int) ([]Discussion, error) {

	var order string
	switch sort {
	case SortNewest:
		order = "created_at DESC"
	case SortOldest:
		order = "created_at ASC"
	case SortTop:
		order = "comment_count DESC"
	default:
		order = "last_posted_at DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, title, user_id, comment_count, created_at, last_posted_at FROM discussions
		 ORDER BY %s
		 LIMIT $1
		 `, order)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []Discussion
	for rows.Next() {
		var d Discussion
		if err := rows.Scan(&d.ID, &d.Title, &d.UserID, &d.CommentCount, &d.CreatedAt, &d.LastPostedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return result, nil
}

// RecordPost bumps the comment counter and the last-posted timestamp after a
// post lands in the discussion.
func (r *PostgresRepository) RecordPost(ctx context.Context, id string, postedAt time.Time) error {
	query :=
		`UPDATE discussions SET comment_count = comment_count + 1, last_posted_at = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, postedAt)
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

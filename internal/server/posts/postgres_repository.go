package posts

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// Create inserts the post with the next sequential number within its
// discussion. The subquery keeps numbering in one statement.
func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {

	query :=
		`INSERT INTO posts (id, discussion_id, user_id, number, content)
         VALUES ($1, $2, $3,
                 (SELECT COALESCE(MAX(number), 0) + 1 FROM posts WHERE discussion_id = $2),
                 $4)
		 RETURNING number, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.DiscussionID, post.UserID, post.Content).Scan(&post.Number, &post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return post, nil
}

func (r *PostgresRepository) ListByDiscussion(ctx context.Context, discussionID string) ([]Post, error) {
	query :=
		`SELECT id, discussion_id, user_id, number, content, created_at FROM posts
		 WHERE discussion_id = $1
		 ORDER BY number ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, discussionID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.DiscussionID, &p.UserID, &p.Number, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return result, nil
}

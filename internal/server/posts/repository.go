package posts

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	ListByDiscussion(ctx context.Context, discussionID string) ([]Post, error)
}

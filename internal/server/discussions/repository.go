package discussions

import (
	"context"
	"time"
)

// Sort orders supported by List.
const (
	SortLatest = "latest"
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTop    = "top"
)

type Repository interface {
	Create(ctx context.Context, discussion *Discussion) (*Discussion, error)
	GetByID(ctx context.Context, id string) (*Discussion, error)
	List(ctx context.Context, sort string, limit int) ([]Discussion, error)
	RecordPost(ctx context.Context, id string, postedAt time.Time) error
}

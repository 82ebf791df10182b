package accesstokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, token *AccessToken) (*AccessToken, error)
	Find(ctx context.Context, id string) (*AccessToken, error)
	UpdateLastActivity(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, sessionCutoff, rememberCutoff time.Time) (int64, error)
}

// Package store is the client's local cache: a small key/value table in
// SQLite holding fetched resources (forum meta, the current user) and the
// persisted access token, so the CLI can restore its session between runs.
package store

import "context"

// Repository is the storage contract for the client cache.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Well-known cache keys.
const (
	KeyAccessToken = "access_token"
	KeyForumMeta   = "forum_meta"
	KeyCurrentUser = "current_user"
)

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cache (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetOverwrite(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("tok1")))

	v, err := repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), v)

	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("tok2")))
	v, err = repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok2"), v)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))

	require.NoError(t, repo.Delete(ctx, "a"))
	v, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, v)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

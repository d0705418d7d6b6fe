package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/vibetodo/internal/database"
)

func openTestDB(t *testing.T) *KVRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.OpenMigrated(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVRepo(db)
}

func TestKVRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestDB(t)

	_, ok, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[{"id":1}]`)))

	v, ok, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":1}]`, string(v))

	e, err := repo.Entry(ctx, "tasks")
	require.NoError(t, err)
	require.NotNil(t, e)
	require.False(t, e.UpdatedAt.IsZero())

	e, err = repo.Entry(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "again.db")
	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath))
}

package prefs

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "vibetodo.json")
	s := NewFileStore(path)

	_, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(ctx, "tasks", []byte(`[{"id":1,"text":"a"}]`)))
	require.NoError(t, s.Put(ctx, "other", []byte(`{"x":true}`)))

	v, ok, err := NewFileStore(path).Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":1,"text":"a"}]`, string(v))

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreKeepsFileValidForRawValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vibetodo.json")
	s := NewFileStore(path)

	require.NoError(t, s.Put(ctx, "tasks", []byte("{broken")))
	v, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"{broken"`, string(v))
}

func TestFileStoreCorruptFileReadsEmptyAndIsBackedUp(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vibetodo.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))
	var logs bytes.Buffer
	s := NewFileStore(path, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	require.False(t, ok)
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "unreadable store file")

	require.NoError(t, s.Put(ctx, "tasks", []byte(`[]`)))
	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	require.Equal(t, "nope", string(backup))

	v, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))
}

package manifest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ContainsAndMark(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	ok, err := store.Contains(ctx, "file-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Mark(ctx, "file-1", "2026-08-01T10:00:00Z"))

	ok, err = store.Contains(ctx, "file-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Contains(ctx, "file-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MarkIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Mark(ctx, "file-1", "2026-08-01T10:00:00Z"))
	require.NoError(t, store.Mark(ctx, "file-1", "2026-08-02T12:00:00Z"))

	ok, err := store.Contains(ctx, "file-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Mark(ctx, "file-1", ""))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	ok, err := reopened.Contains(ctx, "file-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

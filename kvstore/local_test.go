package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, "node:abc")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "node:abc", []byte(`{"id":"abc"}`)))
	data, err := store.Get(ctx, "node:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc"}`, string(data))

	// Overwrite is atomic and visible
	require.NoError(t, store.Put(ctx, "node:abc", []byte("v2")))
	data, err = store.Get(ctx, "node:abc")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	require.NoError(t, store.Put(ctx, "node:def", []byte("x")))
	require.NoError(t, store.Put(ctx, "root", []byte("abc")))

	keys, err := store.List(ctx, "node:")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"node:abc", "node:def"}, keys)

	require.NoError(t, store.Delete(ctx, "node:def"))
	require.NoError(t, store.Delete(ctx, "node:def")) // absent is fine
	_, err = store.Get(ctx, "node:def")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Close())
}

func TestLocal_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocal(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "root", []byte("the-root-id")))

	reopened, err := NewLocal(dir)
	require.NoError(t, err)
	data, err := reopened.Get(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "the-root-id", string(data))
}

func TestLocal_EscapesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	// Keys with path separators must not escape the root directory.
	key := "node/../../evil"
	require.NoError(t, store.Put(ctx, key, []byte("v")))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "evil"))
	assert.True(t, os.IsNotExist(err))

	keys, err := store.List(ctx, "node/")
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)
}

func TestLocal_ListIgnoresTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	// Simulate a crashed write
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".put-123"), []byte("junk"), 0o644))

	keys, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

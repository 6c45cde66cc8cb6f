package quadtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quadgo/geo"
	"github.com/hupe1980/quadgo/ids"
	"github.com/hupe1980/quadgo/kvstore"
)

func newTestStore() *NodeStore {
	return NewNodeStore(kvstore.NewMemory(), nil, &ids.Sequential{Prefix: "n"})
}

func TestNodeStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	n := &Node{
		ID:       "n-1",
		Boundary: geo.NewRect(50, 50, 50, 50),
		Capacity: 4,
		Points: []geo.Point{
			{X: 10, Y: 10, Payload: "a"},
			{X: 20, Y: 20, Payload: map[string]any{"k": "v"}},
		},
	}
	require.NoError(t, store.Put(ctx, n))

	got, err := store.Get(ctx, "n-1")
	require.NoError(t, err)

	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Boundary, got.Boundary)
	assert.Equal(t, n.Capacity, got.Capacity)
	require.Len(t, got.Points, 2)
	assert.Equal(t, 10.0, got.Points[0].X)
	assert.Equal(t, "a", got.Points[0].Payload)
	assert.Equal(t, map[string]any{"k": "v"}, got.Points[1].Payload)
	assert.False(t, got.Divided)
	assert.Nil(t, got.Children)
}

func TestNodeStore_GetMissingNode(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	_, err := store.Get(ctx, "ghost")
	require.ErrorIs(t, err, kvstore.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestNodeStore_BootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	boundary := geo.NewRect(50, 50, 50, 50)

	first := NewNodeStore(kv, nil, &ids.Sequential{Prefix: "a"})
	rootID, created, err := first.Bootstrap(ctx, boundary, 4)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "a-1", rootID)

	// Second bootstrap against the same store reuses the root and ignores
	// the new boundary/capacity.
	second := NewNodeStore(kv, nil, &ids.Sequential{Prefix: "b"})
	rootID2, created2, err := second.Bootstrap(ctx, geo.NewRect(0, 0, 1, 1), 99)
	require.NoError(t, err)
	assert.False(t, created2)
	assert.Equal(t, rootID, rootID2)

	root, err := second.Get(ctx, rootID2)
	require.NoError(t, err)
	assert.Equal(t, boundary, root.Boundary)
	assert.Equal(t, 4, root.Capacity)
}

func TestNode_ChildBoundary(t *testing.T) {
	n := &Node{Boundary: geo.NewRect(50, 50, 50, 50)}

	// y grows south: "n" children at smaller y, "s" at larger y.
	assert.Equal(t, geo.NewRect(75, 25, 25, 25), n.ChildBoundary(NE))
	assert.Equal(t, geo.NewRect(25, 25, 25, 25), n.ChildBoundary(NW))
	assert.Equal(t, geo.NewRect(75, 75, 25, 25), n.ChildBoundary(SE))
	assert.Equal(t, geo.NewRect(25, 75, 25, 25), n.ChildBoundary(SW))

	assert.Panics(t, func() { n.ChildBoundary("up") })
}

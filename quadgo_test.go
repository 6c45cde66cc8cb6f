package quadgo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quadgo/codec"
	"github.com/hupe1980/quadgo/geo"
	"github.com/hupe1980/quadgo/kvstore"
)

func universe() geo.Rect { return geo.NewRect(50, 50, 50, 50) }

func TestOpen_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, nil, universe(), 4)
	require.Error(t, err)

	_, err = Open(ctx, kvstore.NewMemory(), universe(), 0)
	require.Error(t, err)

	_, err = Open(ctx, kvstore.NewMemory(), geo.NewRect(0, 0, -1, 1), 4)
	require.Error(t, err)
}

func TestQuadgo_EndToEnd(t *testing.T) {
	ctx := context.Background()

	qt, err := Open(ctx, kvstore.NewMemory(), universe(), 4)
	require.NoError(t, err)
	defer qt.Close()

	require.NoError(t, qt.Insert(ctx, 10, 10, map[string]any{"name": "depot"}))
	require.NoError(t, qt.Insert(ctx, 20, 20, "b"))
	require.NoError(t, qt.Insert(ctx, 80, 80, "c"))

	points, err := qt.Range(ctx, 0, 0, 25, 25)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, map[string]any{"name": "depot"}, points[0].Payload)

	p, found, err := qt.Nearest(ctx, 75, 75)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "c", p.Payload)

	require.NoError(t, qt.Update(ctx, 20, 20, "b2"))
	p, found, err = qt.Find(ctx, 20, 20)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b2", p.Payload)
}

func TestQuadgo_InsertOutOfBounds(t *testing.T) {
	ctx := context.Background()

	qt, err := Open(ctx, kvstore.NewMemory(), universe(), 4)
	require.NoError(t, err)
	defer qt.Close()

	err = qt.Insert(ctx, 101, 50, nil)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestQuadgo_UpdateMissingPoint(t *testing.T) {
	ctx := context.Background()

	qt, err := Open(ctx, kvstore.NewMemory(), universe(), 4)
	require.NoError(t, err)
	defer qt.Close()

	require.NoError(t, qt.Insert(ctx, 10, 10, "a"))

	err = qt.Update(ctx, 10.5, 10, "b")
	require.ErrorIs(t, err, ErrPointNotFound)

	// Original payload untouched
	p, found, err := qt.Find(ctx, 10, 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a", p.Payload)
}

func TestQuadgo_NearestDefaultRadius(t *testing.T) {
	ctx := context.Background()

	// Universe large enough that a point can sit beyond the default
	// radius square.
	qt, err := Open(ctx, kvstore.NewMemory(), geo.NewRect(0, 0, 500, 500), 4)
	require.NoError(t, err)
	defer qt.Close()

	require.NoError(t, qt.Insert(ctx, 101, 0, "beyond"))

	// (101, 0) lies outside [x-100, x+100] around the origin, even though
	// it is the closest point in the tree.
	_, found, err := qt.Nearest(ctx, 0, 0)
	require.NoError(t, err)
	assert.False(t, found)

	p, found, err := qt.NearestWithin(ctx, 0, 0, 101)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "beyond", p.Payload)
}

func TestQuadgo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()

	store, err := kvstore.NewLocal(t.TempDir())
	require.NoError(t, err)

	qt, err := Open(ctx, store, universe(), 4)
	require.NoError(t, err)
	rootID := qt.RootID()
	require.NoError(t, qt.Insert(ctx, 42, 42, "persisted"))

	// Reopen against the same store path: same root, content intact, and
	// the new boundary/capacity are ignored.
	qt2, err := Open(ctx, store, geo.NewRect(0, 0, 1, 1), 99)
	require.NoError(t, err)
	defer qt2.Close()

	assert.Equal(t, rootID, qt2.RootID())

	p, found, err := qt2.Find(ctx, 42, 42)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "persisted", p.Payload)
}

func TestQuadgo_WithCompressedCodec(t *testing.T) {
	ctx := context.Background()

	qt, err := Open(ctx, kvstore.NewMemory(), universe(), 4,
		WithCodec(codec.Compressed{Base: codec.GoJSON{}}),
	)
	require.NoError(t, err)
	defer qt.Close()

	require.NoError(t, qt.Insert(ctx, 10, 10, "compressed"))

	points, err := qt.Range(ctx, 0, 0, 100, 100)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "compressed", points[0].Payload)
}

func TestQuadgo_MetricsCollection(t *testing.T) {
	ctx := context.Background()

	metrics := &BasicMetricsCollector{}
	qt, err := Open(ctx, kvstore.NewMemory(), universe(), 4,
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	defer qt.Close()

	require.NoError(t, qt.Insert(ctx, 10, 10, nil))
	require.Error(t, qt.Insert(ctx, 200, 200, nil))

	_, err = qt.Range(ctx, 0, 0, 100, 100)
	require.NoError(t, err)

	_, _, err = qt.Nearest(ctx, 10, 10)
	require.NoError(t, err)

	require.NoError(t, qt.Update(ctx, 10, 10, "u"))

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.InsertCount)
	assert.Equal(t, int64(1), stats.InsertErrors)
	// Nearest runs a range query internally through the engine, not the
	// facade, so only the facade-level call is counted.
	assert.Equal(t, int64(1), stats.RangeCount)
	assert.Equal(t, int64(1), stats.RangeResults)
	assert.Equal(t, int64(1), stats.NearestCount)
	assert.Equal(t, int64(1), stats.UpdateCount)
	assert.Equal(t, int64(0), stats.UpdateErrors)
}

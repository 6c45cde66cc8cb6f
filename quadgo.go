package quadgo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/quadgo/geo"
	"github.com/hupe1980/quadgo/kvstore"
	"github.com/hupe1980/quadgo/quadtree"
)

var (
	// ErrPointNotFound is returned by Update when no point with the exact
	// target coordinates exists in the tree.
	ErrPointNotFound = errors.New("quadgo: point not found")

	// ErrOutOfBounds is returned by Insert when the point lies outside the
	// universe boundary configured at initialization.
	ErrOutOfBounds = errors.New("quadgo: point outside universe boundary")
)

// DefaultRadius is the nearest-lookup radius used by Nearest.
const DefaultRadius = 100.0

// Quadgo is a persistent quadtree over a durable key-value store.
//
// Mutating operations (Insert, Update) are serialized by an internal mutex;
// the single-writer assumption of the underlying algorithms is enforced
// here rather than inside them. Reads run unserialized against the store.
type Quadgo struct {
	mu      sync.Mutex
	engine  *quadtree.Tree
	store   kvstore.Store
	logger  *Logger
	metrics MetricsCollector
	radius  float64
}

// Open initializes a quadtree over the given store and returns a handle.
//
// On first use against a store, the root node is created with the supplied
// universe boundary and leaf capacity. On later opens the existing root is
// reused and boundary/capacity are ignored - the tree's geometry is fixed
// at creation.
func Open(ctx context.Context, store kvstore.Store, boundary geo.Rect, capacity int, optFns ...Option) (*Quadgo, error) {
	if store == nil {
		return nil, errors.New("quadgo: store must not be nil")
	}
	if capacity < 1 {
		return nil, fmt.Errorf("quadgo: capacity must be at least 1, got %d", capacity)
	}
	if boundary.HW <= 0 || boundary.HH <= 0 {
		return nil, fmt.Errorf("quadgo: boundary half-extents must be positive, got (%g, %g)", boundary.HW, boundary.HH)
	}

	opts := applyOptions(optFns)

	nodes := quadtree.NewNodeStore(store, opts.codec, opts.idGen)
	rootID, created, err := nodes.Bootstrap(ctx, boundary, capacity)
	if err != nil {
		return nil, err
	}
	opts.logger.LogOpen(ctx, rootID, created)

	return &Quadgo{
		engine:  quadtree.New(nodes, rootID, opts.maxDepth),
		store:   store,
		logger:  opts.logger,
		metrics: opts.metrics,
		radius:  opts.defaultRadius,
	}, nil
}

// RootID returns the persisted root node id.
func (q *Quadgo) RootID() string { return q.engine.RootID() }

// Insert adds a point at (x, y) with the given payload.
// Returns ErrOutOfBounds when (x, y) lies outside the universe boundary.
func (q *Quadgo) Insert(ctx context.Context, x, y float64, payload any) error {
	start := time.Now()

	q.mu.Lock()
	ok, err := q.engine.Insert(ctx, geo.Point{X: x, Y: y, Payload: payload})
	q.mu.Unlock()

	if err == nil && !ok {
		err = fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, x, y)
	}

	q.metrics.RecordInsert(time.Since(start), err)
	q.logger.LogInsert(ctx, x, y, err)
	return err
}

// Range returns all points inside the closed rectangle
// [minX, maxX] x [minY, maxY], in deterministic pre-order traversal order.
func (q *Quadgo) Range(ctx context.Context, minX, minY, maxX, maxY float64) ([]geo.Point, error) {
	start := time.Now()

	points, err := q.engine.Range(ctx, geo.RectFromCorners(minX, minY, maxX, maxY))

	q.metrics.RecordRange(len(points), time.Since(start), err)
	q.logger.LogRange(ctx, len(points), err)
	return points, err
}

// Nearest returns the closest point to (x, y) within the default radius
// square. The bool result is false when no point lies inside the square,
// even if a closer point exists just outside it.
func (q *Quadgo) Nearest(ctx context.Context, x, y float64) (geo.Point, bool, error) {
	return q.NearestWithin(ctx, x, y, q.radius)
}

// NearestWithin is Nearest with an explicit radius.
func (q *Quadgo) NearestWithin(ctx context.Context, x, y, radius float64) (geo.Point, bool, error) {
	start := time.Now()

	p, found, err := q.engine.Nearest(ctx, x, y, radius)

	q.metrics.RecordNearest(time.Since(start), err)
	q.logger.LogNearest(ctx, x, y, found, err)
	return p, found, err
}

// Find returns the point stored at exactly (x, y), if any.
func (q *Quadgo) Find(ctx context.Context, x, y float64) (geo.Point, bool, error) {
	return q.engine.Find(ctx, x, y)
}

// Update replaces the payload of the point stored at exactly (x, y).
// Coordinates are matched by exact float equality; with duplicates at the
// same location the first match in traversal order wins.
// Returns ErrPointNotFound when no such point exists.
func (q *Quadgo) Update(ctx context.Context, x, y float64, payload any) error {
	start := time.Now()

	q.mu.Lock()
	ok, err := q.engine.Update(ctx, x, y, payload)
	q.mu.Unlock()

	if err == nil && !ok {
		err = fmt.Errorf("%w: (%g, %g)", ErrPointNotFound, x, y)
	}

	q.metrics.RecordUpdate(time.Since(start), err)
	q.logger.LogUpdate(ctx, x, y, err)
	return err
}

// Close closes the underlying store.
func (q *Quadgo) Close() error {
	return q.store.Close()
}

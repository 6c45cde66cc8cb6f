package quadtree

import (
	"context"
	"errors"
	"sort"

	"github.com/hupe1980/quadgo/geo"
)

// DefaultMaxDepth bounds recursive descent. Depth grows with log4 of the
// ratio between the root extent and the smallest coordinate delta, so 64
// is beyond anything float64 coordinates can produce without pathological
// duplicate clustering.
const DefaultMaxDepth = 64

// ErrMaxDepth is returned when a descent exceeds the configured maximum
// depth. Hitting it means extreme point clustering (e.g. many points at
// nearly identical coordinates overflowing capacity at every level).
var ErrMaxDepth = errors.New("quadtree: max depth exceeded")

// Tree runs the quadtree algorithms over a NodeStore.
//
// Tree holds no node state itself; every operation re-reads nodes from the
// store. It assumes a single logical writer at a time - overlapping
// mutations can corrupt structural invariants. Callers needing concurrency
// must serialize mutations externally (the quadgo facade does).
type Tree struct {
	store    *NodeStore
	rootID   string
	maxDepth int
}

// New creates a Tree rooted at rootID. If maxDepth <= 0, DefaultMaxDepth
// is used.
func New(store *NodeStore, rootID string, maxDepth int) *Tree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Tree{store: store, rootID: rootID, maxDepth: maxDepth}
}

// RootID returns the persisted root node id.
func (t *Tree) RootID() string { return t.rootID }

// Insert descends from the root and appends p to the first leaf that can
// take it, subdividing on the way down as capacity overflows.
//
// The bool result reports whether the point was accepted; false without an
// error means p lies outside the root boundary.
func (t *Tree) Insert(ctx context.Context, p geo.Point) (bool, error) {
	return t.insert(ctx, t.rootID, p, 0)
}

func (t *Tree) insert(ctx context.Context, id string, p geo.Point, depth int) (bool, error) {
	if depth > t.maxDepth {
		return false, ErrMaxDepth
	}

	n, err := t.store.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if !n.Boundary.ContainsPoint(p) {
		return false, nil
	}

	// Leaf with room: append and persist. Terminal success.
	if !n.Divided && len(n.Points) < n.Capacity {
		n.Points = append(n.Points, p)
		if err := t.store.Put(ctx, n); err != nil {
			return false, err
		}
		return true, nil
	}

	if !n.Divided {
		if err := t.subdivide(ctx, n); err != nil {
			return false, err
		}
	}

	// Descend into the first quadrant whose boundary contains the point.
	// Child boundaries are derived from the parent, so no extra fetch is
	// needed to pick the branch; quadrants partition the boundary exactly,
	// with shared edges resolved by the fixed order.
	for _, tag := range Quadrants {
		if n.ChildBoundary(tag).ContainsPoint(p) {
			return t.insert(ctx, n.Children[tag], p, depth+1)
		}
	}

	// Unreachable for a point inside n.Boundary; a false here signals a
	// structural-invariant violation, not user error.
	return false, nil
}

// subdivide creates the four children of n, persisting each child before
// the parent is updated. n's own points stay where they are: subdivision
// deliberately does not redistribute, so an internal node keeps up to
// Capacity residual points that every query touching it must check.
//
// A crash between child and parent writes leaves unreferenced child
// records behind; they are harmless and not cleaned up.
func (t *Tree) subdivide(ctx context.Context, n *Node) error {
	children := make(map[string]string, len(Quadrants))
	for _, tag := range Quadrants {
		childID, err := t.store.NewNode(ctx, n.ChildBoundary(tag), n.Capacity)
		if err != nil {
			return err
		}
		children[tag] = childID
	}

	n.Divided = true
	n.Children = children
	return t.store.Put(ctx, n)
}

// Range returns all points contained in the query rectangle.
//
// Traversal is pre-order (a node's own matches before its children's, the
// children in fixed quadrant order), so results are stable and
// deterministic for a fixed tree state. No sorting is applied.
func (t *Tree) Range(ctx context.Context, query geo.Rect) ([]geo.Point, error) {
	return t.collect(ctx, t.rootID, query, nil, 0)
}

func (t *Tree) collect(ctx context.Context, id string, query geo.Rect, out []geo.Point, depth int) ([]geo.Point, error) {
	if depth > t.maxDepth {
		return nil, ErrMaxDepth
	}

	n, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !n.Boundary.Intersects(query) {
		return out, nil
	}

	for _, p := range n.Points {
		if query.ContainsPoint(p) {
			out = append(out, p)
		}
	}

	if n.Divided {
		for _, tag := range Quadrants {
			out, err = t.collect(ctx, n.Children[tag], query, out, depth+1)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Nearest returns the point closest to (x, y) among those inside the
// bounding square [x-radius, x+radius] x [y-radius, y+radius].
//
// This is a bounded approximation, not true nearest-neighbor search: a
// closer point just outside the square is never found, and the search is
// never widened when the square is empty. Ties are broken by range-query
// order (stable sort).
func (t *Tree) Nearest(ctx context.Context, x, y, radius float64) (geo.Point, bool, error) {
	candidates, err := t.Range(ctx, geo.RectFromCorners(x-radius, y-radius, x+radius, y+radius))
	if err != nil {
		return geo.Point{}, false, err
	}
	if len(candidates) == 0 {
		return geo.Point{}, false, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SquaredDistance(x, y) < candidates[j].SquaredDistance(x, y)
	})
	return candidates[0], true, nil
}

// Find returns the first point whose coordinates exactly equal (x, y),
// searching depth-first in fixed quadrant order.
func (t *Tree) Find(ctx context.Context, x, y float64) (geo.Point, bool, error) {
	n, idx, err := t.locate(ctx, t.rootID, x, y, 0)
	if err != nil {
		return geo.Point{}, false, err
	}
	if n == nil {
		return geo.Point{}, false, nil
	}
	return n.Points[idx], true, nil
}

// Update replaces the payload of the first point whose coordinates exactly
// equal (x, y) and persists the owning node. Coordinates are matched by
// exact float equality, not proximity.
//
// The bool result reports whether a point was found.
func (t *Tree) Update(ctx context.Context, x, y float64, payload any) (bool, error) {
	n, idx, err := t.locate(ctx, t.rootID, x, y, 0)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, nil
	}

	n.Points[idx].Payload = payload
	if err := t.store.Put(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

// locate finds the owning node and point index of the first exact
// coordinate match in DFS order: a node's own points first, then its
// children in fixed quadrant order. Returns a nil node when no point
// matches.
func (t *Tree) locate(ctx context.Context, id string, x, y float64, depth int) (*Node, int, error) {
	if depth > t.maxDepth {
		return nil, 0, ErrMaxDepth
	}

	n, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	for i := range n.Points {
		if n.Points[i].X == x && n.Points[i].Y == y {
			return n, i, nil
		}
	}

	if n.Divided {
		for _, tag := range Quadrants {
			found, idx, err := t.locate(ctx, n.Children[tag], x, y, depth+1)
			if err != nil {
				return nil, 0, err
			}
			if found != nil {
				return found, idx, nil
			}
		}
	}
	return nil, 0, nil
}

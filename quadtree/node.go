// Package quadtree implements a persistent point quadtree whose nodes are
// individual records in a kvstore.Store.
//
// There is no in-memory tree: every operation starts at the persisted root
// id and descends one store round-trip per node, writing back only the
// node(s) it mutates. The store is the single source of truth.
package quadtree

import (
	"github.com/hupe1980/quadgo/geo"
)

// Quadrant tags identify a child's position relative to its parent's center.
// The y axis grows south: "n" children sit at smaller y, "s" at larger y.
const (
	NE = "ne"
	NW = "nw"
	SE = "se"
	SW = "sw"
)

// Quadrants is the fixed child iteration order. Insert, range, and update
// all descend in this order, which makes behavior deterministic when a
// point lies on a shared quadrant edge or duplicates exist.
var Quadrants = [4]string{NE, NW, SE, SW}

// Node is the unit of persistence: one quadrant record.
//
// A node starts as a leaf. When an insert would push Points past Capacity,
// the node subdivides exactly once: four children are created and Divided
// flips to true, permanently. The points resident at that moment stay on
// the node as a residual list - they are never migrated into the children,
// so queries must check an internal node's own points too.
type Node struct {
	ID       string            `json:"id"`
	Boundary geo.Rect          `json:"boundary"`
	Capacity int               `json:"capacity"`
	Points   []geo.Point       `json:"points"`
	Divided  bool              `json:"divided"`
	Children map[string]string `json:"children,omitempty"`
}

// ChildBoundary returns the boundary the child at the given quadrant tag
// has (or would have): half the parent's half-extents, centered at the
// parent's center offset by a quarter extent per axis.
func (n *Node) ChildBoundary(tag string) geo.Rect {
	hw := n.Boundary.HW / 2
	hh := n.Boundary.HH / 2

	switch tag {
	case NE:
		return geo.NewRect(n.Boundary.CX+hw, n.Boundary.CY-hh, hw, hh)
	case NW:
		return geo.NewRect(n.Boundary.CX-hw, n.Boundary.CY-hh, hw, hh)
	case SE:
		return geo.NewRect(n.Boundary.CX+hw, n.Boundary.CY+hh, hw, hh)
	case SW:
		return geo.NewRect(n.Boundary.CX-hw, n.Boundary.CY+hh, hw, hh)
	default:
		panic("quadtree: unknown quadrant tag " + tag)
	}
}

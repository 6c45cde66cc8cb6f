// Package geo provides the 2D geometry primitives used by the quadtree:
// points with an attached payload and axis-aligned rectangles in
// center/half-extent form.
//
// All predicates use closed boundaries: a point exactly on an edge is
// contained, and rectangles that merely touch still intersect.
package geo

import "math"

// Point is a location in 2D space with an opaque payload.
//
// Payload must be serializable by the configured codec. After a store
// round-trip a JSON payload decodes as generic JSON values
// (map[string]any, []any, float64, string, bool, nil).
//
// Two points are the same location iff X and Y compare exactly equal.
// There is no epsilon.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Payload any     `json:"payload,omitempty"`
}

// SquaredDistance returns the squared Euclidean distance from p to (x, y).
func (p Point) SquaredDistance(x, y float64) float64 {
	dx := p.X - x
	dy := p.Y - y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle described by its center (CX, CY) and
// half-extents (HW, HH).
type Rect struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	HW float64 `json:"hw"`
	HH float64 `json:"hh"`
}

// NewRect creates a rectangle from a center point and half-extents.
func NewRect(cx, cy, hw, hh float64) Rect {
	return Rect{CX: cx, CY: cy, HW: hw, HH: hh}
}

// RectFromCorners converts a min/max corner rectangle to center/half-extent
// form.
func RectFromCorners(minX, minY, maxX, maxY float64) Rect {
	return Rect{
		CX: (minX + maxX) / 2,
		CY: (minY + maxY) / 2,
		HW: (maxX - minX) / 2,
		HH: (maxY - minY) / 2,
	}
}

// Contains reports whether (x, y) lies inside the rectangle.
// The boundary is closed: points exactly on an edge are contained.
func (r Rect) Contains(x, y float64) bool {
	return math.Abs(x-r.CX) <= r.HW && math.Abs(y-r.CY) <= r.HH
}

// ContainsPoint reports whether p lies inside the rectangle.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether the two rectangles overlap.
// The test is closed-interval on both axes, so touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return math.Abs(r.CX-o.CX) <= r.HW+o.HW && math.Abs(r.CY-o.CY) <= r.HH+o.HH
}

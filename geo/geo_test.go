package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := NewRect(50, 50, 50, 50) // universe [0,100]x[0,100]

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"interior", 10, 90, true},
		{"left edge", 0, 50, true},
		{"right edge", 100, 50, true},
		{"top edge", 50, 0, true},
		{"bottom edge", 50, 100, true},
		{"corner", 0, 0, true},
		{"opposite corner", 100, 100, true},
		{"outside x", 100.0001, 50, false},
		{"outside y", 50, -0.0001, false},
		{"far outside", -200, 300, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.x, tt.y))
			assert.Equal(t, tt.want, r.ContainsPoint(Point{X: tt.x, Y: tt.y}))
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", NewRect(0, 0, 10, 10), true},
		{"contained", NewRect(0, 0, 1, 1), true},
		{"overlapping", NewRect(15, 0, 10, 10), true},
		{"touching edge", NewRect(20, 0, 10, 10), true},
		{"touching corner", NewRect(20, 20, 10, 10), true},
		{"disjoint x", NewRect(25, 0, 10, 10), false},
		{"disjoint y", NewRect(0, -30, 10, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Intersects(tt.other))
			// Intersection is symmetric
			assert.Equal(t, tt.want, tt.other.Intersects(r))
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(0, 0, 100, 50)

	assert.Equal(t, NewRect(50, 25, 50, 25), r)
	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(100, 50))
	assert.False(t, r.Contains(100, 51))
}

func TestPoint_SquaredDistance(t *testing.T) {
	p := Point{X: 3, Y: 4}

	assert.Equal(t, 25.0, p.SquaredDistance(0, 0))
	assert.Equal(t, 0.0, p.SquaredDistance(3, 4))
}

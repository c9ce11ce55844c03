// Package region holds the region model and the ordered region store.
package region

import (
	"fmt"
	"math"

	"github.com/bethropolis/tilegrid/internal/types"
)

// Region is an axis-aligned rectangle in canvas units. The JSON form
// matches what earlier releases stored under the "regions" key.
type Region struct {
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	EndX   float64 `json:"endX"`
	EndY   float64 `json:"endY"`
}

// FromPoints builds a normalized region spanning a and b.
func FromPoints(a, b types.Point) Region {
	return Region{StartX: a.X, StartY: a.Y, EndX: b.X, EndY: b.Y}.Normalize()
}

// Normalize returns r with start <= end on both axes.
func (r Region) Normalize() Region {
	if r.StartX > r.EndX {
		r.StartX, r.EndX = r.EndX, r.StartX
	}
	if r.StartY > r.EndY {
		r.StartY, r.EndY = r.EndY, r.StartY
	}
	return r
}

// Width may be negative for a region inverted by a resize.
func (r Region) Width() float64 { return r.EndX - r.StartX }

// Height may be negative for a region inverted by a resize.
func (r Region) Height() float64 { return r.EndY - r.StartY }

// Area is the absolute covered area.
func (r Region) Area() float64 { return math.Abs(r.Width() * r.Height()) }

// Empty reports a region with zero width or height.
func (r Region) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether p lies strictly inside r's open interval.
// Points on an edge are outside, and an inverted region contains nothing.
func (r Region) Contains(p types.Point) bool {
	return p.X > r.StartX && p.X < r.EndX && p.Y > r.StartY && p.Y < r.EndY
}

// Overlaps reports whether r and o share interior area.
func (r Region) Overlaps(o Region) bool {
	return r.StartX < o.EndX && r.EndX > o.StartX &&
		r.StartY < o.EndY && r.EndY > o.StartY
}

// Edge returns the coordinate of one edge.
func (r Region) Edge(e Edge) float64 {
	switch e {
	case EdgeLeft:
		return r.StartX
	case EdgeRight:
		return r.EndX
	case EdgeTop:
		return r.StartY
	case EdgeBottom:
		return r.EndY
	}
	return math.NaN()
}

func (r Region) String() string {
	return fmt.Sprintf("[%g,%g -> %g,%g]", r.StartX, r.StartY, r.EndX, r.EndY)
}

// Label is the display label for the region at index i ("R1", "R2", ...).
// Labels follow position, so they shift when the sequence changes.
func Label(i int) string {
	return fmt.Sprintf("R%d", i+1)
}

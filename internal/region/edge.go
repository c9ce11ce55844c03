package region

import (
	"math"

	"github.com/bethropolis/tilegrid/internal/types"
)

// Edge names one side of a region.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// edgeOrder is the tie-break order used when several edges are in reach.
var edgeOrder = [...]Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Horizontal reports whether the edge moves along the X axis.
func (e Edge) Horizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// NearestEdge returns the first edge of r (left, right, top, bottom) whose
// distance to p is strictly below threshold, or EdgeNone.
func NearestEdge(r Region, p types.Point, threshold float64) Edge {
	for _, e := range edgeOrder {
		coord := p.Y
		if e.Horizontal() {
			coord = p.X
		}
		if math.Abs(coord-r.Edge(e)) < threshold {
			return e
		}
	}
	return EdgeNone
}

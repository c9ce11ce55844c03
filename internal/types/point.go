// internal/types/point.go
package types

import "fmt"

// Point is a position in canvas units. Canvas units are the editor's
// logical coordinate space; the TUI maps terminal cells onto them.
type Point struct {
	X float64
	Y float64
}

// Sub returns the componentwise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

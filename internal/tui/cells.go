package tui

import (
	"math"

	"github.com/bethropolis/tilegrid/internal/types"
)

// CellMapper converts between terminal cells and canvas units. Each cell
// covers CellWidth x CellHeight canvas units.
type CellMapper struct {
	CellWidth  float64
	CellHeight float64
}

// NewCellMapper falls back to one unit per cell for non-positive sizes.
func NewCellMapper(cellWidth, cellHeight int) CellMapper {
	m := CellMapper{CellWidth: float64(cellWidth), CellHeight: float64(cellHeight)}
	if m.CellWidth <= 0 {
		m.CellWidth = 1
	}
	if m.CellHeight <= 0 {
		m.CellHeight = 1
	}
	return m
}

// ToCanvas returns the canvas point at the center of cell (col, row).
func (m CellMapper) ToCanvas(col, row int) types.Point {
	return types.Point{
		X: (float64(col) + 0.5) * m.CellWidth,
		Y: (float64(row) + 0.5) * m.CellHeight,
	}
}

// ToCell returns the cell holding canvas point p.
func (m CellMapper) ToCell(p types.Point) (col, row int) {
	return int(math.Floor(p.X / m.CellWidth)), int(math.Floor(p.Y / m.CellHeight))
}

// Columns returns how many cells span w canvas units, rounding up.
func (m CellMapper) Columns(w int) int {
	return int(math.Ceil(float64(w) / m.CellWidth))
}

// Rows returns how many cells span h canvas units, rounding up.
func (m CellMapper) Rows(h int) int {
	return int(math.Ceil(float64(h) / m.CellHeight))
}

// spansLine reports whether [from, from+size) contains a multiple of step.
func spansLine(from, size, step float64) bool {
	if step <= 0 {
		return false
	}
	return math.Ceil(from/step)*step < from+size
}

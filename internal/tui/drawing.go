// internal/tui/drawing.go
package tui

import (
	"math"

	"github.com/bethropolis/tilegrid/internal/core"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/bethropolis/tilegrid/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Box-drawing runes for the grid.
const (
	gridVertical   = '│'
	gridHorizontal = '─'
	gridCross      = '┼'
	outsideRune    = '·'
)

// DrawScene draws the canvas, grid, regions and draw preview into the area
// above the status bar. Canvas point (0,0) sits at the top-left cell.
func DrawScene(tuiManager *TUI, scene core.Scene, activeTheme *theme.Theme, cells CellMapper, statusBarHeight int) {
	if activeTheme == nil {
		logger.Warnf("DrawScene called with nil theme, using built-in default.")
		activeTheme = &theme.BlueprintDark
	}
	screen := tuiManager.screen

	canvasStyle := activeTheme.GetStyle(theme.StyleCanvas)
	gridStyle := activeTheme.GetStyle(theme.StyleGrid)
	outsideStyle := activeTheme.GetStyle(theme.StyleOutside)

	width, height := tuiManager.Size()
	viewHeight := height - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	canvasCols := cells.Columns(scene.Width)
	canvasRows := cells.Rows(scene.Height)

	// --- A: Background and grid ---
	for row := 0; row < viewHeight; row++ {
		y0 := float64(row) * cells.CellHeight
		onRow := spansLine(y0, cells.CellHeight, scene.GridSize)
		for col := 0; col < width; col++ {
			if col >= canvasCols || row >= canvasRows {
				screen.SetContent(col, row, outsideRune, nil, outsideStyle)
				continue
			}
			x0 := float64(col) * cells.CellWidth
			onCol := spansLine(x0, cells.CellWidth, scene.GridSize)
			switch {
			case onRow && onCol:
				screen.SetContent(col, row, gridCross, nil, gridStyle)
			case onCol:
				screen.SetContent(col, row, gridVertical, nil, gridStyle)
			case onRow:
				screen.SetContent(col, row, gridHorizontal, nil, gridStyle)
			default:
				screen.SetContent(col, row, ' ', nil, canvasStyle)
			}
		}
	}

	// --- B: Regions in store order, later ones on top ---
	for i, r := range scene.Regions {
		style := activeTheme.GetStyle(theme.StyleRegion)
		if i%2 == 1 {
			style = activeTheme.GetStyle(theme.StyleRegionAlt)
		}
		if !scene.PreviewMode && i == scene.Selected {
			style = activeTheme.GetStyle(theme.StyleRegionSelected)
		}
		fillRegion(screen, r.Normalize(), cells, style, width, viewHeight)

		labelStyle := activeTheme.GetStyle(theme.StyleRegionLabel)
		col, row := firstCell(r.Normalize(), cells, width, viewHeight)
		drawText(screen, col, row, region.Label(i), labelStyle, width, viewHeight)
	}

	// --- C: Edge being resized ---
	if !scene.PreviewMode && scene.ActiveEdge != region.EdgeNone &&
		scene.Selected >= 0 && scene.Selected < len(scene.Regions) {
		drawEdge(screen, scene.Regions[scene.Selected], scene.ActiveEdge, cells,
			activeTheme.GetStyle(theme.StyleResizeEdge), width, viewHeight)
	}

	// --- D: Live draw preview ---
	if !scene.PreviewMode && scene.Preview != nil {
		fillRegion(screen, scene.Preview.Normalize(), cells, activeTheme.GetStyle(theme.StylePreview), width, viewHeight)
	}
}

// cellRange returns the half-open cell range whose centers fall strictly
// inside [lo, hi] along one axis, clamped to [0, limit].
func cellRange(lo, hi, size float64, limit int) (int, int) {
	// Cell c is inside when lo < (c+0.5)*size < hi.
	first := clampCell(math.Floor(lo/size-0.5)+1, limit)
	last := clampCell(math.Ceil(hi/size-0.5), limit)
	if last < first {
		last = first
	}
	return first, last
}

// clampCell converts v to a cell index in [0, limit]. NaN maps to 0.
func clampCell(v float64, limit int) int {
	switch {
	case !(v > 0):
		return 0
	case v > float64(limit):
		return limit
	}
	return int(v)
}

// firstCell is the top-left cell a region paints, used for its label.
func firstCell(r region.Region, cells CellMapper, maxW, maxH int) (int, int) {
	col, _ := cellRange(r.StartX, r.EndX, cells.CellWidth, maxW)
	row, _ := cellRange(r.StartY, r.EndY, cells.CellHeight, maxH)
	return col, row
}

func fillRegion(screen tcell.Screen, r region.Region, cells CellMapper, style tcell.Style, maxW, maxH int) {
	c0, c1 := cellRange(r.StartX, r.EndX, cells.CellWidth, maxW)
	r0, r1 := cellRange(r.StartY, r.EndY, cells.CellHeight, maxH)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawEdge(screen tcell.Screen, r region.Region, edge region.Edge, cells CellMapper, style tcell.Style, maxW, maxH int) {
	n := r.Normalize()
	c0, c1 := cellRange(n.StartX, n.EndX, cells.CellWidth, maxW)
	r0, r1 := cellRange(n.StartY, n.EndY, cells.CellHeight, maxH)
	col, row := cells.ToCell(pointOnEdge(r, edge))

	if edge.Horizontal() {
		for y := r0; y < r1 && y < maxH; y++ {
			if col >= 0 && col < maxW {
				screen.SetContent(col, y, gridVertical, nil, style)
			}
		}
		return
	}
	for x := c0; x < c1 && x < maxW; x++ {
		if row >= 0 && row < maxH {
			screen.SetContent(x, row, gridHorizontal, nil, style)
		}
	}
}

func pointOnEdge(r region.Region, edge region.Edge) (p types.Point) {
	if edge.Horizontal() {
		p.X = r.Edge(edge)
	} else {
		p.Y = r.Edge(edge)
	}
	return p
}

// drawText writes s starting at (x, y) using grapheme widths.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style, maxW, maxH int) {
	if y < 0 || y >= maxH {
		return
	}
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if x+w > maxW {
			return
		}
		runes := gr.Runes()
		if x >= 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}

// CanvasRenderer implements core.Renderer on a TUI.
type CanvasRenderer struct {
	tui             *TUI
	cells           CellMapper
	theme           func() *theme.Theme
	overlay         func(screen tcell.Screen, width, height int)
	statusBarHeight int
	last            core.Scene
	hasScene        bool
}

// NewCanvasRenderer draws scenes with the theme returned by themeFn. The
// overlay, if set, runs after the canvas and before Show (status bar).
func NewCanvasRenderer(t *TUI, cells CellMapper, themeFn func() *theme.Theme, statusBarHeight int,
	overlay func(screen tcell.Screen, width, height int)) *CanvasRenderer {
	return &CanvasRenderer{
		tui:             t,
		cells:           cells,
		theme:           themeFn,
		overlay:         overlay,
		statusBarHeight: statusBarHeight,
	}
}

// Render draws scene and shows the frame.
func (r *CanvasRenderer) Render(scene core.Scene) {
	r.last = scene
	r.hasScene = true
	r.draw()
}

// Redraw repeats the last frame, e.g. after a terminal resize or theme change.
func (r *CanvasRenderer) Redraw() {
	if !r.hasScene {
		return
	}
	r.draw()
}

func (r *CanvasRenderer) draw() {
	r.tui.Clear()
	DrawScene(r.tui, r.last, r.theme(), r.cells, r.statusBarHeight)
	if r.overlay != nil {
		w, h := r.tui.Size()
		r.overlay(r.tui.screen, w, h)
	}
	r.tui.Show()
}

// Cells returns the cell mapping used for drawing.
func (r *CanvasRenderer) Cells() CellMapper {
	return r.cells
}

var _ core.Renderer = (*CanvasRenderer)(nil)

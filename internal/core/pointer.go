package core

import (
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/types"
)

// PointerDown starts a resize when p lands within the threshold of an edge
// of the first region containing it, and a draw otherwise. A hit region
// without a nearby edge is only marked selected.
func (e *Editor) PointerDown(p types.Point) {
	e.origin = p
	e.end = p
	e.lastPoint = p
	e.havePoint = true
	e.edge = region.EdgeNone
	e.selected = -1

	if idx, ok := e.regions.HitTest(p); ok {
		e.selected = idx
		e.edge = e.regions.ResizeEdge(idx, p, e.threshold)
	}

	if e.edge != region.EdgeNone {
		e.mode = ModeResizing
		logger.DebugTagf("pointer", "Editor: resize %s of %s at %s", e.edge, region.Label(e.selected), p)
	} else {
		e.mode = ModeDrawing
		logger.DebugTagf("pointer", "Editor: draw from %s (selected=%d)", p, e.selected)
	}
}

// PointerMove updates the draw preview or the edge being resized, and
// accumulates pan while the primary button is held.
func (e *Editor) PointerMove(p types.Point, primaryHeld bool) {
	if primaryHeld && e.havePoint {
		d := p.Sub(e.lastPoint)
		if d.X != 0 || d.Y != 0 {
			e.panX += d.X
			e.panY += d.Y
			e.eventManager.Dispatch(event.TypeViewChanged, event.ViewChangedData{Zoom: e.zoom, PanX: e.panX, PanY: e.panY})
		}
	}
	e.lastPoint = p
	e.havePoint = true

	switch e.mode {
	case ModeDrawing:
		e.end = p
		e.Render()
	case ModeResizing:
		value := p.Y
		if e.edge.Horizontal() {
			value = p.X
		}
		if err := e.regions.UpdateEdge(e.selected, e.edge, value); err != nil {
			logger.Warnf("Editor: resize step failed: %v", err)
			return
		}
		e.regionsChanged()
	}
}

// PointerUp commits a drawn region and returns to idle. Resizes have
// already been applied in place and are not recorded to history.
func (e *Editor) PointerUp(p types.Point) {
	defer e.resetPointer()

	if e.mode != ModeDrawing {
		if e.mode == ModeResizing {
			logger.DebugTagf("pointer", "Editor: resize of %s finished", region.Label(e.selected))
		}
		e.Render()
		return
	}

	e.end = p
	r := region.FromPoints(e.origin, e.end)
	if r.Empty() {
		logger.DebugTagf("pointer", "Editor: discarding empty draw at %s", p)
		e.mode = ModeIdle
		e.Render()
		return
	}

	e.regions.Add(r)
	e.record()
	idx := e.regions.Len() - 1
	logger.Debugf("Editor: committed %s %s", region.Label(idx), r)

	e.mode = ModeIdle
	e.regionsChanged()
	e.eventManager.Dispatch(event.TypeRegionCommitted, event.RegionCommittedData{Index: idx, Region: r})
}

func (e *Editor) resetPointer() {
	e.mode = ModeIdle
	e.edge = region.EdgeNone
	e.selected = -1
	e.havePoint = false
}

// Wheel zooms in for negative deltaY and out otherwise. No clamping.
func (e *Editor) Wheel(deltaY float64) {
	if deltaY < 0 {
		e.zoom *= e.zoomFactor
	} else {
		e.zoom /= e.zoomFactor
	}
	e.Render()
	e.eventManager.Dispatch(event.TypeViewChanged, event.ViewChangedData{Zoom: e.zoom, PanX: e.panX, PanY: e.panY})
}

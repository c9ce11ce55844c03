package modehandler

import (
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// HandleMouseEvent turns tcell mouse reports into pointer calls. tcell has
// no press or release events, so they are derived from Button1 changing.
// Returns true if the event requires a redraw.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse) bool {
	col, row := ev.Position()
	buttons := ev.Buttons()
	p := mh.mapper.ToCanvas(col, row)

	// Wheel reports may arrive with Button1 still set during a drag.
	switch {
	case buttons&tcell.WheelUp != 0:
		mh.editor.Wheel(-1)
		return true
	case buttons&tcell.WheelDown != 0:
		mh.editor.Wheel(1)
		return true
	}

	primary := buttons&tcell.Button1 != 0
	moved := mh.lastCell != [2]int{col, row}
	mh.lastCell = [2]int{col, row}

	switch {
	case primary && !mh.pressed:
		if mh.currentMode != ModeNormal {
			return false
		}
		if mh.viewHeight >= 0 && row >= mh.viewHeight {
			return false // status bar
		}
		mh.pressed = true
		mh.editor.DisarmClear()
		mh.forceQuitPending = false
		logger.DebugTagf("mouse", "ModeHandler: press at cell %d,%d -> %s", col, row, p)
		mh.editor.PointerDown(p)
		return true

	case primary && mh.pressed:
		if !moved {
			return false
		}
		mh.editor.PointerMove(p, true)
		return true

	case !primary && mh.pressed:
		mh.pressed = false
		logger.DebugTagf("mouse", "ModeHandler: release at cell %d,%d -> %s", col, row, p)
		mh.editor.PointerUp(p)
		return true

	default:
		// Hover. The editor ignores moves while idle apart from tracking.
		if moved {
			mh.editor.PointerMove(p, false)
		}
		return false
	}
}

// Dragging reports whether Button1 is held over the canvas.
func (mh *ModeHandler) Dragging() bool {
	return mh.pressed
}

package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
)

// Output is the result of Generate.
type Output struct {
	Template string
	Ratio    string
	Prompt   string
}

// Generation is not implemented yet; these fill the output fields.
const (
	TemplatePlaceholder = "ADDCOL, ADDROW Template Placeholder"
	RatioPlaceholder    = "Divide Ratio Placeholder"
	PromptPlaceholder   = "Prompt for Stable Diffusion Placeholder"
)

// Undo restores the previous history entry. It reports whether anything changed.
func (e *Editor) Undo() bool {
	snap, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.regions.Restore(snap)
	e.historyMoved()
	return true
}

// Redo restores the next history entry. It reports whether anything changed.
func (e *Editor) Redo() bool {
	snap, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.regions.Restore(snap)
	e.historyMoved()
	return true
}

func (e *Editor) historyMoved() {
	pos, total := e.history.Stats()
	e.regionsChanged()
	e.eventManager.Dispatch(event.TypeHistoryMoved, event.HistoryMovedData{Position: pos, Total: total})
}

// Clear empties the store and records the empty state.
func (e *Editor) Clear() {
	e.clearArmed = false
	e.regions.Clear()
	e.record()
	logger.Debugf("Editor: regions cleared")
	e.regionsChanged()
}

// RequestClear asks for confirmation on the first call and clears on the
// next consecutive one. Any other action in between disarms it.
func (e *Editor) RequestClear() bool {
	if !e.clearArmed {
		if e.regions.Len() == 0 {
			e.notify(event.LevelInfo, "Nothing to clear.")
			return false
		}
		e.clearArmed = true
		e.notify(event.LevelWarning, fmt.Sprintf("Clear %d region(s)? Press again to confirm.", e.regions.Len()))
		return false
	}
	e.Clear()
	e.notify(event.LevelInfo, "Regions cleared.")
	return true
}

// DisarmClear cancels a pending clear confirmation.
func (e *Editor) DisarmClear() {
	e.clearArmed = false
}

// ClearArmed reports whether a clear is waiting for confirmation.
func (e *Editor) ClearArmed() bool {
	return e.clearArmed
}

// ResizeCanvas parses and applies new canvas dimensions. Existing regions
// keep their coordinates. Invalid input leaves the canvas unchanged.
func (e *Editor) ResizeCanvas(widthStr, heightStr string) error {
	w, err := parseDimension("width", widthStr)
	if err == nil {
		var h int
		h, err = parseDimension("height", heightStr)
		if err == nil {
			e.SetCanvasSize(w, h)
			return nil
		}
	}
	e.notify(event.LevelError, err.Error())
	return err
}

// SetCanvasSize applies already validated dimensions.
func (e *Editor) SetCanvasSize(width, height int) {
	e.width, e.height = width, height
	logger.Debugf("Editor: canvas resized to %dx%d", width, height)
	e.Render()
	e.eventManager.Dispatch(event.TypeCanvasResized, event.CanvasResizedData{Width: width, Height: height})
}

func parseDimension(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", name, s, ErrInvalidDimension)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d: %w", name, v, ErrInvalidDimension)
	}
	return v, nil
}

// SetDivideRatio stores v rounded to the nearest 0.1. Values outside
// [0.1, 10] are rejected.
func (e *Editor) SetDivideRatio(v float64) error {
	if math.IsNaN(v) || v < config.MinDivideRatio || v > config.MaxDivideRatio {
		err := fmt.Errorf("divide ratio %g outside [%g, %g]: %w", v, config.MinDivideRatio, config.MaxDivideRatio, ErrInvalidRatio)
		e.notify(event.LevelError, err.Error())
		return err
	}
	steps := math.Round(v / config.DivideRatioStep)
	e.divideRatio = steps / (1 / config.DivideRatioStep)
	return nil
}

// TogglePreview switches between edit and preview rendering.
func (e *Editor) TogglePreview() bool {
	e.previewMode = !e.previewMode
	e.Render()
	return e.previewMode
}

// Generate validates the layout and fills the three output fields.
func (e *Editor) Generate() (Output, error) {
	if problems := region.Validate(e.regions.Regions()); len(problems) > 0 {
		msg := strings.Join(problems, "\n")
		e.notify(event.LevelError, msg)
		return Output{}, fmt.Errorf("generate: %s: %w", msg, ErrInvalidLayout)
	}
	out := Output{
		Template: TemplatePlaceholder,
		Ratio:    RatioPlaceholder,
		Prompt:   PromptPlaceholder,
	}
	e.notify(event.LevelSuccess, "Information generated successfully!")
	return out, nil
}

// internal/core/editor.go
package core

import (
	"errors"

	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/core/history"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/storage"
	"github.com/bethropolis/tilegrid/internal/types"
)

var (
	// ErrInvalidDimension is returned when a canvas size is not a positive integer.
	ErrInvalidDimension = errors.New("invalid canvas dimension")
	// ErrNoSavedLayout is returned by Load when nothing was saved.
	ErrNoSavedLayout = errors.New("no saved layout")
	// ErrInvalidRatio is returned for a divide ratio outside [0.1, 10].
	ErrInvalidRatio = errors.New("invalid divide ratio")
	// ErrInvalidLayout is returned by Generate when validation reports problems.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrNoStore is returned by Save and Load when no key-value store is attached.
	ErrNoStore = errors.New("no layout store configured")
)

// Mode is the pointer state of the editor.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "DRAW"
	case ModeResizing:
		return "RESIZE"
	default:
		return "IDLE"
	}
}

// Scene is everything a Renderer needs to draw one frame.
type Scene struct {
	Regions     []region.Region
	Preview     *region.Region // live rectangle while drawing, nil otherwise
	Selected    int            // index of the hit region, -1 for none
	ActiveEdge  region.Edge    // edge being resized, EdgeNone otherwise
	Width       int
	Height      int
	GridSize    float64
	Zoom        float64
	PanX        float64
	PanY        float64
	PreviewMode bool
}

// Renderer draws a Scene. Implementations must not modify the Scene.
type Renderer interface {
	Render(scene Scene)
}

// Options configures a new Editor.
type Options struct {
	Width           int
	Height          int
	GridSize        float64
	ResizeThreshold float64
	ZoomFactor      float64
	MaxHistory      int
	DivideRatio     float64
}

// DefaultOptions returns the built-in editor settings.
func DefaultOptions() Options {
	return Options{
		Width:           config.DefaultCanvasWidth,
		Height:          config.DefaultCanvasHeight,
		GridSize:        config.DefaultGridSize,
		ResizeThreshold: config.DefaultResizeThreshold,
		ZoomFactor:      config.DefaultZoomFactor,
		MaxHistory:      config.DefaultMaxHistory,
		DivideRatio:     config.DefaultDivideRatio,
	}
}

// OptionsFromConfig maps the loaded configuration onto editor options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Width:           cfg.Canvas.Width,
		Height:          cfg.Canvas.Height,
		GridSize:        float64(cfg.Canvas.GridSize),
		ResizeThreshold: cfg.Editor.ResizeThreshold,
		ZoomFactor:      cfg.Editor.ZoomFactor,
		MaxHistory:      cfg.Editor.MaxHistory,
		DivideRatio:     cfg.Editor.DivideRatio,
	}
}

// Editor is one editing session: the region store, its history and the
// pointer state machine driving them. Not safe for concurrent use.
type Editor struct {
	regions *region.Store
	history *history.Manager

	kv           storage.KeyValueStore
	eventManager *event.Manager
	renderer     Renderer

	// Pointer interaction state, reset on release.
	mode       Mode
	origin     types.Point
	end        types.Point
	edge       region.Edge
	selected   int
	lastPoint  types.Point
	havePoint  bool
	clearArmed bool
	modified   bool // live regions differ from the last save or load

	// Tracked view state. Not applied to hit-testing.
	zoom float64
	panX float64
	panY float64

	width       int
	height      int
	gridSize    float64
	threshold   float64
	zoomFactor  float64
	divideRatio float64
	previewMode bool
}

// NewEditor creates a session and records the empty starting layout so the
// first drawn region can be undone.
func NewEditor(opts Options) *Editor {
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}
	if opts.GridSize <= 0 {
		opts.GridSize = defaults.GridSize
	}
	if opts.ResizeThreshold <= 0 {
		opts.ResizeThreshold = defaults.ResizeThreshold
	}
	if opts.ZoomFactor <= 0 {
		opts.ZoomFactor = defaults.ZoomFactor
	}
	if opts.DivideRatio <= 0 {
		opts.DivideRatio = defaults.DivideRatio
	}

	e := &Editor{
		regions:     region.NewStore(),
		history:     history.NewManager(opts.MaxHistory),
		selected:    -1,
		zoom:        1,
		width:       opts.Width,
		height:      opts.Height,
		gridSize:    opts.GridSize,
		threshold:   opts.ResizeThreshold,
		zoomFactor:  opts.ZoomFactor,
		divideRatio: opts.DivideRatio,
	}
	e.history.Record(e.regions.Snapshot())
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetRenderer attaches the drawing collaborator.
func (e *Editor) SetRenderer(r Renderer) {
	e.renderer = r
}

// SetStore attaches the key-value store used by Save and Load.
func (e *Editor) SetStore(kv storage.KeyValueStore) {
	e.kv = kv
}

// --- Read access ---

func (e *Editor) Mode() Mode                   { return e.mode }
func (e *Editor) Regions() []region.Region     { return e.regions.Regions() }
func (e *Editor) RegionCount() int             { return e.regions.Len() }
func (e *Editor) History() *history.Manager    { return e.history }
func (e *Editor) CanvasSize() (int, int)       { return e.width, e.height }
func (e *Editor) GridSize() float64            { return e.gridSize }
func (e *Editor) Zoom() float64                { return e.zoom }
func (e *Editor) Pan() (float64, float64)      { return e.panX, e.panY }
func (e *Editor) DivideRatio() float64         { return e.divideRatio }
func (e *Editor) PreviewMode() bool            { return e.previewMode }
func (e *Editor) ActiveEdge() region.Edge      { return e.edge }
func (e *Editor) Store() storage.KeyValueStore { return e.kv }
func (e *Editor) Modified() bool               { return e.modified }

// Selected returns the index of the region hit by the current press.
func (e *Editor) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

// Scene assembles the current frame.
func (e *Editor) Scene() Scene {
	s := Scene{
		Regions:     e.regions.Regions(),
		Selected:    e.selected,
		ActiveEdge:  e.edge,
		Width:       e.width,
		Height:      e.height,
		GridSize:    e.gridSize,
		Zoom:        e.zoom,
		PanX:        e.panX,
		PanY:        e.panY,
		PreviewMode: e.previewMode,
	}
	if e.mode == ModeDrawing {
		preview := region.Region{StartX: e.origin.X, StartY: e.origin.Y, EndX: e.end.X, EndY: e.end.Y}
		s.Preview = &preview
	}
	return s
}

// Render hands the current scene to the renderer, if any.
func (e *Editor) Render() {
	if e.renderer == nil {
		return
	}
	e.renderer.Render(e.Scene())
}

func (e *Editor) notify(level event.Level, msg string) {
	logger.DebugTagf("notify", "Editor: [%s] %s", level, msg)
	e.eventManager.Dispatch(event.TypeNotification, event.NotificationData{Level: level, Message: msg})
}

// regionsChanged renders and announces a change to the live sequence.
func (e *Editor) regionsChanged() {
	e.modified = true
	e.Render()
	e.eventManager.Dispatch(event.TypeRegionsChanged, event.RegionsChangedData{Count: e.regions.Len()})
}

// record pushes the live sequence onto the history log.
func (e *Editor) record() {
	e.history.Record(e.regions.Snapshot())
}

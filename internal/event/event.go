// internal/event/event.go
package event

import (
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Layout events
	TypeRegionsChanged  // Live region sequence changed (commit, resize step, undo, redo, clear, load)
	TypeRegionCommitted // A drawn region was added to the store
	TypeHistoryMoved    // Undo or redo moved the history cursor
	TypeLayoutSaved     // Regions were written to the key-value store
	TypeLayoutLoaded    // Regions were read back from the key-value store
	TypeCanvasResized   // Canvas dimensions changed
	TypeViewChanged     // Zoom level or pan offset changed
	TypeGenerated       // Generate produced its outputs

	// Notification carries a user-facing message for the UI collaborator.
	TypeNotification

	// Input
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeRegionsChanged:
		return "RegionsChanged"
	case TypeRegionCommitted:
		return "RegionCommitted"
	case TypeHistoryMoved:
		return "HistoryMoved"
	case TypeLayoutSaved:
		return "LayoutSaved"
	case TypeLayoutLoaded:
		return "LayoutLoaded"
	case TypeCanvasResized:
		return "CanvasResized"
	case TypeViewChanged:
		return "ViewChanged"
	case TypeGenerated:
		return "Generated"
	case TypeNotification:
		return "Notification"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// RegionsChangedData reports the number of regions after a change.
type RegionsChangedData struct {
	Count int
}

// RegionCommittedData carries the region that was just drawn.
type RegionCommittedData struct {
	Index  int
	Region region.Region
}

// HistoryMovedData reports the history position after undo/redo.
type HistoryMovedData struct {
	Position int // 1-based
	Total    int
}

// LayoutSavedData / LayoutLoadedData name the storage key involved.
type LayoutSavedData struct {
	Key   string
	Count int
}

type LayoutLoadedData struct {
	Key   string
	Count int
}

// CanvasResizedData carries the new canvas size in canvas units.
type CanvasResizedData struct {
	Width  int
	Height int
}

// ViewChangedData carries the tracked zoom and pan values.
type ViewChangedData struct {
	Zoom float64
	PanX float64
	PanY float64
}

// GeneratedData carries the three generate outputs.
type GeneratedData struct {
	Template string
	Ratio    string
	Prompt   string
}

// Level grades a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// NotificationData is a non-blocking user-facing message.
type NotificationData struct {
	Level   Level
	Message string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleModified  tcell.Style // Style for the unsaved indicator
	StyleMessage   tcell.Style // Style for temporary messages
	StyleError     tcell.Style // Style for error and warning notifications
	StyleCommand   tcell.Style // Style for the command line
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// Info is the layout state shown when no message is active.
type Info struct {
	Regions     int
	HistoryPos  int // 1-based
	HistoryLen  int
	CanUndo     bool
	CanRedo     bool
	Width       int
	Height      int
	Zoom        float64
	PanX        float64
	PanY        float64
	DivideRatio float64
	Pointer     string // IDLE, DRAW, RESIZE
	Preview     bool
	Modified    bool
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info       Info
	editorMode string // NORMAL, COMMAND

	// Temporary message state
	tempMessage     string
	tempLevel       event.Level
	tempMessageTime time.Time
	commandLine     string // shown instead of everything else while non-empty

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig swaps styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetInfo replaces the layout state.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetEditorMode updates the displayed input mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetCommandLine shows the command being typed. Empty hides it.
func (sb *StatusBar) SetCommandLine(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandLine = text
}

// SetTemporaryMessage displays an info message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.Notify(event.LevelInfo, fmt.Sprintf(format, args...))
}

// Notify displays a graded message for the configured duration.
func (sb *StatusBar) Notify(level event.Level, msg string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	// Multi-line messages are flattened onto the single status line.
	sb.tempMessage = strings.ReplaceAll(msg, "\n", " | ")
	sb.tempLevel = level
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() (string, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.tempMessageTime.IsZero() || sb.now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		return "", false
	}
	return sb.tempMessage, true
}

// defaultText builds the status line from Info. Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	i := sb.info
	var b strings.Builder
	fmt.Fprintf(&b, "%d region(s)", i.Regions)
	if i.Modified {
		b.WriteString(" [+]")
	}
	fmt.Fprintf(&b, " -- %dx%d -- hist %d/%d", i.Width, i.Height, i.HistoryPos, i.HistoryLen)
	switch {
	case i.CanUndo && i.CanRedo:
		b.WriteString(" (undo|redo)")
	case i.CanUndo:
		b.WriteString(" (undo)")
	case i.CanRedo:
		b.WriteString(" (redo)")
	}
	fmt.Fprintf(&b, " -- zoom %.2f pan %g,%g -- ratio %.1f", i.Zoom, i.PanX, i.PanY, i.DivideRatio)
	if i.Preview {
		b.WriteString(" -- PREVIEW")
	}
	if i.Pointer != "" && i.Pointer != "IDLE" {
		fmt.Fprintf(&b, " -- %s", i.Pointer)
	}
	if sb.editorMode != "" {
		fmt.Fprintf(&b, " -- %s", sb.editorMode)
	}
	return b.String()
}

// Text returns the line Draw would render and its style.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.commandLine != "" {
		return sb.commandLine, sb.config.StyleCommand
	}

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		switch sb.tempLevel {
		case event.LevelError, event.LevelWarning:
			return sb.tempMessage, sb.config.StyleError
		default:
			return sb.tempMessage, sb.config.StyleMessage
		}
	}
	if sb.info.Modified {
		return sb.defaultText(), sb.config.StyleModified
	}
	return sb.defaultText(), sb.config.StyleDefault
}

// Draw renders the status bar onto the last row of the screen using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}

// internal/modehandler/modehandler.go
package modehandler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bethropolis/tilegrid/internal/clipboard"
	"github.com/bethropolis/tilegrid/internal/core"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/input"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/plugin" // For CommandFunc type
	"github.com/bethropolis/tilegrid/internal/statusbar"
	"github.com/bethropolis/tilegrid/internal/types"
	"github.com/gdamore/tcell/v2"
)

// storageTimeout bounds one save or load against a remote store.
const storageTimeout = 10 * time.Second

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// PointMapper converts a terminal cell to a canvas point.
type PointMapper interface {
	ToCanvas(col, row int) types.Point
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	clipboard      *clipboard.Manager
	mapper         PointMapper
	ctx            context.Context
	quitSignal     chan<- struct{} // Channel to signal app termination

	// Internal State
	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc // Command registry
	forceQuitPending bool
	quitting         bool

	// Pointer state
	viewHeight int // rows above the status bar, -1 for unknown
	pressed    bool
	lastCell   [2]int
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Clipboard      *clipboard.Manager
	Mapper         PointMapper
	Context        context.Context // Parent for storage calls; nil means Background
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.Mapper == nil || cfg.QuitSignal == nil {
		// Programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.NewManager(false)
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	mh := &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		clipboard:      cfg.Clipboard,
		mapper:         cfg.Mapper,
		ctx:            cfg.Context,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		viewHeight:     -1,
	}
	mh.registerBuiltinCommands()
	return mh
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name shown in the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	return mh.currentMode.String()
}

// GetCommandBuffer returns the command being typed, without the colon.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// SetViewHeight sets how many rows belong to the canvas. Presses below it
// land on the status bar and are ignored.
func (mh *ModeHandler) SetViewHeight(rows int) {
	mh.viewHeight = rows
}

// RequestQuit closes the quit channel, asking for confirmation first when
// the layout has unsaved changes and force is false. It reports whether the
// app is now quitting.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if mh.quitting {
		return true
	}
	if !force && mh.editor.Modified() && !mh.forceQuitPending {
		mh.statusBar.Notify(event.LevelWarning, "Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
		return false
	}
	mh.quitting = true
	close(mh.quitSignal)
	return true
}

// storageContext derives the context for one storage call.
func (mh *ModeHandler) storageContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(mh.ctx, storageTimeout)
}

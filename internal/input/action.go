// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking for unsaved regions

	// --- Layout ---
	ActionUndo
	ActionRedo
	ActionSave
	ActionLoad
	ActionClear
	ActionGenerate
	ActionTogglePreview
	ActionYank // Copy the layout JSON

	// --- View ---
	ActionZoomIn
	ActionZoomOut
	ActionRatioUp
	ActionRatioDown

	// --- Text Entry (command line) ---
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Enter
	ActionDeleteCharBackward

	// --- Editor Mode ---
	ActionEnterCommandMode // ':'
	ActionHelp
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionSave:               "save",
	ActionLoad:               "load",
	ActionClear:              "clear",
	ActionGenerate:           "generate",
	ActionTogglePreview:      "preview",
	ActionYank:               "yank",
	ActionZoomIn:             "zoom-in",
	ActionZoomOut:            "zoom-out",
	ActionRatioUp:            "ratio-up",
	ActionRatioDown:          "ratio-down",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "enter",
	ActionDeleteCharBackward: "backspace",
	ActionEnterCommandMode:   "command-mode",
	ActionHelp:               "help",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
// It might carry payload data needed for the action (like the rune to insert).
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}

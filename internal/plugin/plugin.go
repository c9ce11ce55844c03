// internal/plugin/plugin.go
package plugin

import (
	"context"

	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words typed after the command name and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor.
// Plugins never hold the editor itself: reads are snapshots and anything
// that mutates state from another goroutine must go through Schedule.
type EditorAPI interface {
	// --- Layout Access (read-only snapshots) ---
	Regions() []region.Region
	RegionCount() int
	CanvasSize() (width, height int)
	IsModified() bool
	LayoutJSON() (string, error)

	// --- Persistence ---
	SaveLayout(ctx context.Context) error
	LoadLayout(ctx context.Context) error

	// --- Main loop ---
	// Schedule runs task on the main loop. Safe to call from any goroutine.
	Schedule(task func())

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})
	Notify(level event.Level, msg string)

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Clipboard ---
	CopyToClipboard(text string) error

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)

	// --- Lifecycle ---
	RequestQuit(force bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for setup,
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}

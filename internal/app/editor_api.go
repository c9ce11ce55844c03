// internal/app/editor_api.go
package app

import (
	"context"
	"fmt"

	"github.com/bethropolis/tilegrid/internal/commands"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/plugin"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// Add verification for commands.ThemeAPI interface
var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI
// interface. Apart from Schedule, its methods run on the main loop: plugins
// call them from commands, event handlers or scheduled tasks.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Layout Access ---

func (api *appEditorAPI) Regions() []region.Region {
	return api.app.editor.Regions()
}

func (api *appEditorAPI) RegionCount() int {
	return api.app.editor.RegionCount()
}

func (api *appEditorAPI) CanvasSize() (int, int) {
	return api.app.editor.CanvasSize()
}

func (api *appEditorAPI) IsModified() bool {
	return api.app.editor.Modified()
}

func (api *appEditorAPI) LayoutJSON() (string, error) {
	return api.app.editor.LayoutJSON()
}

// --- Persistence ---

func (api *appEditorAPI) SaveLayout(ctx context.Context) error {
	err := api.app.editor.Save(ctx)
	api.app.requestRedraw()
	return err
}

func (api *appEditorAPI) LoadLayout(ctx context.Context) error {
	err := api.app.editor.Load(ctx)
	api.app.requestRedraw()
	return err
}

// --- Main loop ---

func (api *appEditorAPI) Schedule(task func()) {
	api.app.Schedule(task)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) Notify(level event.Level, msg string) {
	api.app.statusBar.Notify(level, msg)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Clipboard ---

func (api *appEditorAPI) CopyToClipboard(text string) error {
	return api.app.clipboard.Copy(text)
}

// --- Configuration ---

// GetPluginConfigValue exposes the [plugins.<name>] config tables.
func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	switch pluginName {
	case "autosave":
		autosaveCfg := api.app.cfg.Plugins.Autosave
		switch key {
		case "enabled":
			return autosaveCfg.Enabled, true
		case "interval":
			return autosaveCfg.Interval, true
		}
	}
	return nil, false
}

// --- Lifecycle ---

func (api *appEditorAPI) RequestQuit(force bool) {
	api.app.modeHandler.RequestQuit(force)
}

// Package plugintest provides an in-memory plugin.EditorAPI for tests.
package plugintest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/plugin"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/gdamore/tcell/v2"
)

var _ plugin.EditorAPI = (*API)(nil)

// API records what plugins do with the editor. Scheduled tasks are queued
// until RunScheduled is called, like the real main loop.
type API struct {
	mu sync.Mutex

	Layout   []region.Region
	Width    int
	Height   int
	Modified bool
	Config   map[string]map[string]interface{}

	Saves      int
	Loads      int
	SaveErr    error
	Messages   []string
	Commands   map[string]plugin.CommandFunc
	Clipboard  string
	QuitForced *bool

	Events *event.Manager
	Themes *theme.Manager

	scheduled []func()
}

// New returns an API with a 512x512 empty canvas.
func New() *API {
	return &API{
		Width:    512,
		Height:   512,
		Config:   make(map[string]map[string]interface{}),
		Commands: make(map[string]plugin.CommandFunc),
		Events:   event.NewManager(),
		Themes:   theme.NewManager(""),
	}
}

func (a *API) Regions() []region.Region {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]region.Region(nil), a.Layout...)
}

func (a *API) RegionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Layout)
}

func (a *API) CanvasSize() (int, int) { return a.Width, a.Height }

func (a *API) IsModified() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Modified
}

func (a *API) LayoutJSON() (string, error) {
	data, err := region.Encode(a.Regions())
	return string(data), err
}

func (a *API) SaveLayout(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Saves++
	a.Modified = false
	return nil
}

func (a *API) LoadLayout(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Loads++
	return nil
}

func (a *API) Schedule(task func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduled = append(a.scheduled, task)
}

// Pending reports how many scheduled tasks are waiting.
func (a *API) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.scheduled)
}

// RunScheduled runs queued tasks in order and returns how many ran.
func (a *API) RunScheduled() int {
	a.mu.Lock()
	tasks := a.scheduled
	a.scheduled = nil
	a.mu.Unlock()
	for _, t := range tasks {
		t()
	}
	return len(tasks)
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = cmdFunc
	return nil
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	a.mu.Lock()
	cmd, ok := a.Commands[name]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmd(args)
}

// CommandNames lists registered commands, sorted.
func (a *API) CommandNames() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.Commands))
	for n := range a.Commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

func (a *API) Notify(_ event.Level, msg string) {
	a.SetStatusMessage("%s", msg)
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) GetThemeStyle(styleName string) tcell.Style {
	return a.Themes.Current().GetStyle(styleName)
}

func (a *API) SetTheme(name string) error { return a.Themes.SetTheme(name) }
func (a *API) GetTheme() *theme.Theme    { return a.Themes.Current() }
func (a *API) ListThemes() []string      { return a.Themes.ListThemes() }

func (a *API) CopyToClipboard(text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Clipboard = text
	return nil
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.Config[pluginName][key]
	return v, ok
}

func (a *API) RequestQuit(force bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.QuitForced = &force
}

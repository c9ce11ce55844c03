package app

import (
	"context"
	"testing"
	"time"

	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/storage"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *storage.MemoryStore) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	store := storage.NewMemoryStore()
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false

	a, err := NewApp(Options{Config: cfg, Store: store, Screen: screen})
	require.NoError(t, err)
	screen.SetSize(80, 25)
	a.updateViewHeight()
	return a, screen, store
}

func drag(a *App, fromX, fromY, toX, toY int) {
	a.handleEvent(tcell.NewEventMouse(fromX, fromY, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(toX, toY, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(toX, toY, tcell.ButtonNone, tcell.ModNone))
}

func TestNewAppRequiresStore(t *testing.T) {
	_, err := NewApp(Options{Screen: tcell.NewSimulationScreen("UTF-8")})
	assert.Error(t, err)
}

func TestNewAppRegistersPluginCommands(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()

	cmds := a.GetModeHandler().Commands()
	for _, name := range []string{"stats", "autosave", "theme", "themes", "resize"} {
		assert.Contains(t, cmds, name)
	}
	assert.ElementsMatch(t, []string{"regionstats", "autosave"}, a.pluginManager.Names())
}

func TestMouseDragDrawsRegion(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()

	drag(a, 1, 1, 5, 3)
	require.Equal(t, 1, a.Editor().RegionCount())
	r := a.Editor().Regions()[0]
	assert.NotEqual(t, r.StartX, r.EndX)
	assert.NotEqual(t, r.StartY, r.EndY)
	assert.True(t, a.Editor().Modified())
}

func TestStatusBarRowIgnoresPresses(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()

	drag(a, 1, 24, 5, 24)
	assert.Zero(t, a.Editor().RegionCount())
}

func TestSaveAndLoadThroughKeys(t *testing.T) {
	a, _, store := newTestApp(t)
	defer a.tuiManager.Close()

	drag(a, 1, 1, 5, 3)
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))

	saved, ok, err := store.Get(context.Background(), "regions")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, saved, `"startX"`)
	assert.False(t, a.Editor().Modified())

	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	assert.Zero(t, a.Editor().RegionCount())

	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl))
	assert.Equal(t, 1, a.Editor().RegionCount())
}

func TestStatusBarShowsRegionCount(t *testing.T) {
	a, screen, _ := newTestApp(t)
	defer a.tuiManager.Close()

	drag(a, 1, 1, 5, 3)
	a.statusBar.ResetTemporaryMessage()
	a.editor.Render()

	cells, w, _ := screen.GetContents()
	row := cells[24*w : 25*w]
	var got []rune
	for _, c := range row[:11] {
		got = append(got, c.Runes[0])
	}
	assert.Equal(t, "1 region(s)", string(got))
}

func TestSetThemeUpdatesStatusBar(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()

	require.NoError(t, a.SetTheme("paper light"))
	assert.Equal(t, "Paper Light", a.GetThemeManager().Current().Name)
	assert.Error(t, a.SetTheme("missing"))
}

func TestEditorAPIPluginConfig(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()

	v, ok := a.editorAPI.GetPluginConfigValue("autosave", "interval")
	require.True(t, ok)
	assert.Equal(t, config.DefaultAutosaveInterval, v)

	_, ok = a.editorAPI.GetPluginConfigValue("autosave", "bogus")
	assert.False(t, ok)
	_, ok = a.editorAPI.GetPluginConfigValue("nope", "enabled")
	assert.False(t, ok)
}

func TestRunQuitsOnForceQuit(t *testing.T) {
	a, screen, _ := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	ran := make(chan struct{})
	a.Schedule(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never ran")
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Ctrl+Q")
	}
}

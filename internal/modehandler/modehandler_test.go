package modehandler

import (
	"strings"
	"testing"

	"github.com/bethropolis/tilegrid/internal/clipboard"
	"github.com/bethropolis/tilegrid/internal/core"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/input"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/statusbar"
	"github.com/bethropolis/tilegrid/internal/storage"
	"github.com/bethropolis/tilegrid/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaleMapper maps cell (c, r) to canvas point (c*s, r*s).
type scaleMapper float64

func (s scaleMapper) ToCanvas(col, row int) types.Point {
	return types.Point{X: float64(col) * float64(s), Y: float64(row) * float64(s)}
}

type fixture struct {
	mh     *ModeHandler
	editor *core.Editor
	bar    *statusbar.StatusBar
	clip   *clipboard.Manager
	quit   chan struct{}
	events *event.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newScaledFixture(t, 10)
}

func newScaledFixture(t *testing.T, scale float64) *fixture {
	t.Helper()
	f := &fixture{
		editor: core.NewEditor(core.DefaultOptions()),
		bar:    statusbar.New(statusbar.DefaultConfig()),
		clip:   clipboard.NewManager(false),
		quit:   make(chan struct{}),
		events: event.NewManager(),
	}
	f.editor.SetEventManager(f.events)
	f.editor.SetStore(storage.NewMemoryStore())
	f.events.Subscribe(event.TypeNotification, func(e event.Event) bool {
		n := e.Data.(event.NotificationData)
		f.bar.Notify(n.Level, n.Message)
		return false
	})
	f.mh = New(Config{
		Editor:         f.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   f.events,
		StatusBar:      f.bar,
		Clipboard:      f.clip,
		Mapper:         scaleMapper(scale),
		QuitSignal:     f.quit,
	})
	f.mh.SetViewHeight(40)
	return f
}

func (f *fixture) key(k tcell.Key) bool {
	return f.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (f *fixture) ctrl(k tcell.Key) bool {
	return f.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func (f *fixture) runes(s string) {
	for _, r := range s {
		f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (f *fixture) mouse(col, row int, buttons tcell.ButtonMask) bool {
	return f.mh.HandleMouseEvent(tcell.NewEventMouse(col, row, buttons, tcell.ModNone))
}

func (f *fixture) command(cmd string) {
	f.runes(":" + cmd)
	f.key(tcell.KeyEnter)
}

func (f *fixture) message() string {
	msg, _ := f.bar.Message()
	return msg
}

func (f *fixture) drawBox(c0, r0, c1, r1 int) {
	f.mouse(c0, r0, tcell.Button1)
	f.mouse(c1, r1, tcell.Button1)
	f.mouse(c1, r1, tcell.ButtonNone)
}

func quitClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestMouseDragDrawsRegion(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 5, 4)

	require.Equal(t, 1, f.editor.RegionCount())
	assert.Equal(t, region.Region{StartX: 10, StartY: 10, EndX: 50, EndY: 40}, f.editor.Regions()[0])
	assert.False(t, f.mh.Dragging())
	assert.Equal(t, core.ModeIdle, f.editor.Mode())
}

func TestMouseEdgeDragResizes(t *testing.T) {
	f := newScaledFixture(t, 5)
	f.drawBox(2, 2, 20, 20) // 10,10 -> 100,100
	posBefore, _ := f.editor.History().Stats()

	// (15, 25) is inside and 5 units from the left edge.
	f.mouse(3, 5, tcell.Button1)
	assert.Equal(t, core.ModeResizing, f.editor.Mode())
	f.mouse(1, 5, tcell.Button1)
	f.mouse(1, 5, tcell.ButtonNone)

	require.Equal(t, 1, f.editor.RegionCount())
	assert.Equal(t, 5.0, f.editor.Regions()[0].StartX)
	posAfter, _ := f.editor.History().Stats()
	assert.Equal(t, posBefore, posAfter, "resizes are not recorded")
}

func TestHoverDoesNotDraw(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.mouse(3, 3, tcell.ButtonNone))
	assert.False(t, f.mouse(4, 4, tcell.ButtonNone))
	assert.Equal(t, core.ModeIdle, f.editor.Mode())
	assert.Equal(t, 0, f.editor.RegionCount())
}

func TestPressOnStatusBarIgnored(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.mouse(3, 40, tcell.Button1))
	assert.False(t, f.mh.Dragging())
	assert.Equal(t, core.ModeIdle, f.editor.Mode())
}

func TestWheelZooms(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.mouse(0, 0, tcell.WheelUp))
	assert.InDelta(t, 1.1, f.editor.Zoom(), 1e-9)
	f.mouse(0, 0, tcell.WheelDown)
	f.mouse(0, 0, tcell.WheelDown)
	assert.InDelta(t, 1/1.1, f.editor.Zoom(), 1e-9)
}

func TestCtrlShortcuts(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 5, 5)

	f.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, 0, f.editor.RegionCount())
	f.ctrl(tcell.KeyCtrlY)
	assert.Equal(t, 1, f.editor.RegionCount())

	f.ctrl(tcell.KeyCtrlS)
	assert.Equal(t, "Configuration saved successfully!", f.message())

	f.ctrl(tcell.KeyCtrlZ)
	f.ctrl(tcell.KeyCtrlL)
	assert.Equal(t, 1, f.editor.RegionCount())
	assert.Equal(t, "Configuration loaded successfully!", f.message())
}

func TestUndoAtStartReportsNothing(t *testing.T) {
	f := newFixture(t)
	f.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, "Nothing to undo", f.message())
	f.ctrl(tcell.KeyCtrlY)
	assert.Equal(t, "Nothing to redo", f.message())
}

func TestClearNeedsSecondPress(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 5, 5)

	f.runes("X")
	assert.Equal(t, 1, f.editor.RegionCount())
	assert.True(t, f.editor.ClearArmed())

	f.runes("p") // any other action disarms
	assert.False(t, f.editor.ClearArmed())

	f.runes("XX")
	assert.Equal(t, 0, f.editor.RegionCount())
	assert.Equal(t, "Regions cleared.", f.message())
}

func TestQuitConfirmsUnsavedChanges(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 5, 5)

	f.key(tcell.KeyEscape)
	assert.False(t, quitClosed(f.quit))
	assert.Contains(t, f.message(), "Unsaved changes")

	f.key(tcell.KeyEscape)
	assert.True(t, quitClosed(f.quit))

	// Further requests do not close the channel twice.
	assert.NotPanics(t, func() { f.ctrl(tcell.KeyCtrlQ) })
}

func TestQuitWithoutChangesIsImmediate(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyEscape)
	assert.True(t, quitClosed(f.quit))
}

func TestCommandModeTyping(t *testing.T) {
	f := newFixture(t)
	f.runes(":resiz")
	assert.Equal(t, ModeCommand, f.mh.GetCurrentMode())
	assert.Equal(t, "resiz", f.mh.GetCommandBuffer())

	f.key(tcell.KeyBackspace2)
	assert.Equal(t, "resi", f.mh.GetCommandBuffer())
	text, _ := f.bar.Text()
	assert.Equal(t, ":resi", text)

	f.key(tcell.KeyEscape)
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.False(t, quitClosed(f.quit), "Esc in command mode only cancels")
	text, _ = f.bar.Text()
	assert.NotEqual(t, ":resi", text)
}

func TestShortcutRunesAreTypedInCommandMode(t *testing.T) {
	f := newFixture(t)
	f.runes(":undo+[]")
	assert.Equal(t, "undo+[]", f.mh.GetCommandBuffer())
	assert.Equal(t, 1.0, f.editor.Zoom())
}

func TestResizeCommand(t *testing.T) {
	f := newFixture(t)
	f.command("resize 800 600")
	w, h := f.editor.CanvasSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, "Canvas resized to 800x600", f.message())

	f.command("resize abc 600")
	w, _ = f.editor.CanvasSize()
	assert.Equal(t, 800, w)
	assert.Contains(t, f.message(), "not a number")

	f.command("resize 0 10")
	assert.Contains(t, f.message(), "must be positive")
}

func TestRatioCommandAndKeys(t *testing.T) {
	f := newFixture(t)
	f.command("ratio 2.34")
	assert.InDelta(t, 2.3, f.editor.DivideRatio(), 1e-9)

	f.runes("]")
	assert.InDelta(t, 2.4, f.editor.DivideRatio(), 1e-9)
	f.runes("[[")
	assert.InDelta(t, 2.2, f.editor.DivideRatio(), 1e-9)

	f.command("ratio 11")
	assert.InDelta(t, 2.2, f.editor.DivideRatio(), 1e-9)

	f.command("ratio x")
	assert.Contains(t, f.message(), "is not a number")
}

func TestGenerateCopiesPrompt(t *testing.T) {
	f := newFixture(t)
	var generated []event.GeneratedData
	f.events.Subscribe(event.TypeGenerated, func(e event.Event) bool {
		generated = append(generated, e.Data.(event.GeneratedData))
		return false
	})

	f.runes("g")
	assert.Equal(t, "Information generated successfully!", f.message())
	got, err := f.clip.Paste()
	require.NoError(t, err)
	assert.Equal(t, core.PromptPlaceholder, got)
	require.Len(t, generated, 1)
	assert.Equal(t, core.TemplatePlaceholder, generated[0].Template)
}

func TestYankCopiesLayoutJSON(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 2, 2)
	f.command("yank")

	got, err := f.clip.Paste()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"startX":10,"startY":10,"endX":20,"endY":20}]`, got)
	assert.Equal(t, "Copied 1 region(s) as JSON", f.message())
}

func TestPasteRestoresYankedLayout(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 2, 2)
	f.command("yank")
	f.runes("XX")
	require.Zero(t, f.editor.RegionCount())

	f.command("paste")
	require.Equal(t, 1, f.editor.RegionCount())
	assert.Equal(t, region.Region{StartX: 10, StartY: 10, EndX: 20, EndY: 20}, f.editor.Regions()[0])
	assert.Equal(t, "Pasted 1 region(s).", f.message())

	f.ctrl(tcell.KeyCtrlZ)
	assert.Zero(t, f.editor.RegionCount())
}

func TestPasteWithEmptyClipboard(t *testing.T) {
	f := newFixture(t)
	f.command("paste")
	assert.Equal(t, "Error executing command 'paste': clipboard is empty", f.message())
}

func TestUnknownAndPluginCommands(t *testing.T) {
	f := newFixture(t)
	f.command("frobnicate")
	assert.Equal(t, "Unknown command: frobnicate", f.message())

	var gotArgs []string
	require.NoError(t, f.mh.RegisterCommand("echo", func(args []string) error {
		gotArgs = args
		return nil
	}))
	assert.Error(t, f.mh.RegisterCommand("echo", nil))
	assert.Error(t, f.mh.RegisterCommand("", nil))

	f.command("echo a b")
	assert.Equal(t, []string{"a", "b"}, gotArgs)
}

func TestHelpListsCommands(t *testing.T) {
	f := newFixture(t)
	f.command("help")
	msg := f.message()
	for _, name := range []string{"clear", "generate", "preview", "ratio", "resize", "save", "load", "undo", "redo"} {
		assert.Contains(t, strings.Fields(strings.TrimPrefix(msg, "Commands: ")), name)
	}

	f.key(tcell.KeyF1)
	assert.Equal(t, HelpText, f.message())
}

func TestPreviewToggle(t *testing.T) {
	f := newFixture(t)
	f.runes("p")
	assert.True(t, f.editor.PreviewMode())
	assert.Equal(t, "Preview on", f.message())
	f.command("preview")
	assert.False(t, f.editor.PreviewMode())
}

func TestWriteQuit(t *testing.T) {
	f := newFixture(t)
	f.drawBox(1, 1, 5, 5)
	f.command("wq")
	assert.True(t, quitClosed(f.quit))
	assert.False(t, f.editor.Modified())
}

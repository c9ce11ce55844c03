package app

import (
	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/statusbar"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// drawStatusBar runs after the canvas on every frame.
func (a *App) drawStatusBar(screen tcell.Screen, width, height int) {
	a.updateStatusBarContent()
	logger.DebugTagf("draw", "drawStatusBar: Screen Size (%d x %d), StatusBarHeight: %d",
		width, height, a.cfg.Editor.StatusBarHeight)
	a.statusBar.Draw(screen, width, height)
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	hist := a.editor.History()
	pos, total := hist.Stats()
	w, h := a.editor.CanvasSize()
	panX, panY := a.editor.Pan()
	a.statusBar.SetInfo(statusbar.Info{
		Regions:     a.editor.RegionCount(),
		HistoryPos:  pos,
		HistoryLen:  total,
		CanUndo:     hist.CanUndo(),
		CanRedo:     hist.CanRedo(),
		Width:       w,
		Height:      h,
		Zoom:        a.editor.Zoom(),
		PanX:        panX,
		PanY:        panY,
		DivideRatio: a.editor.DivideRatio(),
		Pointer:     a.editor.Mode().String(),
		Preview:     a.editor.PreviewMode(),
		Modified:    a.editor.Modified(),
	})
	if a.modeHandler != nil {
		a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())
	}
}

// statusBarConfig derives status bar styles from a theme.
func statusBarConfig(th *theme.Theme) statusbar.Config {
	cfg := statusbar.DefaultConfig()
	cfg.MessageTimeout = config.MessageTimeout
	if th == nil {
		return cfg
	}
	cfg.StyleDefault = th.GetStyle(theme.StyleStatusBar)
	cfg.StyleModified = th.GetStyle(theme.StyleStatusBarModified)
	cfg.StyleMessage = th.GetStyle(theme.StyleStatusBarMessage)
	cfg.StyleError = th.GetStyle(theme.StyleStatusBarError)
	cfg.StyleCommand = th.GetStyle(theme.StyleStatusBarCommand)
	return cfg
}

package app

import (
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/theme"
)

// subscribeEvents wires the app's reactions to editor events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeNotification, a.handleNotification)
	a.eventManager.Subscribe(event.TypeLayoutSaved, a.handleLayoutSaved)
	a.eventManager.Subscribe(event.TypeLayoutLoaded, a.handleLayoutLoaded)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
	a.eventManager.Subscribe(event.TypeCanvasResized, a.handleViewStateChanged)
	a.eventManager.Subscribe(event.TypeViewChanged, a.handleViewStateChanged)
}

// handleNotification shows editor messages in the status bar.
func (a *App) handleNotification(e event.Event) bool {
	data, ok := e.Data.(event.NotificationData)
	if !ok {
		logger.Warnf("App: Received Notification event with unexpected data type: %T", e.Data)
		return false
	}
	a.statusBar.Notify(data.Level, data.Message)
	a.requestRedraw()
	return false // Not consumed
}

func (a *App) handleLayoutSaved(e event.Event) bool {
	if data, ok := e.Data.(event.LayoutSavedData); ok {
		logger.Debugf("App: %d region(s) saved under '%s'", data.Count, data.Key)
	}
	return false
}

func (a *App) handleLayoutLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.LayoutLoadedData); ok {
		logger.Debugf("App: %d region(s) loaded from '%s'", data.Count, data.Key)
	}
	a.requestRedraw()
	return false
}

// handleThemeChanged restyles the screen and status bar.
func (a *App) handleThemeChanged(e event.Event) bool {
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusBarConfig(current))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.requestRedraw()
	return false
}

// handleViewStateChanged refreshes the status line for zoom, pan and size.
func (a *App) handleViewStateChanged(e event.Event) bool {
	a.requestRedraw()
	return false
}

// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bethropolis/tilegrid/internal/clipboard"
	"github.com/bethropolis/tilegrid/internal/commands"
	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/core"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/input"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/modehandler"
	"github.com/bethropolis/tilegrid/internal/plugin"
	"github.com/bethropolis/tilegrid/internal/statusbar"
	"github.com/bethropolis/tilegrid/internal/storage"
	"github.com/bethropolis/tilegrid/internal/theme"
	"github.com/bethropolis/tilegrid/internal/tui"
	"github.com/bethropolis/tilegrid/internal/utils"
	"github.com/gdamore/tcell/v2"
)

// resizeSettle coalesces bursts of terminal resize events into one redraw.
const resizeSettle = 30 * time.Millisecond

// Options configures NewApp.
type Options struct {
	Config    *config.Config
	Store     storage.KeyValueStore // required
	Screen    tcell.Screen          // nil opens the real terminal
	ThemesDir string                // "" skips loading TOML themes
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	renderer      *tui.CanvasRenderer
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	clipboard     *clipboard.Manager
	store         storage.KeyValueStore
	editorAPI     plugin.EditorAPI
	resizeTimer   utils.Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	// Channels managed by the App
	quit          chan struct{}
	events        chan tcell.Event
	tasks         chan func()
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.NewDefaultConfig()
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("app: %w", core.ErrNoStore)
	}
	cfg := opts.Config

	// --- Theme first, the screen's default style depends on it ---
	themeManager := theme.NewManager(opts.ThemesDir)
	if cfg.Editor.Theme != "" {
		if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
			logger.Warnf("App: %v, keeping '%s'", err, themeManager.Current().Name)
		}
	}
	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)

	// --- Create Core Components ---
	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, defStyle)
	} else {
		tuiManager, err = tui.New(defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        core.NewEditor(core.OptionsFromConfig(cfg)),
		statusBar:     statusbar.New(statusBarConfig(themeManager.Current())),
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		clipboard:     clipboard.NewManager(cfg.Editor.SystemClipboard),
		store:         opts.Store,
		ctx:           ctx,
		cancel:        cancel,
		quit:          make(chan struct{}),
		events:        make(chan tcell.Event, 64),
		tasks:         make(chan func(), 16),
		redrawRequest: make(chan struct{}, 1),
	}

	cells := tui.NewCellMapper(cfg.Canvas.CellWidth, cfg.Canvas.CellHeight)
	a.renderer = tui.NewCanvasRenderer(tuiManager, cells, themeManager.Current, cfg.Editor.StatusBarHeight, a.drawStatusBar)

	a.editor.SetEventManager(a.eventManager)
	a.editor.SetStore(opts.Store)
	a.editor.SetRenderer(a.renderer)

	// --- Create Mode Handler ---
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.eventManager,
		StatusBar:      a.statusBar,
		Clipboard:      a.clipboard,
		Mapper:         cells,
		Context:        ctx,
		QuitSignal:     a.quit,
	})
	a.updateViewHeight()

	// --- Create Editor API adapter ---
	a.editorAPI = newEditorAPI(a)

	// --- Subscribe Core Components (App level wiring) ---
	a.subscribeEvents()

	// --- Built-in commands and plugins (triggers RegisterCommand via API) ---
	commands.RegisterAppCommands(a.editorAPI)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("App: some plugins failed to initialize: %v", err)
	}

	return a, nil
}

// Run starts the application's main loop. It returns once quit is requested
// or the terminal goes away.
func (a *App) Run() error {
	defer a.shutdown()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("tilegrid - drag to draw | Ctrl+S save | ? help | Esc quit")
	a.requestRedraw()

	// --- Main Loop: the only goroutine touching the editor ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.Modified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-a.events:
			if !ok {
				logger.Infof("App: terminal event source closed.")
				return nil
			}
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case task := <-a.tasks:
			task()
			a.requestRedraw()
		case <-a.redrawRequest:
			a.editor.Render()
		}
	}
}

// pollEvents reads terminal events and hands them to the main loop.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			close(a.events)
			return
		}
		select {
		case a.events <- ev:
		case <-a.ctx.Done():
			return
		}
	}
}

// handleEvent delegates input to the ModeHandler. Runs on the main loop.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		a.updateViewHeight()
		a.resizeTimer.Debounce(resizeSettle, func() { a.Schedule(a.requestRedraw) })
		return false
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(eventData)
	case *tcell.EventMouse:
		return a.modeHandler.HandleMouseEvent(eventData)
	}
	return false
}

// Schedule runs task on the main loop. Safe from any goroutine; dropped
// once the app is shutting down.
func (a *App) Schedule(task func()) {
	select {
	case a.tasks <- task:
	case <-a.ctx.Done():
		logger.Debugf("App: dropping task scheduled during shutdown")
	}
}

// shutdown stops background work before the terminal is released.
func (a *App) shutdown() {
	a.cancel()
	a.resizeTimer.Stop()
	a.pluginManager.ShutdownPlugins()
	a.tuiManager.Close()
	if err := a.store.Close(); err != nil {
		logger.Warnf("App: closing store: %v", err)
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

func (a *App) updateViewHeight() {
	_, h := a.tuiManager.Size()
	a.modeHandler.SetViewHeight(h - a.cfg.Editor.StatusBarHeight)
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// Editor exposes the session, mainly for tests.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// GetThemeManager returns the app's theme manager.
func (a *App) GetThemeManager() *theme.Manager {
	return a.themeManager
}

// SetTheme activates a theme by name and redraws with it.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.themeManager.Current().Name})
	return nil
}

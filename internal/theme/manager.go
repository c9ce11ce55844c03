// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// DefaultThemeName is active when nothing else is requested.
const DefaultThemeName = "Blueprint Dark"

// failsafe is used only if no theme could be registered at all.
var failsafe = &Theme{
	Name:   "Failsafe",
	Styles: map[string]tcell.Style{StyleDefault: tcell.StyleDefault},
}

// Manager holds the known themes and the active one. Lookups are
// case-insensitive.
type Manager struct {
	mu        sync.RWMutex
	themes    map[string]*Theme
	active    *Theme
	themesDir string
	loadErr   error
}

// DefaultThemesDir returns <user config dir>/<appName>/themes, or "".
func DefaultThemesDir(appName string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("No user config dir (%v); custom themes disabled", err)
		return ""
	}
	return filepath.Join(dir, appName, "themes")
}

// NewManager registers the built-in themes plus every *.toml file in
// themesDir. An empty themesDir skips the scan.
func NewManager(themesDir string) *Manager {
	m := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	m.register(&BlueprintDark)
	m.register(&PaperLight)

	if themesDir != "" {
		if m.loadErr = m.LoadThemesFromDir(); m.loadErr != nil {
			logger.Errorf("Themes in '%s': %v", themesDir, m.loadErr)
		}
	}

	m.active = m.themes[key(DefaultThemeName)]
	if m.active == nil {
		m.active = failsafe
	}
	logger.Infof("Active theme: %s", m.active.Name)
	return m
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *Manager) register(t *Theme) {
	if prev, ok := m.themes[key(t.Name)]; ok {
		logger.Warnf("Theme '%s' replaces '%s'", t.Name, prev.Name)
	}
	m.themes[key(t.Name)] = t
}

// LoadError is the error from the initial directory scan, if any.
func (m *Manager) LoadError() error {
	return m.loadErr
}

// LoadThemesFromDir registers the theme files in the themes directory,
// creating the directory when it does not exist yet. Unreadable files are
// logged and skipped.
func (m *Manager) LoadThemesFromDir() error {
	if m.themesDir == "" {
		return fmt.Errorf("theme directory not set")
	}
	entries, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(m.themesDir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("read theme directory: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.themesDir, entry.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Skipping theme file: %v", err)
			continue
		}
		m.register(t)
	}
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetTheme activates the named theme.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[key(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.active = t
	logger.Infof("Active theme: %s", t.Name)
	return nil
}

// ListThemes returns the theme names in sorted order.
func (m *Manager) ListThemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

// GetTheme looks a theme up by name.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[key(name)]
	return t, ok
}

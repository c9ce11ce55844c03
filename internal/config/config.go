// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/storage"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config  `toml:"logger"` // Embed logger config under [logger] table
	Canvas  CanvasConfig   `toml:"canvas"`
	Editor  EditorConfig   `toml:"editor"`
	Storage storage.Config `toml:"storage"`
	Plugins PluginsConfig  `toml:"plugins"`
}

// CanvasConfig describes the drawing surface.
type CanvasConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	GridSize   int `toml:"grid_size"`
	CellWidth  int `toml:"cell_width"`  // canvas units per terminal column
	CellHeight int `toml:"cell_height"` // canvas units per terminal row
}

// EditorConfig holds interaction settings.
type EditorConfig struct {
	ResizeThreshold float64 `toml:"resize_threshold"`
	ZoomFactor      float64 `toml:"zoom_factor"`
	MaxHistory      int     `toml:"max_history"`
	DivideRatio     float64 `toml:"divide_ratio"`
	SystemClipboard bool    `toml:"system_clipboard"`
	StatusBarHeight int     `toml:"status_bar_height"`
	Theme           string  `toml:"theme"`
}

// PluginsConfig groups per-plugin settings under [plugins].
type PluginsConfig struct {
	Autosave AutosaveConfig `toml:"autosave"`
}

// AutosaveConfig controls the autosave plugin.
type AutosaveConfig struct {
	Enabled  bool          `toml:"enabled"`
	Interval time.Duration `toml:"interval"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Resolved to the config dir in main
		},
		Canvas: CanvasConfig{
			Width:      DefaultCanvasWidth,
			Height:     DefaultCanvasHeight,
			GridSize:   DefaultGridSize,
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
		Editor: EditorConfig{
			ResizeThreshold: DefaultResizeThreshold,
			ZoomFactor:      DefaultZoomFactor,
			MaxHistory:      DefaultMaxHistory,
			DivideRatio:     DefaultDivideRatio,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Storage: storage.NewConfig(),
		Plugins: PluginsConfig{
			Autosave: AutosaveConfig{
				Enabled:  false,
				Interval: DefaultAutosaveInterval,
			},
		},
	}
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if verbose {
		logger.Debugf("Attempting to load configuration from: %s", filePath)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Canvas.Width <= 0 {
		c.Canvas.Width = defaults.Canvas.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = defaults.Canvas.Height
	}
	if c.Canvas.GridSize <= 0 {
		c.Canvas.GridSize = defaults.Canvas.GridSize
	}
	if c.Canvas.CellWidth <= 0 {
		c.Canvas.CellWidth = defaults.Canvas.CellWidth
	}
	if c.Canvas.CellHeight <= 0 {
		c.Canvas.CellHeight = defaults.Canvas.CellHeight
	}

	if c.Editor.ResizeThreshold <= 0 {
		c.Editor.ResizeThreshold = defaults.Editor.ResizeThreshold
	}
	// A factor of 1 or less would make zoom-in shrink.
	if c.Editor.ZoomFactor <= 1 {
		c.Editor.ZoomFactor = defaults.Editor.ZoomFactor
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.DivideRatio < MinDivideRatio || c.Editor.DivideRatio > MaxDivideRatio {
		c.Editor.DivideRatio = defaults.Editor.DivideRatio
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}

	if c.Plugins.Autosave.Interval <= 0 {
		c.Plugins.Autosave.Interval = defaults.Plugins.Autosave.Interval
	}
}

// DefaultConfigPath returns ~/.config/tilegrid/config.toml, or "" if the
// user config dir is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// Load builds a config from defaults, the file at configFilePath (or the
// default path when empty) and any flags that were set.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	// Logger isn't initialized yet during the initial load
	verbose := false

	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(cfg, effectivePath, verbose)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}

	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and stores the result for Get.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

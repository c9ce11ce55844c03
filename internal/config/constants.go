package config

import "time"

// Base application details
const AppName = "tilegrid"
const ConfigDirName = "tilegrid"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tilegrid.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Canvas defaults, in canvas units.
const (
	DefaultCanvasWidth  = 512
	DefaultCanvasHeight = 512
	DefaultGridSize     = 32

	// Canvas units covered by one terminal cell.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Interaction defaults
const (
	DefaultResizeThreshold = 10.0
	DefaultZoomFactor      = 1.1
	DefaultMaxHistory      = 100
	DefaultDivideRatio     = 1.0
	SystemClipboard        = true
)

// Divide ratio bounds and step.
const (
	MinDivideRatio  = 0.1
	MaxDivideRatio  = 10.0
	DivideRatioStep = 0.1
)

const DefaultAutosaveInterval = 30 * time.Second

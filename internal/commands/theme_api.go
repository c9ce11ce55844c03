package commands

import "github.com/bethropolis/tilegrid/internal/theme"

// ThemeAPI is the part of the editor API the theme commands need.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

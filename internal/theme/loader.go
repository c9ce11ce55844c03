// internal/theme/loader.go
package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleDef is one [styles.<Name>] table. Unset fields inherit from the
// theme's Default style.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
	Dim       *bool   `toml:"dim"`
}

// themeFile is the layout of a theme .toml file.
type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadThemeFromFile reads a theme file. A missing name falls back to the
// file's base name; styles that fail to parse are skipped with a warning.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var file themeFile
	meta, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys %v", filePath, undecoded)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	th := &Theme{
		Name:   file.Name,
		IsDark: file.IsDark,
		Styles: make(map[string]tcell.Style, len(file.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := file.Styles[StyleDefault]; ok {
		if base, err = def.apply(tcell.StyleDefault); err != nil {
			logger.Warnf("Theme '%s': bad Default style, using terminal default: %v", th.Name, err)
			base = tcell.StyleDefault
		}
	}
	th.Styles[StyleDefault] = base

	for name, def := range file.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := def.apply(base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", th.Name, name, err)
			continue
		}
		th.Styles[name] = style
	}

	logger.Debugf("Loaded theme '%s' (%d styles) from '%s'", th.Name, len(th.Styles), filePath)
	return th, nil
}

// apply layers the definition over style.
func (d styleDef) apply(style tcell.Style) (tcell.Style, error) {
	if d.Fg != nil {
		c, err := parseColor(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := parseColor(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}

	attrs := []struct {
		set *bool
		fn  func(tcell.Style, bool) tcell.Style
	}{
		{d.Bold, tcell.Style.Bold},
		{d.Italic, tcell.Style.Italic},
		{d.Underline, func(s tcell.Style, on bool) tcell.Style { return s.Underline(on) }},
		{d.Reverse, tcell.Style.Reverse},
		{d.Dim, tcell.Style.Dim},
	}
	for _, a := range attrs {
		if a.set != nil {
			style = a.fn(style, *a.set)
		}
	}
	return style, nil
}

// parseColor accepts "#rrggbb", "reset", "default" and tcell color names.
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("'%s' is not #rrggbb", s)
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("unknown color '%s'", s)
	}
	return c, nil
}

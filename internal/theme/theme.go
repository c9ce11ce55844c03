// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the canvas renderer and the status bar.
const (
	StyleDefault           = "Default"
	StyleCanvas            = "Canvas"
	StyleGrid              = "Grid"
	StyleRegion            = "Region"
	StyleRegionAlt         = "Region.alt" // every second region, so neighbours stay distinguishable
	StyleRegionLabel       = "RegionLabel"
	StyleRegionSelected    = "Region.selected"
	StyleResizeEdge        = "ResizeEdge"
	StylePreview           = "Preview"
	StyleOutside           = "Outside" // terminal area beyond the canvas
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarError    = "StatusBarError"
	StyleStatusBarCommand  = "StatusBarCommand"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then its base (part before the first dot), then
// "Default", then tcell's default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in themes ---

var (
	BlueprintDark Theme
	PaperLight    Theme
)

func init() {
	// --- Palette for Blueprint Dark ---
	bpBackground := tcell.NewHexColor(0x1d2433)
	bpPanel := tcell.NewHexColor(0x2a2f38)
	bpForeground := tcell.NewHexColor(0xc5cdd9)
	bpGrid := tcell.NewHexColor(0x3b4252)
	bpBlue := tcell.NewHexColor(0x0080ff) // the classic region fill
	bpCyan := tcell.NewHexColor(0x56b6c2)
	bpYellow := tcell.NewHexColor(0xe5c07b)
	bpRed := tcell.NewHexColor(0xe06c75)
	bpGreen := tcell.NewHexColor(0x98c379)

	base := tcell.StyleDefault.Background(bpBackground).Foreground(bpForeground)

	BlueprintDark = Theme{
		Name:   "Blueprint Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleCanvas:            base,
			StyleGrid:              base.Foreground(bpGrid),
			StyleRegion:            tcell.StyleDefault.Background(bpBlue).Foreground(tcell.ColorBlack),
			StyleRegionAlt:         tcell.StyleDefault.Background(bpCyan).Foreground(tcell.ColorBlack),
			StyleRegionLabel:       tcell.StyleDefault.Background(bpBlue).Foreground(tcell.ColorWhite).Bold(true),
			StyleRegionSelected:    tcell.StyleDefault.Background(bpYellow).Foreground(tcell.ColorBlack),
			StyleResizeEdge:        tcell.StyleDefault.Background(bpRed).Foreground(tcell.ColorWhite),
			StylePreview:           base.Foreground(bpBlue).Reverse(true),
			StyleOutside:           tcell.StyleDefault.Background(tcell.ColorReset),
			StyleStatusBar:         tcell.StyleDefault.Background(bpPanel).Foreground(bpForeground),
			StyleStatusBarModified: tcell.StyleDefault.Background(bpPanel).Foreground(bpYellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bpPanel).Foreground(bpForeground).Bold(true),
			StyleStatusBarError:    tcell.StyleDefault.Background(bpRed).Foreground(tcell.ColorWhite).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(bpPanel).Foreground(bpGreen).Bold(true),
		},
	}

	// --- Palette for Paper Light, close to the browser look ---
	plBackground := tcell.NewHexColor(0xffffff)
	plGrid := tcell.NewHexColor(0xe0e0e0)
	plText := tcell.ColorBlack
	plFill := tcell.NewHexColor(0x80bfff)
	plFillAlt := tcell.NewHexColor(0xa0d8e0)
	plPanel := tcell.NewHexColor(0xeeeeee)

	paper := tcell.StyleDefault.Background(plBackground).Foreground(plText)

	PaperLight = Theme{
		Name:   "Paper Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:          paper,
			StyleGrid:             paper.Foreground(plGrid),
			StyleRegion:           tcell.StyleDefault.Background(plFill).Foreground(plText),
			StyleRegionAlt:        tcell.StyleDefault.Background(plFillAlt).Foreground(plText),
			StyleRegionLabel:      tcell.StyleDefault.Background(plFill).Foreground(plText).Bold(true),
			StyleRegionSelected:   tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(plText),
			StyleResizeEdge:       tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite),
			StylePreview:          paper.Foreground(plFill).Reverse(true),
			StyleOutside:          tcell.StyleDefault.Background(tcell.ColorReset),
			StyleStatusBar:        tcell.StyleDefault.Background(plPanel).Foreground(plText),
			StyleStatusBarMessage: tcell.StyleDefault.Background(plPanel).Foreground(plText).Bold(true),
			StyleStatusBarError:   tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite).Bold(true),
		},
	}
}

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallbacks(t *testing.T) {
	th := &Theme{
		Name: "t",
		Styles: map[string]tcell.Style{
			StyleDefault: tcell.StyleDefault.Foreground(tcell.ColorWhite),
			StyleRegion:  tcell.StyleDefault.Background(tcell.ColorBlue),
		},
	}
	assert.Equal(t, th.Styles[StyleRegion], th.GetStyle(StyleRegionSelected), "dotted name falls back to base")
	assert.Equal(t, th.Styles[StyleDefault], th.GetStyle(StyleGrid))

	empty := &Theme{Name: "empty"}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle(StyleGrid))
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Mono"
is_dark = true

[styles.Default]
fg = "#ffffff"
bg = "black"

[styles.Region]
bg = "#0080ff"
bold = true

[styles.Grid]
fg = "not-a-color"
`), 0o600))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mono", th.Name)
	assert.True(t, th.IsDark)

	fg, bg, _ := th.Styles[StyleDefault].Decompose()
	assert.Equal(t, tcell.NewHexColor(0xffffff), fg)
	assert.Equal(t, tcell.ColorBlack, bg)

	fg, bg, attrs := th.Styles[StyleRegion].Decompose()
	assert.Equal(t, tcell.NewHexColor(0xffffff), fg, "inherits Default foreground")
	assert.Equal(t, tcell.NewHexColor(0x0080ff), bg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, ok := th.Styles[StyleGrid]
	assert.False(t, ok, "bad style is skipped")
}

func TestLoadThemeNameFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.toml")
	require.NoError(t, os.WriteFile(path, []byte("[styles.Default]\nfg = \"reset\"\n"), 0o600))
	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sunset", th.Name)
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono.toml"), []byte("name = \"Mono\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	m := NewManager(dir)
	require.NoError(t, m.LoadError())
	assert.Equal(t, DefaultThemeName, m.Current().Name)
	assert.Equal(t, []string{"Blueprint Dark", "Mono", "Paper Light"}, m.ListThemes())

	require.NoError(t, m.SetTheme("paper light"))
	assert.Equal(t, "Paper Light", m.Current().Name)

	assert.Error(t, m.SetTheme("nope"))
	assert.Equal(t, "Paper Light", m.Current().Name)
}

func TestManagerCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	m := NewManager(dir)
	require.NoError(t, m.LoadError())
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetStyleFallback(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorRed)
	bar := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		StyleDefault:   def,
		StyleStatusBar: bar,
	}}

	assert.Equal(t, bar, th.GetStyle(StyleStatusBar))
	assert.Equal(t, bar, th.GetStyle("StatusBar.extra"), "base name before the dot")
	assert.Equal(t, def, th.GetStyle(StyleTreeFolder))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle(StyleTreeItem))
}

func TestBuiltinThemesDefineUIStyles(t *testing.T) {
	for _, th := range []Theme{DevComfortDark, DevComfortLight} {
		for _, name := range uiStyles {
			_, ok := th.Styles[name]
			assert.True(t, ok, "%s is missing %s", th.Name, name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "paper.toml", `
is_dark = false

[styles.Default]
fg = "#112233"
bg = "reset"

[styles.TreeFolder]
bold = true

[styles.StatusBar]
fg = "steelblue"
reverse = true

[styles.Prompt]
fg = "#12"
`)

	th, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "paper", th.Name, "name falls back to the file name")
	assert.False(t, th.IsDark)

	fg, bg, _ := th.GetStyle(StyleDefault).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x112233), fg)
	assert.Equal(t, tcell.ColorReset, bg)

	fg, _, attrs := th.GetStyle(StyleTreeFolder).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x112233), fg, "inherits the Default foreground")
	assert.NotZero(t, attrs&tcell.AttrBold)

	fg, _, attrs = th.GetStyle(StyleStatusBar).Decompose()
	assert.Equal(t, tcell.ColorSteelBlue, fg)
	assert.NotZero(t, attrs&tcell.AttrReverse)

	_, ok := th.Styles[StylePrompt]
	assert.False(t, ok, "a style with a bad color is skipped")
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeTheme(t, t.TempDir(), "broken.toml", "name = ")
	_, err = LoadFile(path)
	assert.Error(t, err)

	path = writeTheme(t, t.TempDir(), "orphan.toml", `extends = "Solarized"`)
	_, err = LoadFile(path)
	assert.EqualError(t, err, "theme 'orphan' extends unknown built-in theme 'Solarized'")

	path = writeTheme(t, t.TempDir(), "baddefault.toml", "[styles.Default]\nfg = \"#zz\"\n")
	_, err = LoadFile(path)
	assert.Error(t, err, "a broken Default style fails the whole theme")
}

func TestLoadFileExtendsBuiltin(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "dusk.toml", `
name = "Dusk"
is_dark = true
extends = "devcomfort dark"

[styles.TreeFolder]
fg = "orange"

[styles.Gutter]
fg = "gray"
`)

	th, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dusk", th.Name)
	assert.Equal(t, DevComfortDark.Styles[StyleStatusBar], th.GetStyle(StyleStatusBar), "untouched styles come from the built-in")

	fg, _, attrs := th.GetStyle(StyleTreeFolder).Decompose()
	assert.Equal(t, tcell.ColorOrange, fg)
	assert.NotZero(t, attrs&tcell.AttrBold, "bold is kept from the built-in folder style")

	_, ok := th.Styles["Gutter"]
	assert.True(t, ok, "unknown names still load")
	fg, _, _ = DevComfortDark.Styles[StyleTreeFolder].Decompose()
	assert.NotEqual(t, tcell.ColorOrange, fg, "the built-in is not modified")
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewHexColor(0xff0000), false},
		{" reset ", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"Red", tcell.ColorRed, false},
		{"#ff00", tcell.ColorDefault, true},
		{"#gggggg", tcell.ColorDefault, true},
		{"notacolor", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColorString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "night.toml", "name = \"Night Owl\"\nis_dark = true\n")
	writeTheme(t, dir, "notes.txt", "ignored")

	m := NewManager(dir, "night owl")
	assert.Equal(t, "Night Owl", m.Current().Name)
	assert.Equal(t, []string{"DevComfort Dark", "DevComfort Light", "Night Owl"}, m.ListThemes())

	assert.Error(t, m.SetTheme("nope"))
	assert.Equal(t, "Night Owl", m.Current().Name, "a failed switch keeps the active theme")

	assert.Equal(t, "DevComfort Dark", m.Next().Name, "wraps around")
	assert.Equal(t, "DevComfort Light", m.Next().Name)

	_, ok := m.GetTheme("DEVCOMFORT LIGHT")
	assert.True(t, ok)
}

func TestManagerDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing"), "unknown")
	assert.Equal(t, DevComfortDark.Name, m.Current().Name)

	m = NewManager("", "")
	assert.Len(t, m.ListThemes(), 2)
}

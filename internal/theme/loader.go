// internal/theme/loader.go
package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleSpec is one entry of a theme file's [styles] table. Nil fields are
// inherited.
type styleSpec struct {
	Fg      *string `toml:"fg"`
	Bg      *string `toml:"bg"`
	Bold    *bool   `toml:"bold"`
	Reverse *bool   `toml:"reverse"`
}

// themeFile is a user theme:
//
//	name    = "Paper"
//	is_dark = false
//	extends = "DevComfort Light"   # optional built-in to start from
//
//	[styles.TreeFolder]
//	fg = "#005f87"
//	bold = true
type themeFile struct {
	Name    string               `toml:"name"`
	IsDark  bool                 `toml:"is_dark"`
	Extends string               `toml:"extends"`
	Styles  map[string]styleSpec `toml:"styles"`
}

// uiStyles are the style names the tree, text pane and status bar draw with.
var uiStyles = []string{
	StyleDefault, StyleTreeItem, StyleTreeFolder, StyleTreeSelected, StyleTreeOpen,
	StyleSeparator, StyleStatusBar, StyleStatusBarModified, StyleStatusBarMessage,
	StyleStatusBarDebug, StylePrompt,
}

// LoadFile reads a user theme. A style the file leaves out comes from the
// extended built-in theme, or else from the file's own Default style. Entries
// with a bad color are skipped with a warning.
func LoadFile(path string) (*Theme, error) {
	var file themeFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme '%s': %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Ignoring unknown keys %v", path, undecoded)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	th := &Theme{Name: file.Name, IsDark: file.IsDark, Styles: make(map[string]tcell.Style)}
	if file.Extends != "" {
		parent, ok := builtinTheme(file.Extends)
		if !ok {
			return nil, fmt.Errorf("theme '%s' extends unknown built-in theme '%s'", th.Name, file.Extends)
		}
		for name, style := range parent.Styles {
			th.Styles[name] = style
		}
	}

	base, ok := th.Styles[StyleDefault]
	if !ok {
		base = tcell.StyleDefault
	}
	if spec, ok := file.Styles[StyleDefault]; ok {
		style, err := spec.apply(base)
		if err != nil {
			return nil, fmt.Errorf("theme '%s': Default style: %w", th.Name, err)
		}
		base = style
	}
	th.Styles[StyleDefault] = base

	for name, spec := range file.Styles {
		if name == StyleDefault {
			continue
		}
		if !isUIStyle(name) {
			logger.Warnf("Theme '%s': Unknown style '%s'", th.Name, name)
		}
		from, ok := th.Styles[name]
		if !ok {
			from = base
		}
		style, err := spec.apply(from)
		if err != nil {
			logger.Warnf("Theme '%s': Skipping style '%s': %v", th.Name, name, err)
			continue
		}
		th.Styles[name] = style
	}

	logger.DebugTagf("theme", "Loaded theme '%s' from '%s' (%d styles)", th.Name, path, len(th.Styles))
	return th, nil
}

// apply sets the non-nil fields of s on top of style.
func (s styleSpec) apply(style tcell.Style) (tcell.Style, error) {
	if s.Fg != nil {
		c, err := parseColorString(*s.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if s.Bg != nil {
		c, err := parseColorString(*s.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	if s.Bold != nil {
		style = style.Bold(*s.Bold)
	}
	if s.Reverse != nil {
		style = style.Reverse(*s.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, "reset", "default" and the color names
// tcell knows ("red", "steelblue").
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "default":
		return tcell.ColorDefault, nil
	case "reset":
		return tcell.ColorReset, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("'%s' is not #RRGGBB", s)
	}
	// GetColor falls back to ColorDefault for anything it cannot read.
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}

func builtinTheme(name string) (*Theme, bool) {
	for _, t := range []*Theme{&DevComfortDark, &DevComfortLight} {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

func isUIStyle(name string) bool {
	for _, s := range uiStyles {
		if s == name {
			return true
		}
	}
	return false
}

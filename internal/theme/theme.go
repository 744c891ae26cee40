// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the drawing code.
const (
	StyleDefault           = "Default"
	StyleTreeItem          = "TreeItem"
	StyleTreeFolder        = "TreeFolder"
	StyleTreeSelected      = "TreeSelected"
	StyleTreeOpen          = "TreeOpen" // The note loaded in the text pane
	StyleSeparator         = "Separator"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarDebug    = "StatusBarDebug" // Gap and history diagnostics
	StylePrompt            = "Prompt"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then the part before the first dot, then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in themes ---

var (
	DevComfortDark  Theme
	DevComfortLight Theme
)

func init() {
	// --- Palette for DevComfort Dark ---
	dcBackground := tcell.NewHexColor(0x2a2f38) // Status bar and tree selection
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)

	// Terminal background, DevComfort foreground
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	barStyle := tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           baseStyle,
			StyleTreeItem:          baseStyle,
			StyleTreeFolder:        baseStyle.Foreground(dcBlue).Bold(true),
			StyleTreeSelected:      baseStyle.Reverse(true),
			StyleTreeOpen:          baseStyle.Foreground(dcGreen),
			StyleSeparator:         baseStyle.Foreground(dcComment),
			StyleStatusBar:         barStyle,
			StyleStatusBarModified: barStyle.Foreground(dcYellow),
			StyleStatusBarMessage:  barStyle.Bold(true),
			StyleStatusBarDebug:    barStyle.Foreground(dcComment),
			StylePrompt:            barStyle.Foreground(dcCyan).Bold(true),
		},
	}

	// --- Palette for DevComfort Light ---
	lcBackground := tcell.NewHexColor(0xe5e9f0)
	lcForeground := tcell.NewHexColor(0x383a42)
	lcMuted := tcell.NewHexColor(0xa0a1a7)
	lcOrange := tcell.NewHexColor(0xc18401)
	lcGreen := tcell.NewHexColor(0x50a14f)
	lcBlue := tcell.NewHexColor(0x4078f2)

	lightBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lcForeground)
	lightBar := tcell.StyleDefault.Background(lcBackground).Foreground(lcForeground)

	DevComfortLight = Theme{
		Name:   "DevComfort Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:           lightBase,
			StyleTreeItem:          lightBase,
			StyleTreeFolder:        lightBase.Foreground(lcBlue).Bold(true),
			StyleTreeSelected:      lightBase.Reverse(true),
			StyleTreeOpen:          lightBase.Foreground(lcGreen),
			StyleSeparator:         lightBase.Foreground(lcMuted),
			StyleStatusBar:         lightBar,
			StyleStatusBarModified: lightBar.Foreground(lcOrange),
			StyleStatusBarMessage:  lightBar.Bold(true),
			StyleStatusBarDebug:    lightBar.Foreground(lcMuted),
			StylePrompt:            lightBar.Foreground(lcBlue).Bold(true),
		},
	}
}

package commands

import "github.com/bethropolis/jotter/internal/theme"

// ThemeAPI is the part of the app the theme commands drive.
type ThemeAPI interface {
	SetTheme(name string) error
	NextTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

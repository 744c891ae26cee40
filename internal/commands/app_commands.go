package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/plugin"
)

// Built-in command names.
const (
	CommandTheme         = "theme"
	CommandThemes        = "themes"
	CommandExport        = "export"
	CommandExportProject = "export-project"
	// CommandWordCount is provided by the wordcount plugin; key bindings use it.
	CommandWordCount = "wordcount"
)

// RegisterAppCommands registers the commands the app itself provides.
func RegisterAppCommands(api plugin.EditorAPI, themeAPI ThemeAPI, noteAPI NoteAPI) {
	RegisterThemeCommands(api, themeAPI)
	RegisterExportCommands(api, noteAPI)
}

// RegisterExportCommands registers "export <path>" (write the open note's
// text to a file) and "export-project <path>" (write the whole project as one
// .json or .yaml document). The path is the arguments joined by spaces.
func RegisterExportCommands(api plugin.EditorAPI, noteAPI NoteAPI) {
	exportWith := func(name, what string, export func(string) (string, error)) plugin.CommandFunc {
		return func(args []string) error {
			path := strings.TrimSpace(strings.Join(args, " "))
			if path == "" {
				return fmt.Errorf("usage: %s <path>", name)
			}
			written, err := export(path)
			if err != nil {
				return err
			}
			noteAPI.SetStatusMessage("Exported %s to %s", what, written)
			return nil
		}
	}

	for _, c := range []struct {
		name string
		fn   plugin.CommandFunc
	}{
		{CommandExport, exportWith(CommandExport, "note", noteAPI.ExportNote)},
		{CommandExportProject, exportWith(CommandExportProject, "project", noteAPI.ExportProject)},
	} {
		if err := api.RegisterCommand(c.name, c.fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", c.name, err)
		}
	}
}

// RegisterThemeCommands registers "theme" (switch to the named theme, or to
// the next one without arguments) and "themes" (list them).
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			next := themeAPI.NextTheme()
			themeAPI.SetStatusMessage("Theme set to: %s", next.Name)
			return nil
		}

		themeName := strings.Join(args, " ")
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	if err := api.RegisterCommand(CommandTheme, themeCmdFunc); err != nil {
		logger.Warnf("Failed to register '%s' command: %v", CommandTheme, err)
	}
	if err := api.RegisterCommand(CommandThemes, themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register '%s' command: %v", CommandThemes, err)
	}
}

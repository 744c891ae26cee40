// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/event"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/plugin"
	"github.com/bethropolis/jotter/internal/session"
	"github.com/bethropolis/jotter/internal/store"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/bethropolis/jotter/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// Add verification for commands.ThemeAPI and commands.NoteAPI interfaces
var (
	_ commands.ThemeAPI = (*appEditorAPI)(nil)
	_ commands.NoteAPI  = (*appEditorAPI)(nil)
)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Note Access ---

func (api *appEditorAPI) Text() string {
	return api.app.session.Text()
}

func (api *appEditorAPI) CursorPosition() types.Position {
	return api.app.session.CursorPosition()
}

func (api *appEditorAPI) CurrentNotePath() string {
	s := api.app.session
	if s.Current() == 0 {
		return ""
	}
	return s.Tree().Path(s.Current())
}

func (api *appEditorAPI) IsNoteModified() bool {
	return api.app.session.Modified()
}

// --- Note Modification ---

// InsertText inserts at the cursor of the open note. Without one it does nothing.
func (api *appEditorAPI) InsertText(text string) {
	if api.app.session.Current() == 0 {
		logger.Debugf("API: InsertText ignored, no note is open")
		return
	}
	api.app.session.InsertText(text)
}

func (api *appEditorAPI) SaveNote() error {
	return api.app.session.Save()
}

// --- Export ---

// ExportNote writes the buffer of the open note, saved or not, to path.
func (api *appEditorAPI) ExportNote(path string) (string, error) {
	s := api.app.session
	if s.Current() == 0 {
		return "", session.ErrNoNote
	}
	return store.ExportText(path, s.Text())
}

// ExportProject saves the open note if it is modified, then writes the whole
// project as one document.
func (api *appEditorAPI) ExportProject(path string) (string, error) {
	s := api.app.session
	if s.Current() != 0 && s.Modified() {
		if err := s.Save(); err != nil {
			return "", fmt.Errorf("failed to save the open note first: %w", err)
		}
	}
	return store.ExportProject(api.app.store, s.Tree(), path)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.pluginManager.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

// --- Event Loop ---

func (api *appEditorAPI) Post(fn func()) {
	api.app.Post(fn)
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := api.app.cfg.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// --- Theme Access ---

// SetTheme sets the active theme by name
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	logger.Debugf("Theme changed to '%s'", name)
	return nil
}

// NextTheme cycles to the next theme in name order.
func (api *appEditorAPI) NextTheme() *theme.Theme {
	return api.app.themeManager.Next()
}

// ListThemes returns a list of all available theme names
func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

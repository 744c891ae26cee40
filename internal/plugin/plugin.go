// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/jotter/internal/event"
	"github.com/bethropolis/jotter/internal/types"
)

// CommandFunc is a command registered by a plugin or by the app itself.
type CommandFunc func(args []string) error

// EditorAPI is what plugins may touch. Every method except Post must be
// called on the app goroutine; Post is how background goroutines get there.
type EditorAPI interface {
	// --- Note Access ---
	Text() string
	CursorPosition() types.Position
	CurrentNotePath() string // "" when no note is open
	IsNoteModified() bool

	// --- Note Modification ---
	InsertText(text string)
	SaveNote() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Event Loop ---
	Post(fn func())

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the app is closing.
	Shutdown() error
}

package app

import (
	"github.com/bethropolis/jotter/internal/event"
)

// handleNoteOpened scrolls the text pane back to the top for the new note.
func (a *App) handleNoteOpened(e event.Event) bool {
	a.textPane.ResetViewport()
	return false // Not consumed
}

func (a *App) handleNoteClosed(e event.Event) bool {
	a.textPane.ResetViewport()
	return false
}

// handleCursorMovedForStatus updates the status bar based on cursor position
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false // Not consumed
}

// handleNoteSavedForStatus clears the modified flag on the status bar
func (a *App) handleNoteSavedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

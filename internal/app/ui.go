package app

import (
	"github.com/bethropolis/jotter/internal/config"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/modehandler"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/bethropolis/jotter/internal/tui"
)

const emptyHint = "Select a note and press Enter, or Ctrl+N to create one"

// layout splits the screen into the tree pane, the text pane and the status line.
func (a *App) layout(width, height int) {
	treeWidth := min(config.TreePaneWidth, width/2)
	paneHeight := max(0, height-1)

	a.treePane.X, a.treePane.Y = 0, 0
	a.treePane.Width, a.treePane.Height = treeWidth, paneHeight

	a.textPane.X, a.textPane.Y = treeWidth, 0
	a.textPane.Width, a.textPane.Height = max(0, width-treeWidth), paneHeight
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	th := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	a.layout(width, height)

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), Tree Width: %d", width, height, a.treePane.Width)

	defaultStyle := th.GetStyle(theme.StyleDefault)
	a.tuiManager.SetStyle(defaultStyle)
	a.tuiManager.Clear()
	screen.HideCursor()

	mode := a.modeHandler.Mode()
	a.treePane.Draw(screen, a.modeHandler.Rows(), a.modeHandler.Selected(), a.session.Current(), th, mode == modehandler.ModeTree)
	if a.session.Current() != 0 {
		a.textPane.Draw(screen, a.session.Text(), a.session.CursorPosition(), defaultStyle, mode == modehandler.ModeEdit)
	} else if a.textPane.Height > 0 {
		tui.DrawText(screen, a.textPane.X+1, 0, a.textPane.X+a.textPane.Width, emptyHint, th.GetStyle(theme.StyleTreeItem))
	}
	a.statusBar.Draw(screen, width, height, th)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	path := ""
	if id := a.session.Current(); id != 0 {
		path = a.session.Tree().Path(id)
	}
	a.statusBar.SetNoteInfo(path, a.session.Modified())
	a.statusBar.SetCursorInfo(a.session.CursorPosition())
	undo, redo := a.session.HistoryDepth()
	a.statusBar.SetBufferInfo(a.session.Diagnostics(), undo, redo)
	a.statusBar.SetEditorMode(a.modeHandler.Mode().String())
}

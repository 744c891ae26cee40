// internal/modehandler/modehandler.go
package modehandler

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/jotter/internal/clipboard"
	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/core/history"
	"github.com/bethropolis/jotter/internal/input"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/plugin"
	"github.com/bethropolis/jotter/internal/session"
	"github.com/bethropolis/jotter/internal/statusbar"
	"github.com/bethropolis/jotter/internal/store"
	"github.com/bethropolis/jotter/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Mode is the pane or prompt that receives key presses.
type Mode int

const (
	ModeTree Mode = iota
	ModeEdit
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "TREE"
	case ModeEdit:
		return "EDIT"
	case ModePrompt:
		return "PROMPT"
	}
	return "UNKNOWN"
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Session        *session.Session
	Store          store.Store
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Clipboard      *clipboard.Clipboard // nil selects an internal-only clipboard
	Commands       *plugin.Manager      // nil selects an empty command table
	Quit           func()
	PageSize       func() int // Lines moved by PageUp/PageDown; nil means 10
}

// ModeHandler turns key presses into session and tree operations according
// to the current mode. It runs on the app goroutine.
type ModeHandler struct {
	session        *session.Session
	store          store.Store
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	clipboard      *clipboard.Clipboard
	commands       *plugin.Manager
	quit           func()
	pageSize       func() int

	mode     Mode
	prevMode Mode // Restored when a prompt closes
	rows     []tui.TreeRow
	selected int // -1 when the tree is empty
	prompt   promptState

	quitPending   bool
	deletePending notetree.ID
}

// New creates a new ModeHandler in tree mode.
func New(cfg Config) *ModeHandler {
	if cfg.Session == nil || cfg.Store == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.Quit == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.New(false)
	}
	if cfg.Commands == nil {
		cfg.Commands = plugin.NewManager()
	}
	if cfg.PageSize == nil {
		cfg.PageSize = func() int { return 10 }
	}
	mh := &ModeHandler{
		session:        cfg.Session,
		store:          cfg.Store,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		clipboard:      cfg.Clipboard,
		commands:       cfg.Commands,
		quit:           cfg.Quit,
		pageSize:       cfg.PageSize,
		mode:           ModeTree,
		selected:       -1,
	}
	mh.RefreshTree()
	return mh
}

// HandleKeyEvent runs the action bound to ev. It returns true if the
// screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	if actionEvent.Action == input.ActionUnknown {
		return false
	}
	logger.DebugTagf("input", "ModeHandler: %v in mode %v", actionEvent.Action, mh.mode)

	if mh.mode == ModePrompt {
		return mh.handleActionPrompt(actionEvent)
	}

	// Confirmations only survive an immediate repeat
	if actionEvent.Action != input.ActionQuit {
		mh.quitPending = false
	}
	if actionEvent.Action != input.ActionDelete {
		mh.deletePending = 0
	}

	if mh.handleActionCommon(actionEvent) {
		return true
	}
	switch mh.mode {
	case ModeTree:
		return mh.handleActionTree(actionEvent)
	case ModeEdit:
		return mh.handleActionEdit(actionEvent)
	}
	return false
}

// handleActionCommon handles the actions available in both panes.
func (mh *ModeHandler) handleActionCommon(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionQuit:
		mh.quitAction()
	case input.ActionSave:
		mh.saveAction()
	case input.ActionUndo:
		mh.historyAction(false)
	case input.ActionRedo:
		mh.historyAction(true)
	case input.ActionSwitchPane:
		mh.switchPane()
	case input.ActionNewNote:
		mh.startPrompt(promptNewNote, "New note", mh.creationParent(), "")
	case input.ActionNewFolder:
		mh.startPrompt(promptNewFolder, "New folder", mh.creationParent(), "")
	case input.ActionRename:
		mh.startRename()
	case input.ActionDelete:
		mh.deleteAction()
	case input.ActionExportNote:
		if mh.session.Current() == 0 {
			mh.statusBar.SetTemporaryMessage("No note is open")
			break
		}
		mh.startPrompt(promptExportNote, "Export note to", 0, "")
	case input.ActionExportProject:
		mh.startPrompt(promptExportProject, "Export project to (.json/.yaml)", 0, "")
	case input.ActionCopyNote:
		mh.copyAction()
	case input.ActionPaste:
		mh.pasteAction()
	case input.ActionWordCount:
		mh.runCommand(commands.CommandWordCount)
	case input.ActionNextTheme:
		mh.runCommand(commands.CommandTheme)
	default:
		return false
	}
	return true
}

// handleActionEdit handles the text pane.
func (mh *ModeHandler) handleActionEdit(actionEvent input.ActionEvent) bool {
	s := mh.session
	switch actionEvent.Action {
	case input.ActionMoveUp:
		s.MoveUp()
	case input.ActionMoveDown:
		s.MoveDown()
	case input.ActionMoveLeft:
		s.MoveLeft()
	case input.ActionMoveRight:
		s.MoveRight()
	case input.ActionMoveHome:
		s.MoveLineStart()
	case input.ActionMoveEnd:
		s.MoveLineEnd()
	case input.ActionMovePageUp:
		for i := 0; i < mh.pageSize(); i++ {
			s.MoveUp()
		}
	case input.ActionMovePageDown:
		for i := 0; i < mh.pageSize(); i++ {
			s.MoveDown()
		}
	case input.ActionInsertRune:
		s.TypeRune(actionEvent.Rune)
	case input.ActionEnter:
		s.TypeRune('\n')
	case input.ActionDeleteCharBackward:
		return s.Backspace()
	case input.ActionDeleteCharForward:
		return s.DeleteForward()
	default:
		return false
	}
	return true
}

func (mh *ModeHandler) quitAction() {
	if mh.session.Modified() && !mh.quitPending {
		mh.quitPending = true
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Esc or Ctrl+Q again to quit without saving.")
		return
	}
	if mh.session.Modified() {
		logger.Warnf("ModeHandler: Quitting with unsaved changes in '%s'", mh.currentPath())
	}
	mh.quit()
}

func (mh *ModeHandler) saveAction() {
	err := mh.session.Save()
	switch {
	case errors.Is(err, session.ErrNoNote):
		mh.statusBar.SetTemporaryMessage("No note is open")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
	default:
		mh.statusBar.SetTemporaryMessage("Saved %s", mh.currentPath())
	}
}

func (mh *ModeHandler) historyAction(redo bool) {
	verb, step := "Undo", mh.session.Undo
	if redo {
		verb, step = "Redo", mh.session.Redo
	}
	sum, err := step()
	if errors.Is(err, history.ErrEmptyHistory) {
		mh.statusBar.SetTemporaryMessage("Nothing to %s", strings.ToLower(verb))
		return
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%s failed: %v", verb, err)
		return
	}
	mh.statusBar.SetTemporaryMessage("%s: +%d -%d chars (undo %d, redo %d)",
		verb, sum.Inserted, sum.Deleted, sum.UndoDepth, sum.RedoDepth)
}

func (mh *ModeHandler) switchPane() {
	if mh.mode == ModeEdit {
		mh.mode = ModeTree
		mh.selectID(mh.session.Current())
		return
	}
	if mh.session.Current() == 0 {
		mh.statusBar.SetTemporaryMessage("No note is open")
		return
	}
	mh.mode = ModeEdit
}

func (mh *ModeHandler) copyAction() {
	if mh.session.Current() == 0 {
		mh.statusBar.SetTemporaryMessage("No note is open")
		return
	}
	text := mh.session.Text()
	if err := mh.clipboard.Copy(text); err != nil {
		mh.statusBar.SetTemporaryMessage("Copied to the internal clipboard only: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Copied %d characters", utf8.RuneCountInString(text))
}

func (mh *ModeHandler) pasteAction() {
	if mh.session.Current() == 0 {
		mh.statusBar.SetTemporaryMessage("No note is open")
		return
	}
	text, err := mh.clipboard.Paste()
	if errors.Is(err, clipboard.ErrEmpty) || (err == nil && text == "") {
		mh.statusBar.SetTemporaryMessage("Clipboard empty")
		return
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return
	}
	mh.session.InsertText(text)
	mh.mode = ModeEdit
}

func (mh *ModeHandler) runCommand(name string, args ...string) {
	if err := mh.commands.ExecuteCommand(name, args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// currentPath is the display path of the open note, or "".
func (mh *ModeHandler) currentPath() string {
	return mh.session.Tree().Path(mh.session.Current())
}

// Mode returns the current input mode.
func (mh *ModeHandler) Mode() Mode {
	return mh.mode
}

// SetMode switches between the tree and text panes. The text pane needs an
// open note.
func (mh *ModeHandler) SetMode(mode Mode) {
	if mode == ModePrompt || (mode == ModeEdit && mh.session.Current() == 0) {
		return
	}
	mh.mode = mode
}

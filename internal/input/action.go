// internal/input/action.go
package input

// Action represents a command triggered by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit           // Asks again when the note has unsaved changes
	ActionSave
	ActionUndo
	ActionRedo
	ActionSwitchPane
	ActionNextTheme

	// --- Tree Actions ---
	ActionNewNote
	ActionNewFolder
	ActionRename
	ActionDelete // Needs a second press to confirm
	ActionExportNote
	ActionExportProject

	// --- Clipboard / Plugins ---
	ActionCopyNote
	ActionPaste
	ActionWordCount

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune // Carries the rune in ActionEvent.Rune
	ActionEnter      // Newline, open note or confirm prompt depending on the mode
	ActionDeleteCharForward
	ActionDeleteCharBackward
)

var actionNames = map[Action]string{
	ActionUnknown:            "Unknown",
	ActionQuit:               "Quit",
	ActionSave:               "Save",
	ActionUndo:               "Undo",
	ActionRedo:               "Redo",
	ActionSwitchPane:         "SwitchPane",
	ActionNextTheme:          "NextTheme",
	ActionNewNote:            "NewNote",
	ActionNewFolder:          "NewFolder",
	ActionRename:             "Rename",
	ActionDelete:             "Delete",
	ActionExportNote:         "ExportNote",
	ActionExportProject:      "ExportProject",
	ActionCopyNote:           "CopyNote",
	ActionPaste:              "Paste",
	ActionWordCount:          "WordCount",
	ActionMoveUp:             "MoveUp",
	ActionMoveDown:           "MoveDown",
	ActionMoveLeft:           "MoveLeft",
	ActionMoveRight:          "MoveRight",
	ActionMovePageUp:         "MovePageUp",
	ActionMovePageDown:       "MovePageDown",
	ActionMoveHome:           "MoveHome",
	ActionMoveEnd:            "MoveEnd",
	ActionInsertRune:         "InsertRune",
	ActionEnter:              "Enter",
	ActionDeleteCharForward:  "DeleteCharForward",
	ActionDeleteCharBackward: "DeleteCharBackward",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}

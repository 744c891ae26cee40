// internal/event/event.go
package event

import (
	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Session events
	TypeBufferModified   // Text changed through an edit
	TypeCursorMoved      // Cursor offset changed
	TypeNoteOpened       // A note was loaded into the buffer
	TypeNoteSaved        // The open note was written to the store
	TypeNoteClosed       // The buffer was reset with no note open
	TypeSnapshotRecorded // The debounced recorder pushed an undo snapshot
	TypeHistoryRestored  // Undo or redo replaced the buffer text

	// Project events
	TypeTreeChanged // The note tree changed on disk or through a tree command

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeBufferModified:   "BufferModified",
	TypeCursorMoved:      "CursorMoved",
	TypeNoteOpened:       "NoteOpened",
	TypeNoteSaved:        "NoteSaved",
	TypeNoteClosed:       "NoteClosed",
	TypeSnapshotRecorded: "SnapshotRecorded",
	TypeHistoryRestored:  "HistoryRestored",
	TypeTreeChanged:      "TreeChanged",
	TypeAppReady:         "AppReady",
	TypeAppQuit:          "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes the buffer after an edit.
type BufferModifiedData struct {
	Note   notetree.ID
	Length int // Runes
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	Offset      int
	NewPosition types.Position
}

// NoteOpenedData names the note now in the buffer.
type NoteOpenedData struct {
	Note notetree.ID
	Path string
}

// NoteSavedData names the note just written.
type NoteSavedData struct {
	Note notetree.ID
	Path string
}

// SnapshotRecordedData reports the undo depth after recording.
type SnapshotRecordedData struct {
	UndoDepth int
}

// HistoryRestoredData describes an undo or redo step.
type HistoryRestoredData struct {
	Redo      bool
	Inserted  int
	Deleted   int
	UndoDepth int
	RedoDepth int
}

// TreeChangedData tells subscribers whether the tree must be reloaded from the store.
type TreeChangedData struct {
	External bool // Changed outside the app (file watcher)
}

// AppReadyData and AppQuitData carry no payload yet.
type AppReadyData struct{}
type AppQuitData struct{}

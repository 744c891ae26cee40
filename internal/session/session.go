// Package session ties the gap buffer, the snapshot history and the debounced
// recorder to the note currently open for editing.
package session

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/jotter/internal/buffer"
	"github.com/bethropolis/jotter/internal/core/history"
	"github.com/bethropolis/jotter/internal/debounce"
	"github.com/bethropolis/jotter/internal/event"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/store"
)

var (
	// ErrNoNote is returned by operations that need an open note.
	ErrNoNote = errors.New("no note is open")
	// ErrNotUTF8 is returned when a note's stored bytes are not valid UTF-8.
	ErrNotUTF8 = errors.New("note is not valid UTF-8")
)

// Config wires a Session to its collaborators.
type Config struct {
	Store         store.Store
	Tree          *notetree.Tree
	Scheduler     debounce.Scheduler
	SnapshotDelay time.Duration  // 0 selects debounce.DefaultDelay
	MaxHistory    int            // 0 selects history.DefaultMaxHistory
	Events        *event.Manager // optional
}

// Session is the editing state of one open note. It is not safe for concurrent
// use; every call, including the debounce callback, must come from one goroutine.
type Session struct {
	buf    buffer.Buffer
	hist   *history.Manager
	snap   *debounce.Timer
	store  store.Store
	tree   *notetree.Tree
	events *event.Manager

	current  notetree.ID // 0 when no note is open
	modified bool
	saved    string // Text as last loaded or stored
	goalCol  int    // Column kept across vertical moves; -1 when unset
}

// New creates a session with an empty buffer and no note open.
func New(cfg Config) *Session {
	s := &Session{
		buf:     buffer.NewGapBuffer(buffer.DefaultCapacity),
		hist:    history.NewManager(cfg.MaxHistory),
		store:   cfg.Store,
		tree:    cfg.Tree,
		events:  cfg.Events,
		goalCol: -1,
	}
	s.snap = debounce.New(cfg.Scheduler, cfg.SnapshotDelay, s.recordSnapshot)
	return s
}

func (s *Session) dispatch(t event.Type, data interface{}) {
	if s.events != nil {
		s.events.Dispatch(t, data)
	}
}

// recordSnapshot is the debounce callback.
func (s *Session) recordSnapshot() {
	if s.hist.RecordIfChanged(s.buf.Text()) {
		s.dispatch(event.TypeSnapshotRecorded, event.SnapshotRecordedData{UndoDepth: s.hist.UndoDepth()})
	}
}

// edited runs after every text mutation.
func (s *Session) edited() {
	s.modified = true
	s.goalCol = -1
	s.snap.Trigger()
	s.dispatch(event.TypeBufferModified, event.BufferModifiedData{Note: s.current, Length: s.buf.Len()})
	s.cursorMoved()
}

func (s *Session) cursorMoved() {
	s.dispatch(event.TypeCursorMoved, event.CursorMovedData{Offset: s.buf.Cursor(), NewPosition: s.CursorPosition()})
}

// TypeRune inserts r at the cursor.
func (s *Session) TypeRune(r rune) {
	s.buf.Insert(r)
	s.edited()
}

// InsertText inserts text at the cursor as a single edit.
func (s *Session) InsertText(text string) {
	if text == "" {
		return
	}
	s.buf.InsertString(text)
	s.edited()
}

// Backspace deletes the rune before the cursor. It reports whether anything was deleted.
func (s *Session) Backspace() bool {
	if !s.buf.Delete() {
		return false
	}
	s.edited()
	return true
}

// DeleteForward deletes the rune after the cursor.
func (s *Session) DeleteForward() bool {
	if !s.buf.DeleteForward() {
		return false
	}
	s.edited()
	return true
}

// ReplaceText swaps in a whole new text, keeping the cursor where it was when possible.
func (s *Session) ReplaceText(text string) {
	cursor := s.buf.Cursor()
	s.buf.SetText(text)
	s.buf.MoveCursor(cursor)
	s.edited()
}

// MoveCursor places the cursor at offset, clamped into the text.
func (s *Session) MoveCursor(offset int) {
	s.goalCol = -1
	s.moveTo(offset)
}

func (s *Session) moveTo(offset int) {
	before := s.buf.Cursor()
	s.buf.MoveCursor(offset)
	if s.buf.Cursor() != before {
		s.cursorMoved()
	}
}

// Text returns the whole buffer content.
func (s *Session) Text() string { return s.buf.Text() }

// Cursor returns the cursor rune offset.
func (s *Session) Cursor() int { return s.buf.Cursor() }

// Diagnostics returns the gap buffer layout.
func (s *Session) Diagnostics() buffer.Metrics { return s.buf.Metrics() }

// Current returns the open note, or 0.
func (s *Session) Current() notetree.ID { return s.current }

// Modified reports unsaved changes.
func (s *Session) Modified() bool { return s.modified }

// SnapshotPending reports whether an edit burst is waiting to be recorded.
func (s *Session) SnapshotPending() bool { return s.snap.Pending() }

// HistoryDepth returns the undo and redo stack sizes.
func (s *Session) HistoryDepth() (undo, redo int) {
	return s.hist.UndoDepth(), s.hist.RedoDepth()
}

// Undo restores the previous snapshot. A burst still inside the debounce
// window is recorded first so it can be redone.
func (s *Session) Undo() (history.Summary, error) {
	return s.step(false)
}

// Redo reapplies the most recently undone snapshot.
func (s *Session) Redo() (history.Summary, error) {
	return s.step(true)
}

func (s *Session) step(redo bool) (history.Summary, error) {
	if s.snap.Stop() {
		s.recordSnapshot()
	}

	current := s.buf.Text()
	var restored string
	var err error
	if redo {
		restored, err = s.hist.Redo(current)
	} else {
		restored, err = s.hist.Undo(current)
	}
	if err != nil {
		return history.Summary{}, err
	}

	cursor := s.buf.Cursor()
	s.buf.SetText(restored)
	s.buf.MoveCursor(cursor)
	s.modified = restored != s.saved
	s.goalCol = -1

	sum := history.Summarize(current, restored)
	sum.UndoDepth, sum.RedoDepth = s.hist.UndoDepth(), s.hist.RedoDepth()
	s.dispatch(event.TypeHistoryRestored, event.HistoryRestoredData{
		Redo:      redo,
		Inserted:  sum.Inserted,
		Deleted:   sum.Deleted,
		UndoDepth: sum.UndoDepth,
		RedoDepth: sum.RedoDepth,
	})
	s.dispatch(event.TypeBufferModified, event.BufferModifiedData{Note: s.current, Length: s.buf.Len()})
	s.cursorMoved()
	return sum, nil
}

// Tree returns the note tree the session resolves IDs against.
func (s *Session) Tree() *notetree.Tree { return s.tree }

// Open loads a note into the buffer. History starts fresh from the loaded text.
// On error nothing changes.
func (s *Session) Open(id notetree.ID) error {
	if _, err := s.tree.Leaf(id); err != nil {
		return err
	}
	text, err := s.store.LoadText(s.tree, id)
	if err != nil {
		return fmt.Errorf("failed to open note: %w", err)
	}
	// Invalid bytes would come back as U+FFFD on the next save.
	if !utf8.ValidString(text) {
		return fmt.Errorf("failed to open '%s': %w", s.tree.Path(id), ErrNotUTF8)
	}

	s.snap.Stop()
	s.buf.SetText(text)
	s.hist.Reset(text)
	s.current = id
	s.modified = false
	s.saved = text
	s.goalCol = -1

	path := s.tree.Path(id)
	logger.InfoTagf("session", "Session: Opened '%s' (%d runes)", path, s.buf.Len())
	s.dispatch(event.TypeNoteOpened, event.NoteOpenedData{Note: id, Path: path})
	s.cursorMoved()
	return nil
}

// Close drops the open note and resets buffer and history.
func (s *Session) Close() {
	s.snap.Stop()
	s.buf.Clear()
	s.hist.Reset("")
	s.current = 0
	s.modified = false
	s.saved = ""
	s.goalCol = -1
	s.dispatch(event.TypeNoteClosed, nil)
}

// Save stores the buffer text as the open note's content. A failed save
// leaves the buffer, the history and the modified flag as they were.
func (s *Session) Save() error {
	if s.current == 0 {
		return ErrNoNote
	}
	text := s.buf.Text()
	if err := s.store.StoreText(s.tree, s.current, text); err != nil {
		logger.WarnTagf("session", "Session: Save failed: %v", err)
		return err
	}
	s.modified = false
	s.saved = text

	path := s.tree.Path(s.current)
	logger.InfoTagf("session", "Session: Saved '%s'", path)
	s.dispatch(event.TypeNoteSaved, event.NoteSavedData{Note: s.current, Path: path})
	return nil
}

// Rebind swaps in a reloaded tree. The open note is looked up again by path;
// if it is gone the session closes, otherwise buffer and history are kept.
func (s *Session) Rebind(t *notetree.Tree) {
	path := s.tree.Path(s.current)
	open := s.current != 0
	s.tree = t
	if !open {
		return
	}
	if n, ok := t.Find(path); ok && n.Kind() == notetree.KindLeaf {
		s.current = n.ID()
		return
	}
	logger.InfoTagf("session", "Session: '%s' disappeared, closing", path)
	s.Close()
}

// Holds reports whether the open note is id or one of id's descendants.
func (s *Session) Holds(id notetree.ID) bool {
	for n := s.current; n != 0; {
		if n == id {
			return true
		}
		node, err := s.tree.Node(n)
		if err != nil {
			return false
		}
		n = node.Parent()
	}
	return false
}

// internal/buffer/buffer.go
package buffer

// Buffer defines the cursor-addressed editing surface for the open note.
// All positions are rune offsets into the logical text.
type Buffer interface {
	Insert(r rune)
	InsertString(s string)
	Delete() bool        // Backspace; false at the start of the text
	DeleteForward() bool // Delete; false at the end of the text
	MoveCursor(pos int)  // Clamps pos into [0, Len()]
	Cursor() int
	Position() (line, col int) // Cursor line and column, in runes
	Text() string
	Len() int
	SetText(text string) // Replaces all content, cursor ends at 0
	Clear()
	Metrics() Metrics
}

// Metrics is a read-only snapshot of the buffer layout, used for status display.
type Metrics struct {
	Capacity   int
	GapStart   int
	GapEnd     int
	GapSize    int
	TextLength int
	Cursor     int
}

// internal/buffer/gap_buffer.go
package buffer

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultCapacity is the slot count of a fresh, empty buffer.
	DefaultCapacity = 128
	// setTextSlack is the spare room reserved on top of the text length by SetText.
	setTextSlack = 128
)

// GapBuffer keeps the text in a single rune slice with an unused region (the gap)
// sitting at the cursor:
//
//	[0, gapStart)          text before the cursor
//	[gapStart, gapEnd)     gap
//	[gapEnd, len(storage)) text after the cursor
//
// Inserting and deleting at the cursor only moves the gap edges. Moving the cursor
// shifts the runes between the old and new position across the gap.
type GapBuffer struct {
	storage  []rune
	gapStart int
	gapEnd   int
	cursor   int // Always equal to gapStart once a method returns
	line     int // Newlines in [0, gapStart)
}

// NewGapBuffer creates an empty buffer with the given capacity.
func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &GapBuffer{
		storage: make([]rune, capacity),
		gapEnd:  capacity,
	}
}

// NewGapBufferFromString creates a buffer holding text with the cursor at 0.
func NewGapBufferFromString(text string) *GapBuffer {
	g := NewGapBuffer(DefaultCapacity)
	g.SetText(text)
	return g
}

// Insert writes r at the cursor and advances the cursor past it.
func (g *GapBuffer) Insert(r rune) {
	if g.gapStart == g.gapEnd {
		g.expandGap()
	}
	g.storage[g.gapStart] = r
	g.gapStart++
	g.cursor++
	if r == '\n' {
		g.line++
	}
}

// InsertString inserts every rune of s at the cursor, in order.
func (g *GapBuffer) InsertString(s string) {
	for _, r := range s {
		g.Insert(r)
	}
}

// Delete removes the rune before the cursor.
func (g *GapBuffer) Delete() bool {
	if g.gapStart == 0 {
		return false
	}
	g.gapStart--
	if g.storage[g.gapStart] == '\n' {
		g.line--
	}
	g.storage[g.gapStart] = 0
	g.cursor--
	return true
}

// DeleteForward removes the rune after the cursor.
func (g *GapBuffer) DeleteForward() bool {
	if g.gapEnd == len(g.storage) {
		return false
	}
	g.storage[g.gapEnd] = 0
	g.gapEnd++
	return true
}

// MoveCursor relocates the gap to pos, clamped into [0, Len()].
// The cost is proportional to the distance moved.
func (g *GapBuffer) MoveCursor(pos int) {
	pos = max(0, min(pos, g.Len()))

	switch {
	case pos < g.gapStart:
		// Runes in [pos, gapStart) slide to the right edge of the gap.
		n := g.gapStart - pos
		g.line -= countNewlines(g.storage[pos:g.gapStart])
		copy(g.storage[g.gapEnd-n:g.gapEnd], g.storage[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd -= n
		clear(g.storage[g.gapStart:g.gapEnd])
	case pos > g.gapStart:
		// Runes right after the gap slide to its left edge.
		n := pos - g.gapStart
		g.line += countNewlines(g.storage[g.gapEnd : g.gapEnd+n])
		copy(g.storage[g.gapStart:g.gapStart+n], g.storage[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
		clear(g.storage[g.gapStart:g.gapEnd])
	}

	g.cursor = pos
}

func countNewlines(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Position returns the cursor's line and column. The line count is kept up to
// date by every edit, so only the current line is scanned.
func (g *GapBuffer) Position() (line, col int) {
	start := g.gapStart
	for start > 0 && g.storage[start-1] != '\n' {
		start--
	}
	return g.line, g.gapStart - start
}

// Cursor returns the logical cursor offset.
func (g *GapBuffer) Cursor() int {
	return g.cursor
}

// Text returns the logical text, skipping the gap.
func (g *GapBuffer) Text() string {
	out := make([]rune, 0, g.Len())
	out = append(out, g.storage[:g.gapStart]...)
	out = append(out, g.storage[g.gapEnd:]...)
	return string(out)
}

// Len returns the number of runes in the logical text.
func (g *GapBuffer) Len() int {
	return len(g.storage) - (g.gapEnd - g.gapStart)
}

// SetText replaces the whole content. The cursor ends at position 0.
func (g *GapBuffer) SetText(text string) {
	size := utf8.RuneCountInString(text) + setTextSlack
	g.storage = make([]rune, size)
	g.gapStart = 0
	g.gapEnd = size
	g.cursor = 0
	g.line = 0

	for _, r := range text {
		g.Insert(r)
	}
	g.MoveCursor(0)
}

// Clear drops all content and resets to the default capacity.
func (g *GapBuffer) Clear() {
	g.storage = make([]rune, DefaultCapacity)
	g.gapStart = 0
	g.gapEnd = DefaultCapacity
	g.cursor = 0
	g.line = 0
}

// expandGap doubles the storage. The text before the gap keeps its offsets, the
// text after the gap moves to the tail, and the gap absorbs all new capacity.
func (g *GapBuffer) expandGap() {
	oldSize := len(g.storage)
	newSize := oldSize * 2
	if newSize == 0 {
		newSize = DefaultCapacity
	}

	grown := make([]rune, newSize)
	copy(grown, g.storage[:g.gapStart])

	newGapEnd := newSize - (oldSize - g.gapEnd)
	copy(grown[newGapEnd:], g.storage[g.gapEnd:])

	g.storage = grown
	g.gapEnd = newGapEnd
}

// Metrics reports the current layout of the buffer.
func (g *GapBuffer) Metrics() Metrics {
	return Metrics{
		Capacity:   len(g.storage),
		GapStart:   g.gapStart,
		GapEnd:     g.gapEnd,
		GapSize:    g.gapEnd - g.gapStart,
		TextLength: g.Len(),
		Cursor:     g.cursor,
	}
}

// String is a short debugging form showing the first 50 runes.
func (g *GapBuffer) String() string {
	text := []rune(g.Text())
	if len(text) > 50 {
		text = text[:50]
	}
	m := g.Metrics()
	return fmt.Sprintf("GapBuffer(text=%q..., cursor=%d, gap_size=%d)", string(text), m.Cursor, m.GapSize)
}

// Ensure GapBuffer satisfies the Buffer interface
var _ Buffer = (*GapBuffer)(nil)

// internal/types/position.go
package types

// Position represents a cursor position as a line/column pair.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// OffsetToPosition converts a rune offset into text to a line/column pair.
// Offsets outside the text are clamped.
func OffsetToPosition(text []rune, offset int) Position {
	offset = max(0, min(offset, len(text)))
	pos := Position{}
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			pos.Line++
			pos.Col = 0
		} else {
			pos.Col++
		}
	}
	return pos
}

// PositionToOffset converts a line/column pair back to a rune offset.
// A column past the end of its line lands on the line end; a line past the
// last line lands on the end of the text.
func PositionToOffset(text []rune, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	line := 0
	i := 0
	for line < pos.Line {
		if i >= len(text) {
			return len(text)
		}
		if text[i] == '\n' {
			line++
		}
		i++
	}
	end := LineEnd(text, i)
	return i + max(0, min(pos.Col, end-i))
}

// LineStart returns the offset of the first rune on the line containing offset.
func LineStart(text []rune, offset int) int {
	offset = max(0, min(offset, len(text)))
	for offset > 0 && text[offset-1] != '\n' {
		offset--
	}
	return offset
}

// LineEnd returns the offset of the newline ending the line containing offset,
// or len(text) on the last line.
func LineEnd(text []rune, offset int) int {
	offset = max(0, min(offset, len(text)))
	for offset < len(text) && text[offset] != '\n' {
		offset++
	}
	return offset
}

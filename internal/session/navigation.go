package session

import (
	"github.com/bethropolis/jotter/internal/types"
)

// CursorPosition returns the cursor as a line/column pair.
func (s *Session) CursorPosition() types.Position {
	line, col := s.buf.Position()
	return types.Position{Line: line, Col: col}
}

// MoveToPosition places the cursor at a line/column pair, clamped into the text.
func (s *Session) MoveToPosition(pos types.Position) {
	s.MoveCursor(types.PositionToOffset([]rune(s.buf.Text()), pos))
}

func (s *Session) MoveLeft()  { s.MoveCursor(s.buf.Cursor() - 1) }
func (s *Session) MoveRight() { s.MoveCursor(s.buf.Cursor() + 1) }

// MoveLineStart moves to the first column of the current line.
func (s *Session) MoveLineStart() {
	_, col := s.buf.Position()
	s.MoveCursor(s.buf.Cursor() - col)
}

// MoveLineEnd moves to the end of the current line.
func (s *Session) MoveLineEnd() {
	s.MoveCursor(types.LineEnd([]rune(s.buf.Text()), s.buf.Cursor()))
}

// MoveUp moves one line up, keeping the column of the last horizontal move.
// On the first line it goes to the start of the text.
func (s *Session) MoveUp() { s.moveLines(-1) }

// MoveDown moves one line down. On the last line it goes to the end of the text.
func (s *Session) MoveDown() { s.moveLines(1) }

func (s *Session) moveLines(delta int) {
	text := []rune(s.buf.Text())
	pos := s.CursorPosition()
	if s.goalCol < 0 {
		s.goalCol = pos.Col
	}

	target := pos.Line + delta
	switch {
	case target < 0:
		s.moveTo(0)
	case target > lastLine(text):
		s.moveTo(len(text))
	default:
		s.moveTo(types.PositionToOffset(text, types.Position{Line: target, Col: s.goalCol}))
	}
}

func lastLine(text []rune) int {
	n := 0
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

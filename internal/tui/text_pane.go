package tui

import (
	"strings"

	"github.com/bethropolis/jotter/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// TextPane draws the note text inside a rectangle and keeps the cursor in view.
type TextPane struct {
	X, Y, Width, Height int
	TabWidth            int
	ScrollOff           int

	top  int // First visible line
	left int // First visible cell
}

// Viewport returns the first visible line and cell.
func (p *TextPane) Viewport() (top, left int) {
	return p.top, p.left
}

// ResetViewport scrolls back to the top left corner.
func (p *TextPane) ResetViewport() {
	p.top, p.left = 0, 0
}

// scrollTo adjusts the viewport so the cursor cell is visible.
func (p *TextPane) scrollTo(cursor types.Position, lines []string) {
	p.top = scrollAxis(p.top, cursor.Line, p.Height, p.ScrollOff)
	visual := 0
	if cursor.Line < len(lines) {
		visual = VisualColumn(lines[cursor.Line], cursor.Col, p.TabWidth)
	}
	p.left = scrollAxis(p.left, visual, p.Width, 0)
}

// Draw renders text and, if focused, places the terminal cursor.
func (p *TextPane) Draw(s tcell.Screen, text string, cursor types.Position, style tcell.Style, focused bool) {
	if p.Width <= 0 || p.Height <= 0 {
		return
	}
	lines := strings.Split(text, "\n")
	p.scrollTo(cursor, lines)
	Fill(s, p.X, p.Y, p.Width, p.Height, style)

	for row := 0; row < p.Height; row++ {
		idx := p.top + row
		if idx >= len(lines) {
			break
		}
		p.drawLine(s, p.Y+row, lines[idx], style)
	}

	if !focused {
		return
	}
	line := ""
	if cursor.Line < len(lines) {
		line = lines[cursor.Line]
	}
	cx := p.X + VisualColumn(line, cursor.Col, p.TabWidth) - p.left
	cy := p.Y + cursor.Line - p.top
	if cx < p.X || cx >= p.X+p.Width || cy < p.Y || cy >= p.Y+p.Height {
		s.HideCursor()
		return
	}
	s.ShowCursor(cx, cy)
}

func (p *TextPane) drawLine(s tcell.Screen, y int, line string, style tcell.Style) {
	right := p.left + p.Width
	visual := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		width := clusterWidth(runes, gr.Width(), visual, p.TabWidth)
		start, end := visual, visual+width
		visual = end
		if end <= p.left {
			continue
		}
		if start >= right {
			break
		}
		if width == 0 {
			continue
		}
		if runes[0] == '\t' || start < p.left || end > right {
			// Tabs and clusters cut by the pane edge become blanks
			for x := max(start, p.left); x < min(end, right); x++ {
				s.SetContent(p.X+x-p.left, y, ' ', nil, style)
			}
			continue
		}
		s.SetContent(p.X+start-p.left, y, runes[0], runes[1:], style)
		for cw := 1; cw < width; cw++ {
			s.SetContent(p.X+start-p.left+cw, y, ' ', nil, style)
		}
	}
}

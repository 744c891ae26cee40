package tui

import (
	"strings"

	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TreeRow is one visible line of the tree pane.
type TreeRow struct {
	ID     notetree.ID
	Name   string
	Depth  int
	Folder bool
}

// TreeRows lists every node below the root in display order.
func TreeRows(t *notetree.Tree) []TreeRow {
	var rows []TreeRow
	t.Walk(func(n notetree.Node, depth int) bool {
		if n.ID() == notetree.RootID {
			return true
		}
		rows = append(rows, TreeRow{
			ID:     n.ID(),
			Name:   n.Name(),
			Depth:  depth - 1,
			Folder: n.Kind() == notetree.KindContainer,
		})
		return true
	})
	return rows
}

// Label is the text drawn for the row.
func (r TreeRow) Label() string {
	marker := "  "
	if r.Folder {
		marker = "▸ "
	}
	return strings.Repeat("  ", r.Depth) + marker + r.Name
}

// TreePane draws the note tree in a column with a separator on its right.
type TreePane struct {
	X, Y, Width, Height int
	ScrollOff           int

	top int
}

// Top returns the first visible row.
func (p *TreePane) Top() int { return p.top }

// Draw renders rows, highlighting selected and the open note.
func (p *TreePane) Draw(s tcell.Screen, rows []TreeRow, selected int, open notetree.ID, th *theme.Theme, focused bool) {
	if p.Width <= 1 || p.Height <= 0 {
		return
	}
	inner := p.Width - 1
	Fill(s, p.X, p.Y, inner, p.Height, th.GetStyle(theme.StyleDefault))
	sep := th.GetStyle(theme.StyleSeparator)
	for row := 0; row < p.Height; row++ {
		s.SetContent(p.X+inner, p.Y+row, '│', nil, sep)
	}

	if selected >= 0 {
		p.top = scrollAxis(p.top, selected, p.Height, p.ScrollOff)
	}
	p.top = max(0, min(p.top, len(rows)-p.Height))

	for row := 0; row < p.Height; row++ {
		idx := p.top + row
		if idx >= len(rows) {
			break
		}
		r := rows[idx]
		style := th.GetStyle(theme.StyleTreeItem)
		switch {
		case idx == selected && focused:
			style = th.GetStyle(theme.StyleTreeSelected)
		case r.ID == open:
			style = th.GetStyle(theme.StyleTreeOpen)
		case r.Folder:
			style = th.GetStyle(theme.StyleTreeFolder)
		}
		if idx == selected && focused {
			Fill(s, p.X, p.Y+row, inner, 1, style)
		}
		DrawText(s, p.X, p.Y+row, p.X+inner, r.Label(), style)
	}
}

package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/bethropolis/jotter/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	_, err := NewWithScreen(s, tcell.StyleDefault)
	require.NoError(t, err)
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

// row reads back the runes of one screen line.
func row(s tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawTextClipsAtMaxX(t *testing.T) {
	s := newScreen(t, 10, 1)

	next := DrawText(s, 0, 0, 5, "hello world", tcell.StyleDefault)
	assert.Equal(t, 5, next)
	assert.Equal(t, "hello     ", row(s, 0, 10))
}

func TestDrawTextWideCluster(t *testing.T) {
	s := newScreen(t, 6, 1)

	next := DrawText(s, 0, 0, 3, "日本", tcell.StyleDefault)
	assert.Equal(t, 2, next, "second wide rune does not fit")
	r, _, _, _ := s.GetContent(0, 0)
	assert.Equal(t, '日', r)
	assert.Equal(t, 4, TextWidth("日本"))
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"ascii", "hello", 3, 3},
		{"start", "hello", 0, 0},
		{"leading tab", "\tx", 1, 4},
		{"tab after text", "ab\tc", 3, 4},
		{"wide", "日本語", 2, 4},
		{"past end", "ab", 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisualColumn(tt.line, tt.col, 4))
		})
	}
}

func TestScrollAxis(t *testing.T) {
	assert.Equal(t, 0, scrollAxis(0, 2, 5, 1), "inside the window")
	assert.Equal(t, 7, scrollAxis(0, 10, 5, 1), "keeps scrolloff rows below")
	assert.Equal(t, 4, scrollAxis(7, 5, 5, 1), "keeps scrolloff rows above")
	assert.Equal(t, 0, scrollAxis(3, 0, 5, 1))
	assert.Equal(t, 2, scrollAxis(0, 4, 3, 5), "scrolloff is capped for small windows")
}

func TestTextPaneScrollsToCursor(t *testing.T) {
	s := newScreen(t, 10, 3)
	p := &TextPane{Width: 10, Height: 3, TabWidth: 4}

	text := "l0\nl1\nl2\nl3\nl4"
	p.Draw(s, text, types.Position{Line: 4, Col: 2}, tcell.StyleDefault, true)
	s.Show()

	top, left := p.Viewport()
	assert.Equal(t, 2, top)
	assert.Equal(t, 0, left)
	assert.Equal(t, "l2        ", row(s, 0, 10))
	assert.Equal(t, "l4        ", row(s, 2, 10))

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
}

func TestTextPaneHorizontalScroll(t *testing.T) {
	s := newScreen(t, 4, 1)
	p := &TextPane{Width: 4, Height: 1, TabWidth: 4}

	p.Draw(s, "abcdefgh", types.Position{Col: 6}, tcell.StyleDefault, true)
	_, left := p.Viewport()
	assert.Equal(t, 3, left)
	assert.Equal(t, "defg", row(s, 0, 4))

	p.ResetViewport()
	top, left := p.Viewport()
	assert.Zero(t, top)
	assert.Zero(t, left)
}

func TestTextPaneExpandsTabs(t *testing.T) {
	s := newScreen(t, 8, 1)
	p := &TextPane{X: 0, Width: 8, Height: 1, TabWidth: 4}

	p.Draw(s, "a\tb", types.Position{Col: 3}, tcell.StyleDefault, true)
	s.Show()
	assert.Equal(t, "a   b   ", row(s, 0, 8))
	x, _, _ := s.GetCursor()
	assert.Equal(t, 5, x)
}

func TestTextPaneUnfocusedLeavesCursor(t *testing.T) {
	s := newScreen(t, 8, 2)
	s.HideCursor()
	p := &TextPane{X: 2, Width: 6, Height: 2, TabWidth: 4}

	p.Draw(s, "hi", types.Position{}, tcell.StyleDefault, false)
	s.Show()
	_, _, visible := s.GetCursor()
	assert.False(t, visible)
	assert.Equal(t, "  hi    ", row(s, 0, 8))
}

func TestTreeRows(t *testing.T) {
	tree := notetree.New()
	work, err := tree.AddContainer(notetree.RootID, "work")
	require.NoError(t, err)
	_, err = tree.AddLeaf(work.ID(), "plan.goon", "")
	require.NoError(t, err)
	_, err = tree.AddLeaf(notetree.RootID, "todo.goon", "")
	require.NoError(t, err)

	rows := TreeRows(tree)
	require.Len(t, rows, 3)
	assert.Equal(t, "▸ work", rows[0].Label())
	assert.Equal(t, "    plan.goon", rows[1].Label())
	assert.Equal(t, "  todo.goon", rows[2].Label())
	assert.True(t, rows[0].Folder)
	assert.Equal(t, 1, rows[1].Depth)
}

func TestTreePaneDraw(t *testing.T) {
	s := newScreen(t, 12, 2)
	p := &TreePane{Width: 12, Height: 2}
	rows := []TreeRow{
		{ID: 2, Name: "a", Folder: true},
		{ID: 3, Name: "b", Depth: 1},
		{ID: 4, Name: "c"},
	}
	th := &theme.DevComfortDark

	p.Draw(s, rows, 2, 3, th, true)
	assert.Equal(t, 1, p.Top(), "scrolled to the selection")
	assert.Equal(t, "    b      │", row(s, 0, 12))
	assert.Equal(t, "  c        │", row(s, 1, 12))

	_, _, style, _ := s.GetContent(0, 1)
	assert.Equal(t, th.GetStyle(theme.StyleTreeSelected), style)
	_, _, style, _ = s.GetContent(4, 0)
	assert.Equal(t, th.GetStyle(theme.StyleTreeOpen), style)
}

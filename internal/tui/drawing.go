// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// DrawText draws text from column x up to (not including) maxX, one
// grapheme cluster at a time. Wide clusters that do not fit are dropped.
// It returns the column after the last drawn cell.
func DrawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if width == 0 {
			continue
		}
		if x+width > maxX {
			break
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		for cw := 1; cw < width; cw++ {
			s.SetContent(x+cw, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

// TextWidth returns the number of cells text occupies.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Fill paints the rectangle with blanks.
func Fill(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// VisualColumn returns the cell offset of rune index col in line, expanding
// tabs to the next multiple of tabWidth.
func VisualColumn(line string, col, tabWidth int) int {
	if col <= 0 {
		return 0
	}
	visual := 0
	runeIndex := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if runeIndex >= col {
			break
		}
		runes := gr.Runes()
		visual += clusterWidth(runes, gr.Width(), visual, tabWidth)
		runeIndex += len(runes)
	}
	return visual
}

func clusterWidth(runes []rune, width, visual, tabWidth int) int {
	if runes[0] == '\t' {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - visual%tabWidth
	}
	return width
}

// scrollAxis returns the new first visible index so that pos stays at least
// off cells away from both edges of a window of the given size.
func scrollAxis(top, pos, size, off int) int {
	if size <= 0 {
		return top
	}
	off = max(0, min(off, (size-1)/2))
	if pos < top+off {
		top = pos - off
	}
	if pos >= top+size-off {
		top = pos - size + off + 1
	}
	return max(top, 0)
}

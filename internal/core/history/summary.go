// Package history provides snapshot-based undo/redo for the open note.
package history

import (
	"unicode/utf8"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Summary describes what a history step changed, for status reporting.
type Summary struct {
	Inserted  int // Runes present after but not before
	Deleted   int // Runes present before but not after
	UndoDepth int // Snapshots left to undo after the step
	RedoDepth int // Snapshots left to redo after the step
}

// Summarize diffs two snapshots at character level.
func Summarize(before, after string) Summary {
	var s Summary
	if before == after {
		return s
	}
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			s.Inserted += utf8.RuneCountInString(df.Text)
		case dmp.DiffDelete:
			s.Deleted += utf8.RuneCountInString(df.Text)
		}
	}
	return s
}

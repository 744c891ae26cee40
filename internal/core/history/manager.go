package history

import (
	"errors"
	"fmt"

	"github.com/bethropolis/jotter/internal/logger"
)

const DefaultMaxHistory = 100

// ErrEmptyHistory is returned when there is no snapshot to step to.
var ErrEmptyHistory = errors.New("history is empty")

var (
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", ErrEmptyHistory)
	ErrNothingToRedo = fmt.Errorf("nothing to redo: %w", ErrEmptyHistory)
)

// Manager keeps linear undo/redo stacks of full-text snapshots.
//
// The baseline is the most recently recorded snapshot. Recording pushes the old
// baseline onto the undo stack and drops all redo snapshots; stepping through
// history moves snapshots between the two stacks and resets the baseline to the
// restored text.
type Manager struct {
	undo       []string
	redo       []string
	baseline   string
	maxHistory int
}

// NewManager creates a history manager keeping at most maxHistory undo snapshots.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		maxHistory: maxHistory,
	}
}

// RecordIfChanged records current as the new baseline if it differs from the
// previous one. It reports whether a snapshot was pushed.
func (m *Manager) RecordIfChanged(current string) bool {
	if current == m.baseline {
		return false
	}

	m.undo = append(m.undo, m.baseline)
	if len(m.undo) > m.maxHistory {
		// Drop the oldest snapshots
		m.undo = m.undo[len(m.undo)-m.maxHistory:]
	}
	m.baseline = current
	m.redo = nil

	logger.DebugTagf("history", "History: Recorded snapshot. Undo: %d", len(m.undo))
	return true
}

// Undo pops the previous snapshot. current is the text being replaced; it is
// kept on the redo stack. The caller puts the returned text into the buffer.
func (m *Manager) Undo(current string) (string, error) {
	if len(m.undo) == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return "", ErrNothingToUndo
	}

	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)
	m.baseline = prev

	logger.DebugTagf("history", "History: Undo. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return prev, nil
}

// Redo pops the most recently undone snapshot, pushing current onto the undo stack.
func (m *Manager) Redo(current string) (string, error) {
	if len(m.redo) == 0 {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return "", ErrNothingToRedo
	}

	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current)
	m.baseline = next

	logger.DebugTagf("history", "History: Redo. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return next, nil
}

// Clear empties both stacks. The baseline is kept.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
	logger.DebugTagf("history", "History: Cleared.")
}

// Reset clears both stacks and starts over from baseline. Call this on note load.
func (m *Manager) Reset(baseline string) {
	m.Clear()
	m.baseline = baseline
}

// Baseline returns the last recorded snapshot.
func (m *Manager) Baseline() string {
	return m.baseline
}

// CanUndo returns true if there are snapshots that can be undone.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo returns true if there are snapshots that can be redone.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

func (m *Manager) UndoDepth() int { return len(m.undo) }

func (m *Manager) RedoDepth() int { return len(m.redo) }

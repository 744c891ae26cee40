// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/jotter/internal/buffer"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/bethropolis/jotter/internal/tui"
	"github.com/bethropolis/jotter/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line of the screen. It shows either a prompt, a
// temporary message or the note info with the buffer diagnostics.
type StatusBar struct {
	config Config
	now    func() time.Time

	notePath   string
	isModified bool
	cursorPos  types.Position
	metrics    buffer.Metrics
	undoDepth  int
	redoDepth  int
	editorMode string

	promptLabel  string
	promptText   string
	promptActive bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	if config.MessageTimeout <= 0 {
		config.MessageTimeout = DefaultConfig().MessageTimeout
	}
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetNoteInfo updates the note path and the modified indicator.
func (sb *StatusBar) SetNoteInfo(path string, modified bool) {
	sb.notePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.cursorPos = pos
}

// SetBufferInfo updates the gap buffer layout and history depths.
func (sb *StatusBar) SetBufferInfo(m buffer.Metrics, undo, redo int) {
	sb.metrics = m
	sb.undoDepth = undo
	sb.redoDepth = redo
}

// SetEditorMode updates the displayed mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.editorMode = mode
}

// SetPrompt shows label and the text typed so far instead of the status.
func (sb *StatusBar) SetPrompt(label, text string) {
	sb.promptLabel = label
	sb.promptText = text
	sb.promptActive = true
}

// ClearPrompt goes back to the regular status line.
func (sb *StatusBar) ClearPrompt() {
	sb.promptActive = false
	sb.promptLabel = ""
	sb.promptText = ""
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, or "".
func (sb *StatusBar) Message() string {
	if sb.messageActive() {
		return sb.tempMessage
	}
	return ""
}

func (sb *StatusBar) messageActive() bool {
	return !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
}

// leftText is the note part of the status line.
func (sb *StatusBar) leftText() string {
	path := sb.notePath
	if path == "" {
		path = "[No Note]"
	}
	return " " + path
}

// rightText is the cursor, diagnostics and mode part.
func (sb *StatusBar) rightText() string {
	parts := []string{
		fmt.Sprintf("Ln %d, Col %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1),
		fmt.Sprintf("gap %d:%d/%d", sb.metrics.GapStart, sb.metrics.GapEnd, sb.metrics.Capacity),
		fmt.Sprintf("undo %d redo %d", sb.undoDepth, sb.redoDepth),
	}
	if sb.editorMode != "" {
		parts = append(parts, sb.editorMode)
	}
	return strings.Join(parts, " | ") + " "
}

// Draw renders the status bar on the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	if !sb.tempMessageTime.IsZero() && !sb.messageActive() {
		sb.ResetTemporaryMessage()
	}

	barStyle := th.GetStyle(theme.StyleStatusBar)
	tui.Fill(screen, 0, y, width, 1, barStyle)

	switch {
	case sb.promptActive:
		style := th.GetStyle(theme.StylePrompt)
		x := tui.DrawText(screen, 0, y, width, " "+sb.promptLabel+": ", style)
		x = tui.DrawText(screen, x, y, width, sb.promptText, barStyle)
		if x < width {
			screen.ShowCursor(x, y)
		}
	case sb.messageActive():
		tui.DrawText(screen, 0, y, width, " "+sb.tempMessage, th.GetStyle(theme.StyleStatusBarMessage))
	default:
		x := tui.DrawText(screen, 0, y, width, sb.leftText(), barStyle)
		if sb.isModified {
			x = tui.DrawText(screen, x, y, width, " [Modified]", th.GetStyle(theme.StyleStatusBarModified))
		}
		right := sb.rightText()
		// The diagnostics give way to the note path on narrow screens
		if start := width - tui.TextWidth(right); start > x {
			tui.DrawText(screen, start, y, width, right, th.GetStyle(theme.StyleStatusBarDebug))
		}
	}
}

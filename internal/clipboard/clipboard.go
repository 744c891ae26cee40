// Package clipboard copies and pastes note text through the system clipboard,
// falling back to an in-process register.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/jotter/internal/logger"
)

// ErrEmpty is returned by Paste when nothing has been copied.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard holds the internal register and, when enabled, mirrors it to the
// system clipboard.
type Clipboard struct {
	system   bool
	register string
	filled   bool

	readAll  func() (string, error)
	writeAll func(string) error
}

// New creates a clipboard. useSystem is ignored where the platform has no
// clipboard tool available.
func New(useSystem bool) *Clipboard {
	c := &Clipboard{
		system:   useSystem && !clipboard.Unsupported,
		readAll:  clipboard.ReadAll,
		writeAll: clipboard.WriteAll,
	}
	if useSystem && clipboard.Unsupported {
		logger.WarnTagf("clipboard", "Clipboard: System clipboard unsupported, using internal register")
	}
	return c
}

// System reports whether the system clipboard is in use.
func (c *Clipboard) System() bool { return c.system }

// Copy stores text. The internal register always receives it; a system
// clipboard failure is returned but the text is still pasteable in-process.
func (c *Clipboard) Copy(text string) error {
	c.register = text
	c.filled = true
	if !c.system {
		return nil
	}
	if err := c.writeAll(text); err != nil {
		logger.WarnTagf("clipboard", "Clipboard: System write failed: %v", err)
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// Paste returns the system clipboard content, or the internal register when
// the system clipboard is off or unreadable.
func (c *Clipboard) Paste() (string, error) {
	if c.system {
		text, err := c.readAll()
		if err == nil {
			return text, nil
		}
		logger.WarnTagf("clipboard", "Clipboard: System read failed, using register: %v", err)
	}
	if !c.filled {
		return "", ErrEmpty
	}
	return c.register, nil
}

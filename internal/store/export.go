package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
)

// ExportText writes text to path, replacing any file already there. It
// returns the resolved path.
func ExportText(path, text string) (string, error) {
	abs, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", fmt.Errorf("'%s' is a directory", abs)
	}
	if err := writeFileAtomic(abs, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to export note: %w", err)
	}
	logger.InfoTagf("store", "Exported %d bytes to '%s'", len(text), abs)
	return abs, nil
}

// ExportProject writes every note of t as a single project document at path.
// The extension picks the format. Note text is read through s, so a directory
// project becomes a single-file one.
func ExportProject(s Store, t *notetree.Tree, path string) (string, error) {
	abs, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	c, ok := codecForPath(abs)
	if !ok {
		return "", fmt.Errorf("%w: '%s' (use .json or .yaml)", ErrUnknownFormat, filepath.Base(abs))
	}
	if abs == s.Location() {
		return "", errors.New("cannot export a project onto itself")
	}

	var loadErr error
	t.Walk(func(n notetree.Node, _ int) bool {
		if loadErr != nil || n.Kind() != notetree.KindLeaf {
			return loadErr == nil
		}
		if _, err := s.LoadText(t, n.ID()); err != nil {
			loadErr = fmt.Errorf("failed to read '%s': %w", t.Path(n.ID()), err)
		}
		return true
	})
	if loadErr != nil {
		return "", loadErr
	}

	data, err := c.Marshal(encodeTree(t, 0))
	if err != nil {
		return "", fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for '%s': %w", abs, err)
	}
	if err := writeFileAtomic(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to export project: %w", err)
	}
	logger.InfoTagf("store", "Exported %d nodes to '%s' (%s)", t.Len(), abs, c.Format())
	return abs, nil
}

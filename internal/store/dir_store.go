package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bios-Marcel/wastebasket/v2"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
)

// DirStore keeps a project as a directory tree: folders are directories and
// notes are files carrying the note extension.
type DirStore struct {
	root  string
	ext   string
	trash bool
}

// NewDirStore creates a store rooted at root. An empty ext selects DefaultExtension.
func NewDirStore(root, ext string, trash bool) *DirStore {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &DirStore{root: root, ext: ext, trash: trash}
}

func (s *DirStore) Location() string { return s.root }

// Extension returns the note file extension, dot included.
func (s *DirStore) Extension() string { return s.ext }

// Open scans the project directory, creating it if needed. Note text is read
// lazily by LoadText.
func (s *DirStore) Open() (*notetree.Tree, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project directory '%s': %w", s.root, err)
	}
	t := notetree.New()
	if err := s.scan(t, s.root, notetree.RootID); err != nil {
		return nil, err
	}
	logger.InfoTagf("store", "DirStore: Opened '%s' with %d nodes", s.root, t.Len())
	return t, nil
}

func (s *DirStore) scan(t *notetree.Tree, dir string, parent notetree.ID) error {
	entries, err := os.ReadDir(dir) // sorted by file name
	if err != nil {
		return fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case entry.IsDir():
			c, err := t.AddContainer(parent, name)
			if err != nil {
				logger.WarnTagf("store", "DirStore: Skipping folder '%s': %v", filepath.Join(dir, name), err)
				continue
			}
			if err := s.scan(t, filepath.Join(dir, name), c.ID()); err != nil {
				return err
			}
		case entry.Type().IsRegular() && strings.HasSuffix(name, s.ext):
			if _, err := t.AddLeaf(parent, name, ""); err != nil {
				logger.WarnTagf("store", "DirStore: Skipping note '%s': %v", filepath.Join(dir, name), err)
			}
		}
	}
	return nil
}

// diskPath maps a node to its location under the project root.
func (s *DirStore) diskPath(t *notetree.Tree, id notetree.ID) (string, error) {
	segs, err := t.Segments(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{s.root}, segs...)...), nil
}

// Contains reports whether path, an absolute path below the project root, is
// a node of t.
func (s *DirStore) Contains(t *notetree.Tree, path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	if rel == "." {
		return true
	}
	_, ok := t.Find(filepath.ToSlash(rel))
	return ok
}

// LoadText reads a note file. A missing file reads as empty text.
func (s *DirStore) LoadText(t *notetree.Tree, id notetree.ID) (string, error) {
	if _, err := t.Leaf(id); err != nil {
		return "", err
	}
	path, err := s.diskPath(t, id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = nil
	} else if err != nil {
		return "", fmt.Errorf("failed to read note '%s': %w", path, err)
	}
	text := string(data)
	_ = t.SetContent(id, text)
	return text, nil
}

// StoreText writes text to the note file unchanged.
func (s *DirStore) StoreText(t *notetree.Tree, id notetree.ID, text string) error {
	if _, err := t.Leaf(id); err != nil {
		return err
	}
	path, err := s.diskPath(t, id)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	_ = t.SetContent(id, text)
	logger.DebugTagf("store", "DirStore: Saved %d bytes to '%s'", len(text), path)
	return nil
}

// noteName appends the note extension when it is missing.
func (s *DirStore) noteName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && !strings.HasSuffix(name, s.ext) {
		name += s.ext
	}
	return name
}

// CreateLeaf adds an empty note file.
func (s *DirStore) CreateLeaf(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Leaf, error) {
	leaf, err := t.AddLeaf(parent, s.noteName(name), "")
	if err != nil {
		return nil, err
	}
	path, err := s.diskPath(t, leaf.ID())
	if err == nil {
		var f *os.File
		if f, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644); err == nil {
			err = f.Close()
		}
	}
	if err != nil {
		_, _ = t.Remove(leaf.ID())
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return leaf, nil
}

// CreateContainer adds a folder.
func (s *DirStore) CreateContainer(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Container, error) {
	c, err := t.AddContainer(parent, name)
	if err != nil {
		return nil, err
	}
	path, err := s.diskPath(t, c.ID())
	if err == nil {
		err = os.MkdirAll(path, 0o755)
	}
	if err != nil {
		_, _ = t.Remove(c.ID())
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return c, nil
}

// Rename renames the node and its file or directory. Notes keep the extension.
func (s *DirStore) Rename(t *notetree.Tree, id notetree.ID, name string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	if n.Kind() == notetree.KindLeaf {
		name = s.noteName(name)
	}
	oldName := n.Name()
	oldPath, err := s.diskPath(t, id)
	if err != nil {
		return err
	}
	if err := t.Rename(id, name); err != nil {
		return err
	}
	newPath, err := s.diskPath(t, id)
	if err == nil {
		if _, statErr := os.Stat(oldPath); statErr == nil {
			err = os.Rename(oldPath, newPath)
		}
	}
	if err != nil {
		_ = t.Rename(id, oldName)
		return fmt.Errorf("failed to rename '%s': %w", oldName, err)
	}
	return nil
}

// Remove deletes the node from disk (or moves it to the trash) and then from the tree.
func (s *DirStore) Remove(t *notetree.Tree, id notetree.ID) error {
	if id == notetree.RootID {
		return notetree.ErrRootImmutable
	}
	path, err := s.diskPath(t, id)
	if err != nil {
		return err
	}
	if _, statErr := os.Lstat(path); statErr == nil {
		if s.trash {
			err = wastebasket.Trash(path)
		} else {
			err = os.RemoveAll(path)
		}
		if err != nil {
			return fmt.Errorf("failed to delete '%s': %w", path, err)
		}
	}
	_, err = t.Remove(id)
	return err
}

var _ Store = (*DirStore)(nil)

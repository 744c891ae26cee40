package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
)

// FileStore keeps a whole project in one JSON or YAML document. Every change
// rewrites the document.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore creates a store backed by the document at path.
func NewFileStore(path string, c codec) *FileStore {
	return &FileStore{path: path, codec: c}
}

func (s *FileStore) Location() string { return s.path }

// Format returns "json" or "yaml".
func (s *FileStore) Format() string { return s.codec.Format() }

// Open reads the document. A missing file opens as an empty project.
func (s *FileStore) Open() (*notetree.Tree, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.InfoTagf("store", "FileStore: '%s' does not exist, starting empty", s.path)
		return notetree.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project '%s': %w", s.path, err)
	}

	var doc document
	if err := s.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project '%s': %w", s.path, err)
	}
	t, err := decodeTree(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load project '%s': %w", s.path, err)
	}
	logger.InfoTagf("store", "FileStore: Opened '%s' (%s) with %d nodes", s.path, s.codec.Format(), t.Len())
	return t, nil
}

// write serializes t, leaving out skip, and replaces the document.
func (s *FileStore) write(t *notetree.Tree, skip notetree.ID) error {
	data, err := s.codec.Marshal(encodeTree(t, skip))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", s.path, err)
	}
	return writeFileAtomic(s.path, data, 0o644)
}

// LoadText returns the note text held in the document.
func (s *FileStore) LoadText(t *notetree.Tree, id notetree.ID) (string, error) {
	leaf, err := t.Leaf(id)
	if err != nil {
		return "", err
	}
	return leaf.Content(), nil
}

// StoreText updates the note and rewrites the document, restoring the old text on failure.
func (s *FileStore) StoreText(t *notetree.Tree, id notetree.ID, text string) error {
	leaf, err := t.Leaf(id)
	if err != nil {
		return err
	}
	old := leaf.Content()
	_ = t.SetContent(id, text)
	if err := s.write(t, 0); err != nil {
		_ = t.SetContent(id, old)
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

func (s *FileStore) CreateLeaf(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Leaf, error) {
	leaf, err := t.AddLeaf(parent, name, "")
	if err != nil {
		return nil, err
	}
	if err := s.write(t, 0); err != nil {
		_, _ = t.Remove(leaf.ID())
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return leaf, nil
}

func (s *FileStore) CreateContainer(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Container, error) {
	c, err := t.AddContainer(parent, name)
	if err != nil {
		return nil, err
	}
	if err := s.write(t, 0); err != nil {
		_, _ = t.Remove(c.ID())
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return c, nil
}

func (s *FileStore) Rename(t *notetree.Tree, id notetree.ID, name string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	oldName := n.Name()
	if err := t.Rename(id, name); err != nil {
		return err
	}
	if err := s.write(t, 0); err != nil {
		_ = t.Rename(id, oldName)
		return fmt.Errorf("failed to rename '%s': %w", oldName, err)
	}
	return nil
}

// Remove writes the document without the node before detaching it from the tree.
func (s *FileStore) Remove(t *notetree.Tree, id notetree.ID) error {
	if id == notetree.RootID {
		return notetree.ErrRootImmutable
	}
	if _, err := t.Node(id); err != nil {
		return err
	}
	if err := s.write(t, id); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	_, err := t.Remove(id)
	return err
}

var _ Store = (*FileStore)(nil)

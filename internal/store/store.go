// Package store persists note trees, either as a directory of files or as a
// single serialized document.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/bethropolis/jotter/internal/notetree"
)

// DefaultExtension marks note files inside a directory project.
const DefaultExtension = ".goon"

// Formats accepted by Open.
const (
	FormatAuto = "auto"
	FormatDir  = "dir"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown project format")

// Store is the persistence collaborator of an editor session. Every method
// leaves the in-memory tree unchanged when it returns an error.
type Store interface {
	// Open loads the whole tree.
	Open() (*notetree.Tree, error)
	// LoadText returns the current text of a note.
	LoadText(t *notetree.Tree, id notetree.ID) (string, error)
	// StoreText persists text exactly as given.
	StoreText(t *notetree.Tree, id notetree.ID, text string) error
	CreateLeaf(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Leaf, error)
	CreateContainer(t *notetree.Tree, parent notetree.ID, name string) (*notetree.Container, error)
	Rename(t *notetree.Tree, id notetree.ID, name string) error
	Remove(t *notetree.Tree, id notetree.ID) error
	// Location describes where the project lives, for display.
	Location() string
}

// Options selects and configures a Store.
type Options struct {
	Path      string
	Format    string // auto, dir, json or yaml
	Extension string // note file extension for directory projects
	Trash     bool   // move removed items to the OS trash instead of deleting
}

// Open builds the store described by opts. The path may start with "~".
func Open(opts Options) (Store, error) {
	path, err := ExpandPath(opts.Path)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(opts.Format)
	if format == "" || format == FormatAuto {
		format = detectFormat(path)
	}

	switch format {
	case FormatDir:
		return NewDirStore(path, opts.Extension, opts.Trash), nil
	case FormatJSON:
		return NewFileStore(path, jsonCodec{}), nil
	case FormatYAML:
		return NewFileStore(path, yamlCodec{}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// detectFormat picks a file format from the extension of path, falling back to
// a directory project.
func detectFormat(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return FormatDir
	}
	if c, ok := codecForPath(path); ok {
		return c.Format()
	}
	return FormatDir
}

// ExpandPath resolves a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("project path is empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path '%s': %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path '%s': %w", expanded, err)
	}
	return abs, nil
}

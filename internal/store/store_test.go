package store

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPicksFormat(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		opts   Options
		assert func(t *testing.T, s Store)
	}{
		{"existing dir", Options{Path: dir}, func(t *testing.T, s Store) {
			assert.IsType(t, &DirStore{}, s)
		}},
		{"json by extension", Options{Path: filepath.Join(dir, "p.json")}, func(t *testing.T, s Store) {
			require.IsType(t, &FileStore{}, s)
			assert.Equal(t, FormatJSON, s.(*FileStore).Format())
		}},
		{"yaml by extension", Options{Path: filepath.Join(dir, "p.yml"), Format: FormatAuto}, func(t *testing.T, s Store) {
			require.IsType(t, &FileStore{}, s)
			assert.Equal(t, FormatYAML, s.(*FileStore).Format())
		}},
		{"new dir without extension", Options{Path: filepath.Join(dir, "notes")}, func(t *testing.T, s Store) {
			assert.IsType(t, &DirStore{}, s)
		}},
		{"explicit yaml", Options{Path: filepath.Join(dir, "p.txt"), Format: "YAML"}, func(t *testing.T, s Store) {
			require.IsType(t, &FileStore{}, s)
			assert.Equal(t, FormatYAML, s.(*FileStore).Format())
		}},
		{"custom extension", Options{Path: dir, Format: FormatDir, Extension: "md"}, func(t *testing.T, s Store) {
			require.IsType(t, &DirStore{}, s)
			assert.Equal(t, ".md", s.(*DirStore).Extension())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.opts)
			require.NoError(t, err)
			tt.assert(t, s)
		})
	}

	_, err := Open(Options{Path: dir, Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Open(Options{})
	assert.Error(t, err)
}

func TestExpandPathHome(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	got, err := ExpandPath("~/notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), got)
}

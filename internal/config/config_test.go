package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("jotter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &Flags{}
	_, err := f.ParseFlags(fs, args)
	require.NoError(t, err)
	return f
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, warnings, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, DefaultSnapshotDelay, cfg.Editor.SnapshotDelay.Duration)
	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, DefaultProjectPath, cfg.Project.Path)
	assert.Equal(t, "auto", cfg.Project.Format)
	assert.Equal(t, ".goon", cfg.Project.Extension)
	assert.True(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
enabled_tags = ["history"]

[editor]
snapshot_delay = "750ms"
max_history = 20
system_clipboard = false

[project]
path = "~/work-notes"
format = "YAML"
extension = "txt"
trash = false

[plugins.autosave]
enabled = true
interval = "30s"

[mystery]
key = 1
`)
	cfg, warnings, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"history"}, cfg.Logger.EnabledTags)
	assert.Equal(t, 750*time.Millisecond, cfg.Editor.SnapshotDelay.Duration)
	assert.Equal(t, 20, cfg.Editor.MaxHistory)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth, "unset keys keep defaults")
	assert.Equal(t, "~/work-notes", cfg.Project.Path)
	assert.Equal(t, "yaml", cfg.Project.Format)
	assert.Equal(t, ".txt", cfg.Project.Extension)
	assert.False(t, cfg.Project.Trash)
	assert.True(t, cfg.Project.Watch)
	assert.Equal(t, true, cfg.Plugins["autosave"]["enabled"])
	assert.Equal(t, "30s", cfg.Plugins["autosave"]["interval"])

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "mystery")
}

func TestInvalidValuesReset(t *testing.T) {
	path := writeConfig(t, `
[editor]
max_history = -3
tab_width = 0
scroll_off = -1

[project]
format = "xml"
path = "  "
`)
	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff)
	assert.Equal(t, "auto", cfg.Project.Format)
	assert.Equal(t, DefaultProjectPath, cfg.Project.Path)
}

func TestBadFileIsAnError(t *testing.T) {
	_, _, err := Load(writeConfig(t, "[editor\nbroken"), nil)
	assert.Error(t, err)

	_, _, err = Load(writeConfig(t, "[editor]\nsnapshot_delay = \"soon\""), nil)
	assert.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
[editor]
snapshot_delay = "2s"
tab_width = 8
`)
	flags := parseFlags(t,
		"-snapshot-delay", "100ms",
		"-loglevel", "warn",
		"-log-tags", "history, store,",
		"-system-clipboard=false",
		"-format", "json",
		"/tmp/project.json",
	)

	cfg, _, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Editor.SnapshotDelay.Duration)
	assert.Equal(t, 8, cfg.Editor.TabWidth, "file value kept when the flag is not given")
	assert.Equal(t, "warn", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"history", "store"}, cfg.Logger.EnabledTags)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, "json", cfg.Project.Format)
	assert.Equal(t, "/tmp/project.json", cfg.Project.Path, "positional argument is the project")
}

func TestProjectFlagWinsOverPositional(t *testing.T) {
	flags := parseFlags(t, "-project", "a", "b")
	assert.Equal(t, "a", *flags.ProjectPath)

	cfg, _, err := Load(filepath.Join(t.TempDir(), "none.toml"), flags)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Project.Path)
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Equal(t, []string{"a", "b"}, splitCommaList(" a ,, b ,"))
}

func TestThemesDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "cfg"))
	if dir, err := os.UserConfigDir(); err == nil {
		assert.Equal(t, filepath.Join(dir, AppName, ThemesDirName), ThemesDir())
	}
}

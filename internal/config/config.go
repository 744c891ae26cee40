// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/jotter/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"` // [logger] table
	Editor  EditorConfig  `toml:"editor"`
	Project ProjectConfig `toml:"project"`
	// Plugins holds free-form [plugins.<name>] tables
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editing and display settings.
type EditorConfig struct {
	SnapshotDelay   Duration `toml:"snapshot_delay"` // Quiet time before an undo snapshot is taken
	MaxHistory      int      `toml:"max_history"`
	TabWidth        int      `toml:"tab_width"`
	ScrollOff       int      `toml:"scroll_off"`
	SystemClipboard bool     `toml:"system_clipboard"`
	Theme           string   `toml:"theme"`
}

// ProjectConfig selects where notes live.
type ProjectConfig struct {
	Path      string `toml:"path"`
	Format    string `toml:"format"` // auto, dir, json or yaml
	Extension string `toml:"extension"`
	Trash     bool   `toml:"trash"` // Deleted items go to the OS trash
	Watch     bool   `toml:"watch"` // Rescan when the directory changes outside the app
}

// Duration decodes TOML strings such as "750ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			SnapshotDelay:   Duration{DefaultSnapshotDelay},
			MaxHistory:      DefaultMaxHistory,
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
		},
		Project: ProjectConfig{
			Path:      DefaultProjectPath,
			Format:    DefaultProjectFormat,
			Extension: DefaultNoteExtension,
			Trash:     true,
			Watch:     true,
		},
		Plugins: map[string]map[string]interface{}{},
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName), nil
}

// ThemesDir returns the directory user themes are loaded from, or "" when
// there is no user config directory.
func ThemesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, ThemesDirName)
}

// DefaultLogPath returns the log file location under the user cache directory.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	return filepath.Join(dir, AppName, DefaultLogFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// It returns the keys the config file set but nothing consumed.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	var unknown []string
	for _, key := range metadata.Undecoded() {
		// Plugin tables are read later by the plugins themselves
		if len(key) > 0 && key[0] == "plugins" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.SnapshotDelay.Duration <= 0 {
		c.Editor.SnapshotDelay = defaults.Editor.SnapshotDelay
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if strings.TrimSpace(c.Project.Path) == "" {
		c.Project.Path = defaults.Project.Path
	}
	switch strings.ToLower(c.Project.Format) {
	case "auto", "dir", "json", "yaml":
		c.Project.Format = strings.ToLower(c.Project.Format)
	default:
		c.Project.Format = defaults.Project.Format
	}
	if c.Project.Extension == "" {
		c.Project.Extension = defaults.Project.Extension
	}
	if !strings.HasPrefix(c.Project.Extension, ".") {
		c.Project.Extension = "." + c.Project.Extension
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]interface{}{}
	}
}

// Load merges defaults, the config file and flag overrides, then validates the
// result. configFilePath may be empty to use DefaultPath. flags may be nil.
//
// The logger is usually not set up yet, so problems come back as warnings for
// the caller to log once it is.
func Load(configFilePath string, flags *Flags) (cfg *Config, warnings []string, err error) {
	cfg = NewDefaultConfig()

	path := configFilePath
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			warnings = append(warnings, fmt.Sprintf("no user config directory: %v", err))
			path = ""
		}
	}
	if path != "" {
		unknown, err := loadFromFile(path, cfg)
		if err != nil {
			return nil, warnings, err
		}
		if len(unknown) > 0 {
			warnings = append(warnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", path, unknown))
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, warnings, nil
}

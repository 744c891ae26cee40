// Package logger provides leveled, filterable logging on top of log/slog.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger. It is embedded in the application
// config file under the [logger] table.
type Config struct {
	// LogLevel specifies the minimum level to log (debug, info, warn, error).
	LogLevel string `toml:"level"`

	// LogFilePath is the path to the output log file. "-" means stderr.
	LogFilePath string `toml:"file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// Package name is the immediate directory name (e.g. "session", "store").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these file base names (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these files. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files"`
}

// NewConfig creates a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// filterSets is the processed, lookup-friendly form of the filter lists.
type filterSets struct {
	enabledTags, disabledTags         map[string]struct{}
	enabledPackages, disabledPackages map[string]struct{}
	enabledFiles, disabledFiles       map[string]struct{}
}

func (c Config) process() *filterSets {
	return &filterSets{
		enabledTags:      sliceToSet(c.EnabledTags),
		disabledTags:     sliceToSet(c.DisabledTags),
		enabledPackages:  sliceToSet(c.EnabledPackages),
		disabledPackages: sliceToSet(c.DisabledPackages),
		enabledFiles:     sliceToSet(c.EnabledFiles),
		disabledFiles:    sliceToSet(c.DisabledFiles),
	}
}

// sliceToSet lowercases items into a set; nil if nothing remains.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

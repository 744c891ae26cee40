package config

import "time"

// Base application details
const AppName = "jotter"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "jotter.log"

// Project defaults
const DefaultProjectPath = "~/notes"
const DefaultProjectFormat = "auto"
const DefaultNoteExtension = ".goon"

// Editing
const DefaultSnapshotDelay = 500 * time.Millisecond
const DefaultMaxHistory = 100
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// UI Layout
const TreePaneWidth = 28

// Status Bar
const MessageTimeout = 4 * time.Second

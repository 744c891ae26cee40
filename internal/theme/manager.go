// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Manager holds the loaded themes and the active one. Theme names are
// matched case-insensitively.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
}

// NewManager loads the built-in themes plus every .toml file in themesDir
// (empty to skip) and activates the named theme, falling back to
// DevComfort Dark.
func NewManager(themesDir, active string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}

	mgr.loadBuiltinThemes()

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}

	if active != "" {
		if err := mgr.SetTheme(active); err != nil {
			logger.Warnf("Theme: %v, using default", err)
		}
	}
	if mgr.activeTheme == nil {
		mgr.activeTheme = mgr.themes[strings.ToLower(DevComfortDark.Name)]
	}
	logger.Infof("Initial active theme set to: %s", mgr.activeTheme.Name)
	return mgr
}

func (m *Manager) loadBuiltinThemes() {
	for _, t := range []*Theme{&DevComfortDark, &DevComfortLight} {
		m.themes[strings.ToLower(t.Name)] = t
		logger.DebugTagf("theme", "Loaded built-in theme: %s", t.Name)
	}
}

// LoadThemesFromDir loads the .toml files of the themes directory. A missing
// directory is not an error; a broken file is skipped.
func (m *Manager) LoadThemesFromDir() error {
	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}

		key := strings.ToLower(theme.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
		}
		m.themes[key] = theme
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	if m.activeTheme == nil {
		return &Theme{Name: "NilFallback", Styles: map[string]tcell.Style{StyleDefault: tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme activates the theme called name.
func (m *Manager) SetTheme(name string) error {
	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// Next activates the theme following the current one in ListThemes order.
func (m *Manager) Next() *Theme {
	names := m.ListThemes()
	idx := 0
	for i, name := range names {
		if name == m.Current().Name {
			idx = (i + 1) % len(names)
			break
		}
	}
	_ = m.SetTheme(names[idx])
	return m.Current()
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}

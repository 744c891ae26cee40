// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/jotter/internal/logger"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandExists  = errors.New("command already registered")
)

// Manager handles the registration and lifecycle of plugins and keeps the
// command table they register into.
type Manager struct {
	plugins  []Plugin // Registration order
	byName   map[string]Plugin
	commands map[string]CommandFunc
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		byName:   make(map[string]Plugin),
		commands: make(map[string]CommandFunc),
	}
}

// Register adds a plugin. Call it before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins = append(m.plugins, plugin)
	m.byName[name] = plugin
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins initializes the plugins in registration order. A plugin
// that fails is logged and skipped.
func (m *Manager) InitializePlugins(api EditorAPI) {
	logger.Infof("Plugin Manager: Initializing %d plugins...", len(m.plugins))
	for _, plugin := range m.plugins {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			continue
		}
		logger.DebugTagf("plugin", "Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
	}
}

// ShutdownPlugins shuts the plugins down in reverse registration order.
func (m *Manager) ShutdownPlugins() {
	logger.Infof("Plugin Manager: Shutting down %d plugins...", len(m.plugins))
	for i := len(m.plugins) - 1; i >= 0; i-- {
		plugin := m.plugins[i]
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	p, exists := m.byName[name]
	return p, exists
}

// RegisterCommand adds a named command.
func (m *Manager) RegisterCommand(name string, fn CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("invalid command registration for '%s'", name)
	}
	if _, exists := m.commands[name]; exists {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}
	m.commands[name] = fn
	logger.DebugTagf("plugin", "Plugin Manager: Registered command '%s'", name)
	return nil
}

// ExecuteCommand runs the named command.
func (m *Manager) ExecuteCommand(name string, args []string) error {
	fn, ok := m.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.DebugTagf("plugin", "Plugin Manager: Executing command '%s' %v", name, args)
	return fn(args)
}

// Commands lists the registered command names, sorted.
func (m *Manager) Commands() []string {
	names := make([]string, 0, len(m.commands))
	for name := range m.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

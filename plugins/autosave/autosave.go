package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically saves the open note when it has unsaved changes.
// The ticker runs in its own goroutine; the save itself is posted to the
// app goroutine.
type AutoSave struct {
	api plugin.EditorAPI

	enabled  bool
	interval time.Duration

	// newTicker is replaced in tests.
	newTicker func(d time.Duration) (<-chan time.Time, func())

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:   defaultEnabled,
		interval:  defaultInterval,
		newTicker: realTicker,
	}
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and starts the ticker if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsedInterval <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, p.enabled, p.interval)

	if p.enabled {
		ticks, stop := p.newTicker(p.interval)
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(ticks, stop)
	}
	return nil
}

// Shutdown stops the ticker goroutine and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.DebugTagf("autosave", "%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) saverLoop(ticks <-chan time.Time, stop func()) {
	defer p.wg.Done()
	defer stop()

	for {
		select {
		case <-ticks:
			p.api.Post(p.saveIfModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified runs on the app goroutine.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsNoteModified() {
		return
	}
	path := p.api.CurrentNotePath()
	if path == "" {
		return
	}

	logger.InfoTagf("autosave", "%s: Auto-saving '%s'", p.Name(), path)
	if err := p.api.SaveNote(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), path, err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
	}
}

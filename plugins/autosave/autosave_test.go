package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/jotter/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker hands the test the tick channel and reports the interval used.
func manualTicker(p *AutoSave) (chan time.Time, *time.Duration) {
	ticks := make(chan time.Time)
	var interval time.Duration
	p.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		interval = d
		return ticks, func() {}
	}
	return ticks, &interval
}

func TestDisabledByDefault(t *testing.T) {
	p := New().(*AutoSave)
	api := plugintest.New("a.goon", "")

	require.NoError(t, p.Initialize(api))
	assert.False(t, p.enabled)
	assert.Nil(t, p.stopChan)
	assert.NoError(t, p.Shutdown())
}

func TestSavesModifiedNoteOnTick(t *testing.T) {
	p := New().(*AutoSave)
	ticks, interval := manualTicker(p)
	api := plugintest.New("a.goon", "text")
	api.Config["autosave"] = map[string]interface{}{"enabled": true, "interval": "30s"}

	require.NoError(t, p.Initialize(api))
	assert.Equal(t, 30*time.Second, *interval)

	ticks <- time.Now() // Not modified: nothing to save
	api.SetModified(true)
	ticks <- time.Now()

	assert.Eventually(t, func() bool { return api.SaveCount() == 1 }, time.Second, time.Millisecond)
	assert.False(t, api.IsNoteModified())
	require.NoError(t, p.Shutdown())
	assert.Equal(t, 1, api.SaveCount())
}

func TestSaveFailureIsReported(t *testing.T) {
	p := New().(*AutoSave)
	api := plugintest.New("a.goon", "text")
	api.Modified = true
	api.SaveErr = errors.New("disk full")

	p.api = api
	p.saveIfModified()
	assert.Equal(t, "Auto-save failed: disk full", api.LastMessage())
}

func TestSkipsWithoutNote(t *testing.T) {
	p := New().(*AutoSave)
	api := plugintest.New("", "")
	api.Modified = true

	p.api = api
	p.saveIfModified()
	assert.Zero(t, api.SaveCount())
}

func TestInvalidConfigKeepsDefaults(t *testing.T) {
	p := New().(*AutoSave)
	api := plugintest.New("a.goon", "")
	api.Config["autosave"] = map[string]interface{}{"enabled": "yes", "interval": "-5s"}

	require.NoError(t, p.Initialize(api))
	assert.False(t, p.enabled)
	assert.Equal(t, defaultInterval, p.interval)
}

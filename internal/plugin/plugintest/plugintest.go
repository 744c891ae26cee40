// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/jotter/internal/event"
	"github.com/bethropolis/jotter/internal/plugin"
	"github.com/bethropolis/jotter/internal/types"
)

var _ plugin.EditorAPI = (*FakeAPI)(nil)

// FakeAPI records what a plugin does. Post runs the function right away;
// the other methods lock, so Post may be called from any goroutine.
type FakeAPI struct {
	mu sync.Mutex

	TextValue string
	Path      string
	Modified  bool
	Cursor    types.Position
	Config    map[string]map[string]interface{}
	SaveErr   error

	Saves    int
	Posts    int
	Messages []string
	Commands map[string]plugin.CommandFunc
	Events   *event.Manager
}

// New returns a FakeAPI with an open, unmodified note at path.
func New(path, text string) *FakeAPI {
	return &FakeAPI{
		TextValue: text,
		Path:      path,
		Config:    make(map[string]map[string]interface{}),
		Commands:  make(map[string]plugin.CommandFunc),
		Events:    event.NewManager(),
	}
}

func (f *FakeAPI) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TextValue
}

func (f *FakeAPI) CursorPosition() types.Position { return f.Cursor }

func (f *FakeAPI) CurrentNotePath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Path
}

func (f *FakeAPI) IsNoteModified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Modified
}

// SetModified flips the modified flag as an edit would.
func (f *FakeAPI) SetModified(modified bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Modified = modified
}

func (f *FakeAPI) InsertText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TextValue += text
	f.Modified = true
}

func (f *FakeAPI) SaveNote() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Saves++
	f.Modified = false
	return nil
}

// SaveCount returns how many saves succeeded.
func (f *FakeAPI) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Saves
}

func (f *FakeAPI) DispatchEvent(eventType event.Type, data interface{}) {
	f.Events.Dispatch(eventType, data)
}

func (f *FakeAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	f.Events.Subscribe(eventType, handler)
}

func (f *FakeAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := f.Commands[name]; exists {
		return fmt.Errorf("%w: %s", plugin.ErrCommandExists, name)
	}
	f.Commands[name] = cmdFunc
	return nil
}

func (f *FakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, fmt.Sprintf(format, args...))
}

// LastMessage returns the most recent status message, or "".
func (f *FakeAPI) LastMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Messages) == 0 {
		return ""
	}
	return f.Messages[len(f.Messages)-1]
}

func (f *FakeAPI) Post(fn func()) {
	f.mu.Lock()
	f.Posts++
	f.mu.Unlock()
	fn()
}

func (f *FakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	values, ok := f.Config[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := values[key]
	return v, ok
}

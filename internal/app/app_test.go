package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/config"
	"github.com/bethropolis/jotter/internal/modehandler"
	"github.com/bethropolis/jotter/internal/session"
	"github.com/bethropolis/jotter/internal/store"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.goon"), []byte("alpha"), 0o644))

	cfg := config.NewDefaultConfig()
	cfg.Project.Path = root
	cfg.Project.Format = config.DefaultProjectFormat
	cfg.Project.Trash = false
	cfg.Project.Watch = false
	cfg.Editor.SystemClipboard = false
	cfg.Plugins["autosave"] = map[string]interface{}{"enabled": false}

	s := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(cfg, s)
	require.NoError(t, err)
	s.SetSize(80, 24)
	return a, s, root
}

func TestRunEditSaveQuit(t *testing.T) {
	a, s, root := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not quit")
	}

	data, err := os.ReadFile(filepath.Join(root, "a.goon"))
	require.NoError(t, err)
	assert.Equal(t, "xalpha", string(data))
}

func TestEditorAPI(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()
	defer a.shutdown()
	api := a.editorAPI

	assert.Equal(t, "", api.CurrentNotePath())
	api.InsertText("ignored")
	assert.Equal(t, "", api.Text())

	v, ok := api.GetPluginConfigValue("autosave", "enabled")
	assert.True(t, ok)
	assert.Equal(t, false, v)
	_, ok = api.GetPluginConfigValue("missing", "enabled")
	assert.False(t, ok)

	a.modeHandler.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	require.Equal(t, modehandler.ModeEdit, a.modeHandler.Mode())
	assert.Equal(t, "a.goon", api.CurrentNotePath())

	api.InsertText("> ")
	assert.Equal(t, "> alpha", api.Text())
	assert.True(t, api.IsNoteModified())
	require.NoError(t, api.SaveNote())
	assert.False(t, api.IsNoteModified())
}

func TestThemeCommands(t *testing.T) {
	a, _, _ := newTestApp(t)
	defer a.tuiManager.Close()
	defer a.shutdown()

	before := a.themeManager.Current().Name
	require.NoError(t, a.pluginManager.ExecuteCommand("theme", nil))
	assert.NotEqual(t, before, a.themeManager.Current().Name)
	assert.Contains(t, a.statusBar.Message(), "Theme set to: ")

	assert.Error(t, a.pluginManager.ExecuteCommand("theme", []string{"no-such-theme"}))
}

func TestExportCommands(t *testing.T) {
	a, _, root := newTestApp(t)
	defer a.tuiManager.Close()
	defer a.shutdown()
	out := t.TempDir()
	notePath := filepath.Join(out, "note.txt")

	err := a.pluginManager.ExecuteCommand(commands.CommandExport, []string{notePath})
	assert.ErrorIs(t, err, session.ErrNoNote)

	a.modeHandler.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	a.editorAPI.InsertText("draft ")
	require.NoError(t, a.pluginManager.ExecuteCommand(commands.CommandExport, []string{notePath}))
	data, err := os.ReadFile(notePath)
	require.NoError(t, err)
	assert.Equal(t, "draft alpha", string(data), "the unsaved buffer is exported")
	assert.Equal(t, "Exported note to "+notePath, a.statusBar.Message())

	projectPath := filepath.Join(out, "all.json")
	require.NoError(t, a.pluginManager.ExecuteCommand(commands.CommandExportProject, []string{projectPath}))
	assert.False(t, a.session.Modified(), "the open note is saved first")
	data, err = os.ReadFile(filepath.Join(root, "a.goon"))
	require.NoError(t, err)
	assert.Equal(t, "draft alpha", string(data))

	exported, err := store.Open(store.Options{Path: projectPath})
	require.NoError(t, err)
	tree, err := exported.Open()
	require.NoError(t, err)
	n, ok := tree.Find("a.goon")
	require.True(t, ok)
	text, err := exported.LoadText(tree, n.ID())
	require.NoError(t, err)
	assert.Equal(t, "draft alpha", text)
}

func TestDrawEditor(t *testing.T) {
	a, s, _ := newTestApp(t)
	defer a.tuiManager.Close()
	defer a.shutdown()

	a.drawEditor()
	cells, width, _ := s.GetContents()
	row := func(y int) string {
		var out []rune
		for x := 0; x < width; x++ {
			out = append(out, cells[y*width+x].Runes...)
		}
		return string(out)
	}
	assert.Contains(t, row(0), "a.goon")
	assert.Contains(t, row(0), emptyHint[:20])
	assert.Contains(t, row(23), "[No Note]")
}

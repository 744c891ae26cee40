// internal/app/app.go
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jotter/internal/clipboard"
	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/config"
	"github.com/bethropolis/jotter/internal/debounce"
	"github.com/bethropolis/jotter/internal/event"
	"github.com/bethropolis/jotter/internal/input"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/modehandler"
	"github.com/bethropolis/jotter/internal/plugin"
	"github.com/bethropolis/jotter/internal/session"
	"github.com/bethropolis/jotter/internal/statusbar"
	"github.com/bethropolis/jotter/internal/store"
	"github.com/bethropolis/jotter/internal/theme"
	"github.com/bethropolis/jotter/internal/tui"
)

// watchDelay coalesces bursts of file system events into one tree reload.
const watchDelay = 300 * time.Millisecond

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	store         store.Store
	session       *session.Session
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	themeManager  *theme.Manager
	modeHandler   *modehandler.ModeHandler
	editorAPI     *appEditorAPI
	watcher       *store.Watcher

	treePane tui.TreePane
	textPane tui.TextPane

	// Everything except Post runs on the Run goroutine; other goroutines
	// reach it through posted.
	posted   chan func()
	quit     chan struct{}
	quitOnce sync.Once
}

// NewApp opens the project named in cfg and builds the editor around it.
func NewApp(cfg *config.Config) (*App, error) {
	return NewAppWithScreen(cfg, nil)
}

// NewAppWithScreen is NewApp drawing on screen. A nil screen selects the
// terminal.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen) (*App, error) {
	// --- Open the Project ---
	st, err := store.Open(store.Options{
		Path:      cfg.Project.Path,
		Format:    cfg.Project.Format,
		Extension: cfg.Project.Extension,
		Trash:     cfg.Project.Trash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	tree, err := st.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to load project '%s': %w", st.Location(), err)
	}

	a := &App{
		cfg:           cfg,
		store:         st,
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		statusBar:     statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		themeManager:  theme.NewManager(config.ThemesDir(), cfg.Editor.Theme),
		posted:        make(chan func(), 64),
		quit:          make(chan struct{}),
		textPane: tui.TextPane{
			TabWidth:  cfg.Editor.TabWidth,
			ScrollOff: cfg.Editor.ScrollOff,
		},
		treePane: tui.TreePane{ScrollOff: 1},
	}

	// --- Create Core Components ---
	sched := debounce.NewLoopScheduler(a.Post)
	a.session = session.New(session.Config{
		Store:         st,
		Tree:          tree,
		Scheduler:     sched,
		SnapshotDelay: cfg.Editor.SnapshotDelay.Duration,
		MaxHistory:    cfg.Editor.MaxHistory,
		Events:        a.eventManager,
	})

	a.modeHandler = modehandler.New(modehandler.Config{
		Session:        a.session,
		Store:          st,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      a.statusBar,
		Clipboard:      clipboard.New(cfg.Editor.SystemClipboard),
		Commands:       a.pluginManager,
		Quit:           a.requestQuit,
		PageSize:       func() int { return max(1, a.textPane.Height-1) },
	})

	// --- Create Editor API adapter ---
	a.editorAPI = newEditorAPI(a)

	// --- Register Built-in Plugins and Commands ---
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	commands.RegisterAppCommands(a.editorAPI, a.editorAPI, a.editorAPI)

	// --- Subscribe Core Components (App level wiring) ---
	a.eventManager.Subscribe(event.TypeNoteOpened, a.handleNoteOpened)
	a.eventManager.Subscribe(event.TypeNoteClosed, a.handleNoteClosed)
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeNoteSaved, a.handleNoteSavedForStatus)

	// --- Initialize Plugins (triggers RegisterCommand via API) ---
	a.pluginManager.InitializePlugins(a.editorAPI)

	// --- Watch Directory Projects ---
	if ds, ok := st.(*store.DirStore); ok && cfg.Project.Watch {
		known := func(path string) bool { return ds.Contains(a.session.Tree(), path) }
		w, err := store.NewWatcher(ds.Location(), sched, a.Post, watchDelay, a.reloadTree, known)
		if err != nil {
			logger.Warnf("App: File watching disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	// --- Terminal ---
	style := a.themeManager.Current().GetStyle(theme.StyleDefault)
	if screen != nil {
		a.tuiManager, err = tui.NewWithScreen(screen, style)
	} else {
		a.tuiManager, err = tui.New(style)
	}
	if err != nil {
		a.shutdown()
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return a, nil
}

// Run starts the main loop. It returns once the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.shutdown()

	events := make(chan tcell.Event)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s - Tab switch pane | Ctrl+N new note | Ctrl+S save | Esc quit", a.store.Location())
	a.drawEditor()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.session.Modified() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			logger.Infof("App: Exiting application.")
			return nil
		case fn := <-a.posted:
			fn()
			a.drawEditor()
		case ev := <-events:
			if a.handleEvent(ev) {
				a.drawEditor()
			}
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized.
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent reports whether the screen needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		// Delegate ALL key handling to ModeHandler
		return a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

// Post queues fn to run on the main loop. It is safe to call from any
// goroutine and returns without running fn once the app is quitting.
func (a *App) Post(fn func()) {
	select {
	case a.posted <- fn:
	case <-a.quit:
	}
}

func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// shutdown stops background work. quit is closed first so goroutines
// blocked in Post can return.
func (a *App) shutdown() {
	a.requestQuit()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warnf("App: Closing watcher: %v", err)
		}
	}
	a.pluginManager.ShutdownPlugins()
}

// reloadTree rescans the project after an outside change.
func (a *App) reloadTree() {
	tree, err := a.store.Open()
	if err != nil {
		logger.Warnf("App: Reloading tree failed: %v", err)
		a.statusBar.SetTemporaryMessage("Reload failed: %v", err)
		return
	}
	a.modeHandler.ReloadTree(tree)
	a.eventManager.Dispatch(event.TypeTreeChanged, event.TreeChangedData{External: true})
}

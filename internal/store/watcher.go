package store

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/jotter/internal/debounce"
	"github.com/bethropolis/jotter/internal/logger"
)

// Watcher reports structural changes (creates, removes, renames) below a
// directory project. Bursts of events are coalesced into one onChange call.
//
// onChange runs through the debounce scheduler, and the fsnotify goroutine only
// hands events to post, so all Watcher state is touched from the loop goroutine.
//
// known, when set, reports whether an absolute path is already a node of the
// loaded tree. Events the tree already reflects are dropped: a create of a
// known path, or a remove or rename of an unknown one. That covers the app's
// own saves, creates, renames and deletes.
type Watcher struct {
	fs    *fsnotify.Watcher
	root  string
	post  func(func())
	known func(path string) bool
	timer *debounce.Timer

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root string, sched debounce.Scheduler, post func(func()), delay time.Duration, onChange func(), known func(path string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fs:    fw,
		root:  root,
		post:  post,
		known: known,
		timer: debounce.New(sched, delay, onChange),
		done:  make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()
	logger.InfoTagf("watch", "Watcher: Watching '%s'", root)
	return w, nil
}

// addTree registers dir and its visible subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch '%s': %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.DebugTagf("watch", "Watcher: %s", event)
			if event.Has(fsnotify.Create) {
				// New directories need their own watch; errors only mean it vanished again
				_ = w.addTree(event.Name)
			}
			w.post(func() { w.handle(event) })
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.WarnTagf("watch", "Watcher: %v", err)
		}
	}
}

// handle runs on the loop goroutine.
func (w *Watcher) handle(event fsnotify.Event) {
	if w.known != nil && w.known(event.Name) == event.Has(fsnotify.Create) {
		logger.DebugTagf("watch", "Watcher: Tree already reflects %s", event)
		return
	}
	w.timer.Trigger()
}

// relevant keeps structural events on visible, non-temporary paths.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	return !isTempName(base) && !strings.HasPrefix(base, ".")
}

// Close stops watching. Call it from the loop goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		w.timer.Stop()
	})
	return err
}

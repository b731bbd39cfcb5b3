// Package watcher monitors the imported directory and feeds entry change
// events into the explorer store.
package watcher

import (
	iofs "io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/thatbeautifuldream/local-first-explorer/internal/config"
	"github.com/thatbeautifuldream/local-first-explorer/internal/explorer"
	lfs "github.com/thatbeautifuldream/local-first-explorer/internal/fs"
)

// Watcher monitors file system changes under the currently imported
// directory. The watched root is swapped on every import.
type Watcher struct {
	watcher *fsnotify.Watcher
	cfg     *config.Config
	store   *explorer.Store
	mu      sync.Mutex
	dir     *lfs.Directory
	done    chan struct{}
}

// New creates a new file system watcher
func New(cfg *config.Config, store *explorer.Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: w,
		cfg:     cfg,
		store:   store,
		done:    make(chan struct{}),
	}, nil
}

// Start begins processing file system events
func (w *Watcher) Start() error {
	go w.eventLoop()
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// Rewatch replaces the watched root with the given imported directory.
func (w *Watcher) Rewatch(dir *lfs.Directory) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.watcher.WatchList() {
		_ = w.watcher.Remove(p)
	}
	w.dir = dir

	// Watch every directory under the root
	return filepath.WalkDir(dir.Root(), func(path string, de iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			return nil
		}
		if path != dir.Root() && w.cfg.IsExcluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.mu.Lock()
	dir := w.dir
	w.mu.Unlock()
	if dir == nil {
		return
	}

	if w.cfg.IsExcluded(event.Name) {
		return
	}

	path, ok := dir.EntryPath(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		// A new directory only needs watching; it shows up in the tree
		// once it contains files
		if isDir(event.Name) {
			_ = w.watcher.Add(event.Name)
			return
		}
		entry, err := dir.Stat(path)
		if err != nil {
			return
		}
		w.store.Dispatch(explorer.Event{
			Type:    explorer.EventEntriesAdded,
			Entries: []lfs.Entry{entry},
		})
	case event.Op&fsnotify.Write == fsnotify.Write:
		entry, err := dir.Stat(path)
		if err != nil {
			return
		}
		w.store.Dispatch(explorer.Event{
			Type:    explorer.EventEntriesChanged,
			Entries: []lfs.Entry{entry},
		})
	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.store.Dispatch(explorer.Event{
			Type:  explorer.EventEntriesDeleted,
			Paths: []string{path},
		})
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

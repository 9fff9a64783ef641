// Package watcher keeps the dashboard mirror of the usage document in
// sync with the primary copy. The store mirrors on its own writes; the
// watcher covers the gap where another process (or a human with an
// editor) updates the primary while the dashboard keeps reading the
// mirror.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the primary usage document and copies it to the mirror
// path whenever it changes.
type Watcher struct {
	primary string
	mirror  string
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher for the given primary and mirror paths.
func New(primary, mirror string) (*Watcher, error) {
	if primary == "" || mirror == "" {
		return nil, fmt.Errorf("primary and mirror paths are required")
	}
	return &Watcher{
		primary: primary,
		mirror:  mirror,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It syncs once immediately so a mirror that fell
// behind while the watcher was down catches up before the first event.
func (w *Watcher) Start() error {
	if err := w.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: initial sync: %v\n", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the containing directory, not the file: writers that replace
	// the file would otherwise silently drop a watch registered on the
	// file itself.
	dir := filepath.Dir(w.primary)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.primary) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// The first event can fire mid-write; give the writer a
			// moment to finish before copying.
			time.Sleep(100 * time.Millisecond)
			if err := w.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "watcher: sync error: %v\n", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)
		case <-w.stopCh:
			return
		}
	}
}

// Sync copies the primary document to the mirror path.
func (w *Watcher) Sync() error {
	data, err := os.ReadFile(w.primary)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.primary, err)
	}
	if err := os.MkdirAll(filepath.Dir(w.mirror), 0755); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}
	if err := os.WriteFile(w.mirror, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.mirror, err)
	}
	return nil
}

// Stop halts the watcher and performs a final sync so the mirror is
// current when the process exits.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()

	if err := w.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: final sync: %v\n", err)
	}
	return nil
}

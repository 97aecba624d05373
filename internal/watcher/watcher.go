// Package watcher re-runs a callback whenever a parameter file changes on
// disk. It backs `provenact validate --watch`, letting a parameter file be
// edited until it passes validation without re-invoking the CLI.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses editor save bursts (write + chmod + rename) into a
// single callback invocation.
const debounce = 200 * time.Millisecond

// Watcher invokes a callback when a watched file changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	onFire func()

	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a watcher for path. Editors often replace files instead of
// writing in place, so the parent directory is watched and events are
// filtered to the target path.
func New(path string, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher: onChange callback cannot be nil")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: failed to resolve path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		fsw:    fsw,
		path:   abs,
		onFire: onChange,
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins dispatching change events. It returns immediately; the
// callback runs on the watcher's own goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerCh:
			w.onFire()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop halts event dispatch and releases the underlying watcher. Safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

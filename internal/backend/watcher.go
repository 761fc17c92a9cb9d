package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalog Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend reload.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher reloads the catalog file whenever it changes on disk and publishes
// the result as events.
type Watcher struct {
	path     string
	interval time.Duration
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events    chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher starts watching path. An initial event carrying the current
// catalog is emitted before any change notifications. Reloads are spaced at
// least interval apart.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("backend: resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("backend: create watcher: %w", err)
	}
	// Watch the parent so a replace-by-rename is still observed.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("backend: watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
	w.closeFS()
}

// Wait blocks until the watcher goroutine has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) closeFS() {
	w.closeOnce.Do(func() {
		if err := w.fs.Close(); err != nil {
			logging.Error(fmt.Errorf("backend: watcher close: %w", err))
		}
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.closeFS()

	throttle := newThrottle(w.interval)

	emit := func() bool {
		if throttle.wait(w.ctx) != nil {
			return false
		}
		data, err := catalog.Load(w.path)
		evt := Event{Kind: KindCatalog, Err: err}
		if err == nil {
			evt.Data = data
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("backend: watch %s: %w", w.path, err))
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) && !evt.Has(fsnotify.Remove) {
				continue
			}
			w.drain()
			if !emit() {
				return
			}
		}
	}
}

// drain discards queued notifications for the same burst of writes.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

package app

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a document when its file changes on disk.
//
// The directory is watched rather than the file, so editors that save by
// writing a new file and renaming it over the old one are seen too.
type Watcher struct {
	doc      *Document
	log      *Logger
	target   string
	delay    time.Duration
	onReload func(err error)

	fsw       *fsnotify.Watcher
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithReloadHook sets a function called after every reload attempt with
// its result. It runs on the watcher goroutine.
func WithReloadHook(fn func(err error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher starts watching doc's file.
func NewWatcher(doc *Document, log *Logger, opts ...WatcherOption) (*Watcher, error) {
	path := doc.Path()
	if path == "" {
		return nil, NewOperationError("watch", "", ErrNoPath)
	}
	if log == nil {
		log = NullLogger
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewOperationError("watch", path, err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, NewOperationError("watch", path, err)
	}

	w := &Watcher{
		doc:     doc,
		log:     log.WithComponent("watcher"),
		target:  filepath.Clean(path),
		delay:   DefaultDebounce,
		fsw:     fsw,
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var settle <-chan time.Time
	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				settle = time.After(w.delay)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)

		case <-settle:
			settle = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.doc.Reload(false)
	switch {
	case err == nil:
		w.log.Debug("reloaded %s", w.target)
	case errors.Is(err, ErrUnsavedChanges):
		w.log.Warn("%s changed on disk; keeping unsaved changes", w.target)
	default:
		w.log.Error("reload failed: %v", err)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		w.wg.Wait()
		err = w.fsw.Close()
	})
	return err
}

// Package watcher delivers debounced file-change events for watch mode.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

const defaultDebounce = 300 * time.Millisecond

type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	debounce time.Duration
	closed   bool
}

type Option func(*Watcher)

// WithDebounce tunes the quiet period after a burst of events. Editors often
// produce several writes per save; only the last one matters.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &domain.OpError{
			Op:   "watcher.new",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	w := &Watcher{fsw: fsw, debounce: defaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

var _ ports.FileWatcher = (*Watcher)(nil)

// Watch starts watching dirs and returns a channel of changed file paths.
// The channel closes when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, dirs []string) (<-chan string, error) {
	for _, d := range dirs {
		if err := w.fsw.Add(d); err != nil {
			return nil, &domain.OpError{
				Op:   "watcher.add",
				Kind: domain.KindNotFound,
				Path: d,
				Err:  err,
			}
		}
	}

	out := make(chan string)
	go w.loop(ctx, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, out chan<- string) {
	defer close(out)

	pending := map[string]struct{}{}
	var flushAt <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending[ev.Name] = struct{}{}
			flushAt = time.After(w.debounce)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// fsnotify errors are transient (overflow); keep watching.

		case <-flushAt:
			for p := range pending {
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
			pending = map[string]struct{}{}
			flushAt = nil
		}
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

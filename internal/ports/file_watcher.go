package ports

import "context"

// FileWatcher reports changed files under a set of directories. Implementations
// are expected to debounce editor save bursts; Events delivers absolute paths.
type FileWatcher interface {
	Watch(ctx context.Context, dirs []string) (<-chan string, error)
	Close() error
}

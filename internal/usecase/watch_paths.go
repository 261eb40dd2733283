package usecase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

// WatchPaths re-lints files as they change on disk.
type WatchPaths struct {
	watcher ports.FileWatcher
	lint    *LintPaths
}

func NewWatchPaths(watcher ports.FileWatcher, lint *LintPaths) *WatchPaths {
	return &WatchPaths{watcher: watcher, lint: lint}
}

// Execute blocks until ctx is cancelled, invoking onFile for every re-linted
// file. Directories under root are watched recursively (dot-directories and
// the reports dir are skipped).
func (uc *WatchPaths) Execute(ctx context.Context, root string, skipDirs []string, onFile func(domain.FileReport)) error {
	dirs, err := watchableDirs(root, skipDirs)
	if err != nil {
		return err
	}

	events, err := uc.watcher.Watch(ctx, dirs)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if !uc.lint.Matches(path) {
				continue
			}
			fr, err := uc.lint.LintFile(ctx, path)
			if err != nil {
				return err
			}
			onFile(fr)
		}
	}
}

func watchableDirs(root string, skip []string) ([]string, error) {
	skipSet := map[string]bool{}
	for _, s := range skip {
		skipSet[s] = true
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || skipSet[d.Name()]) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "watch.dirs",
			Kind: domain.KindExecution,
			Path: root,
			Err:  err,
		}
	}
	return dirs, nil
}

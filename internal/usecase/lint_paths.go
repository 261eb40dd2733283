package usecase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
	"github.com/dmarins/paslint/internal/rules"
)

// LintPaths scans a set of files or directories and evaluates the rule
// engine against every matching source file.
type LintPaths struct {
	scanner ports.SourceScanner
	engine  *rules.Engine

	extensions []string
	exclude    []string
	jobs       int
}

type LintOption func(*LintPaths)

// WithJobs bounds scan parallelism. Values <= 0 mean GOMAXPROCS.
func WithJobs(n int) LintOption {
	return func(uc *LintPaths) { uc.jobs = n }
}

// WithExclude sets glob patterns (slash-separated, ** supported) matched
// against paths relative to the lint root.
func WithExclude(patterns []string) LintOption {
	return func(uc *LintPaths) { uc.exclude = patterns }
}

// WithExtensions overrides the file extensions considered source files.
func WithExtensions(exts []string) LintOption {
	return func(uc *LintPaths) { uc.extensions = exts }
}

func NewLintPaths(scanner ports.SourceScanner, engine *rules.Engine, opts ...LintOption) *LintPaths {
	uc := &LintPaths{
		scanner:    scanner,
		engine:     engine,
		extensions: domain.DefaultConfig().Paths.Extensions,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute lints paths (files or directories) and returns the aggregate
// report. Paths are resolved relative to root; an empty paths slice lints
// the whole root. No matching files is not an error.
func (uc *LintPaths) Execute(ctx context.Context, root string, paths []string) (domain.Report, error) {
	files, err := uc.expand(root, paths)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		WorkspaceRoot: root,
		StartedAt:     time.Now(),
		Files:         make([]domain.FileReport, len(files)),
	}

	jobs := uc.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Files[i] = uc.lintFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Report{}, err
	}

	// Walk order is already sorted, but files passed explicitly may not be.
	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	report.EndedAt = time.Now()
	return report, nil
}

// LintFile lints a single file, bypassing path expansion. Used by watch mode.
func (uc *LintPaths) LintFile(ctx context.Context, path string) (domain.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileReport{}, err
	}
	return uc.lintFile(path), nil
}

// Matches reports whether path has one of the configured extensions.
func (uc *LintPaths) Matches(path string) bool {
	return hasExtension(path, uc.extensions)
}

func (uc *LintPaths) lintFile(path string) domain.FileReport {
	unit, err := uc.scanner.Scan(path)
	if err != nil {
		return domain.FileReport{
			Path:    path,
			Skipped: true,
			Reason:  err.Error(),
		}
	}
	return domain.FileReport{
		Path:       path,
		Violations: uc.engine.Evaluate(unit),
	}
}

func (uc *LintPaths) expand(root string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{root}
	}

	seen := map[string]bool{}
	var files []string

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "lint.expand",
				Kind: domain.KindNotFound,
				Path: p,
				Err:  err,
			}
		}

		if !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel := relSlash(root, path)
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != p {
					return filepath.SkipDir
				}
				if matchAny(uc.exclude, rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if !hasExtension(path, uc.extensions) {
				return nil
			}
			if matchAny(uc.exclude, rel) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, &domain.OpError{
				Op:   "lint.expand",
				Kind: domain.KindExecution,
				Path: p,
				Err:  err,
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// matchAny matches a slash-separated relative path against exclude globs.
// Patterns support "**" as "any number of path segments".
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matchGlob(strings.Split(p, "/"), strings.Split(rel, "/")) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}
	if pattern[0] == "**" {
		// "**" swallows zero or more segments.
		for i := 0; i <= len(segs); i++ {
			if matchGlob(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchGlob(pattern[1:], segs[1:])
}

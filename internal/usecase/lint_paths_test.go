package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/scanner"
	"github.com/dmarins/paslint/internal/rules"
)

func newEngine(t *testing.T) *rules.Engine {
	t.Helper()
	e, err := rules.NewEngine(domain.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func unitNamed(name string) string {
	src := "unit " + name + ";\n// keeps density above threshold\ninterface\nimplementation\nend.\n"
	return src
}

func TestExecute_LintsWholeRootSorted(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Zeta.pas":    unitNamed("Zeta"),
		"src/Alpha.pas":   unitNamed("Alpha"),
		"src/notes.txt":   "not source",
		"vendor/Lib.pas":  unitNamed("Lib"),
		".hidden/Bad.pas": unitNamed("Bad"),
	})

	uc := NewLintPaths(scanner.New(), newEngine(t),
		WithExclude([]string{"vendor/**"}),
	)

	report, err := uc.Execute(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(report.Files) != 2 {
		t.Fatalf("expected 2 files, got %+v", report.Files)
	}
	// Deterministic path order regardless of walk interleaving.
	if filepath.Base(report.Files[0].Path) != "Alpha.pas" || filepath.Base(report.Files[1].Path) != "Zeta.pas" {
		t.Fatalf("unexpected order: %s, %s", report.Files[0].Path, report.Files[1].Path)
	}
	for _, fr := range report.Files {
		if len(fr.Violations) != 0 {
			t.Fatalf("clean units should pass: %+v", fr)
		}
	}
}

func TestExecute_EmptyRootSucceeds(t *testing.T) {
	root := t.TempDir()

	uc := NewLintPaths(scanner.New(), newEngine(t))
	report, err := uc.Execute(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(report.Files) != 0 {
		t.Fatalf("expected empty report, got %+v", report.Files)
	}
	if report.Failed(domain.SeverityInfo) {
		t.Fatalf("empty report never fails")
	}
}

func TestExecute_ExplicitPathsAndDedupe(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Orders.pas": unitNamed("Orders"),
	})

	uc := NewLintPaths(scanner.New(), newEngine(t))
	report, err := uc.Execute(context.Background(), root, []string{
		"src/Orders.pas",
		filepath.Join(root, "src", "Orders.pas"), // same file, absolute
		"src",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected dedupe to 1 file, got %+v", report.Files)
	}
}

func TestExecute_MissingPath(t *testing.T) {
	root := t.TempDir()

	uc := NewLintPaths(scanner.New(), newEngine(t))
	_, err := uc.Execute(context.Background(), root, []string{"nope"})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestExecute_ViolationsAreFound(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Bad.pas": "unit Bad;\ninterface\ntype\n  order = class\n  end;\nimplementation\nend.\n",
	})

	uc := NewLintPaths(scanner.New(), newEngine(t), WithJobs(1))
	report, err := uc.Execute(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 file, got %+v", report.Files)
	}

	found := false
	for _, v := range report.Files[0].Violations {
		if v.Rule == "type-prefix" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected type-prefix violation, got %+v", report.Files[0].Violations)
	}
	if !report.Failed(domain.SeverityWarning) {
		t.Fatalf("report with warnings fails at warning")
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Orders.pas": unitNamed("Orders"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewLintPaths(scanner.New(), newEngine(t))
	_, err := uc.Execute(ctx, root, nil)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestMatches(t *testing.T) {
	uc := NewLintPaths(scanner.New(), newEngine(t))

	if !uc.Matches("src/Orders.pas") || !uc.Matches("app.DPR") {
		t.Fatalf("default extensions should match")
	}
	if uc.Matches("README.md") {
		t.Fatalf("md is not a source extension")
	}
}

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern string
		rel     string
		want    bool
	}{
		{"vendor/**", "vendor/pkg/Lib.pas", true},
		{"vendor/**", "vendor/", true},
		{"vendor/**", "src/Lib.pas", false},
		{"**/generated/**", "src/generated/Api.pas", true},
		{"*.inc", "Defs.inc", true},
		{"*.inc", "src/Defs.inc", false},
		{"**/*_gen.pas", "a/b/Api_gen.pas", true},
	}
	for _, c := range cases {
		got := matchAny([]string{c.pattern}, c.rel)
		if got != c.want {
			t.Fatalf("matchAny(%q, %q) = %v, want %v", c.pattern, c.rel, got, c.want)
		}
	}
}

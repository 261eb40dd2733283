package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmarins/paslint/internal/domain"
)

func TestInit_CreatesLayout(t *testing.T) {
	root := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, p := range []string{
		"src",
		"reports",
		filepath.Join(".paslint", "logs"),
	} {
		info, err := os.Stat(filepath.Join(root, p))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing dir %s: %v", p, err)
		}
	}

	b, err := os.ReadFile(filepath.Join(root, "paslint.yaml"))
	if err != nil {
		t.Fatalf("paslint.yaml not written: %v", err)
	}
	if !strings.Contains(string(b), "paslint:") {
		t.Fatalf("unexpected config content:\n%s", b)
	}
	if strings.Contains(string(b), "{{") {
		t.Fatalf("template vars not rendered:\n%s", b)
	}

	if _, err := os.Stat(filepath.Join(root, "src", "Example.pas")); err != nil {
		t.Fatalf("sample unit not written: %v", err)
	}
}

func TestInit_DoesNotOverwriteWithoutForce(t *testing.T) {
	root := t.TempDir()
	custom := "paslint:\n  output:\n    fail_on: error\n"
	if err := os.WriteFile(filepath.Join(root, "paslint.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	b, _ := os.ReadFile(filepath.Join(root, "paslint.yaml"))
	if string(b) != custom {
		t.Fatalf("config was overwritten:\n%s", b)
	}

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, true); err != nil {
		t.Fatalf("Init force: %v", err)
	}
	b, _ = os.ReadFile(filepath.Join(root, "paslint.yaml"))
	if string(b) == custom {
		t.Fatalf("force should overwrite templates")
	}
}

func TestEnsureGitignore(t *testing.T) {
	root := t.TempDir()

	if err := ensureGitignore(root); err != nil {
		t.Fatalf("ensureGitignore: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"reports/", ".paslint/"} {
		if !containsLine(string(b), want) {
			t.Fatalf("missing %q in:\n%s", want, b)
		}
	}

	// Existing entries are not duplicated.
	if err := ensureGitignore(root); err != nil {
		t.Fatalf("ensureGitignore second run: %v", err)
	}
	b2, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
	if string(b2) != string(b) {
		t.Fatalf("gitignore changed on second run:\n%s", b2)
	}
}

func TestEnsureGitignore_AppendsMissingOnly(t *testing.T) {
	root := t.TempDir()
	existing := "bin/\nreports/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(existing), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := ensureGitignore(root); err != nil {
		t.Fatalf("ensureGitignore: %v", err)
	}

	b, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
	s := string(b)
	if !strings.HasPrefix(s, existing) {
		t.Fatalf("existing content not preserved:\n%s", s)
	}
	if strings.Count(s, "reports/") != 1 {
		t.Fatalf("reports/ duplicated:\n%s", s)
	}
	if !containsLine(s, ".paslint/") {
		t.Fatalf(".paslint/ not appended:\n%s", s)
	}
}

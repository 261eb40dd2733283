package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmarins/paslint/internal/domain"
)

type fakeInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.spec = spec
	f.force = force
	return nil
}

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func asModel(t *testing.T, tm tea.Model) model {
	t.Helper()
	m, ok := tm.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", tm)
	}
	return m
}

func TestUpdate_QuitFromHome(t *testing.T) {
	m := newModel(Deps{})

	_, cmd := m.Update(runes('q'))
	if cmd == nil {
		t.Fatalf("q on the home screen should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q on the home screen should quit, got %T", cmd())
	}
}

func TestUpdate_FilterInputOwnsKeys(t *testing.T) {
	m := newModel(Deps{})
	m.menu.SetSize(80, 20)

	next, _ := m.Update(runes('/'))
	m = asModel(t, next)
	if m.menu.FilterState() != list.Filtering {
		t.Fatalf("/ should start filtering, state = %v", m.menu.FilterState())
	}

	next, cmd := m.Update(runes('q'))
	m = asModel(t, next)
	if m.menu.FilterState() != list.Filtering {
		t.Fatalf("typing q into the filter should keep filtering, state = %v", m.menu.FilterState())
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("typing q into the filter must not quit")
		}
	}
}

func TestOpenMenuItem_InitFallsBackToWorkingDir(t *testing.T) {
	fi := &fakeInitializer{}
	m := newModel(Deps{WorkspaceInitializer: fi})

	next, _ := m.Update(workspaceRefreshedMsg{cwd: "/work/project", found: false})
	m = asModel(t, next)

	_, cmd := m.openMenuItem(menuItem{title: "Init Workspace"})
	if cmd == nil {
		t.Fatalf("expected an init command")
	}
	done, ok := cmd().(initWorkspaceDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("init failed: %+v", done)
	}
	if fi.spec.Root != "/work/project" {
		t.Fatalf("init root = %q, want the working directory", fi.spec.Root)
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarins/paslint/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenLint
	screenReports
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr   screen
	menu  list.Model
	toast string

	cwd            string
	workspaceFound bool
	workspaceRoot  string

	linting bool
	lintCh  chan lintDoneMsg
	report  domain.Report
	lintErr error

	reportRefs []domain.ReportRef
	reportsErr error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{"Lint", "Check the workspace sources against the active rules"},
		menuItem{"Reports", "Browse reports saved by previous runs"},
		menuItem{"Init Workspace", "Create paslint.yaml and the workspace layout here"},
		menuItem{"Quit", "Exit paslint"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "paslint"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.err != nil && !domain.IsKind(msg.err, domain.KindNotFound) {
			m.toast = userMessage(msg.err)
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case lintDoneMsg:
		m.linting = false
		m.lintCh = nil
		m.report = msg.report
		m.lintErr = msg.err
		if msg.err != nil {
			m.toast = userMessage(msg.err)
		}
		return m, nil

	case reportsLoadedMsg:
		m.reportRefs = msg.refs
		m.reportsErr = msg.err
		if msg.err != nil {
			m.toast = userMessage(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		// While the filter input is active it owns the keyboard, so a
		// search containing "q" or "r" stays typeable.
		if m.scr == screenHome && m.menu.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			m.toast = ""
			return m, nil

		case "enter":
			if m.scr == screenHome {
				it, ok := m.menu.SelectedItem().(menuItem)
				if !ok {
					return m, nil
				}
				return m.openMenuItem(it)
			}

		case "r":
			if m.scr == screenLint && !m.linting {
				return m.startLint()
			}

		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				m.toast = ""
				return m, nil
			}
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) openMenuItem(it menuItem) (tea.Model, tea.Cmd) {
	switch {
	case strings.EqualFold(it.title, "Quit"):
		return m, tea.Quit

	case strings.EqualFold(it.title, "Lint"):
		return m.startLint()

	case strings.EqualFold(it.title, "Reports"):
		if !m.workspaceFound {
			m.toast = "No workspace found"
			return m, nil
		}
		m.scr = screenReports
		m.reportRefs = nil
		m.reportsErr = nil
		return m, cmdLoadReports(m.workspaceRoot)

	case strings.EqualFold(it.title, "Init Workspace"):
		root := m.workspaceRoot
		if root == "" {
			root = m.cwd
		}
		if root == "" {
			m.toast = "Working directory unknown"
			return m, nil
		}
		return m, cmdInitWorkspaceHere(m.deps, root)
	}
	return m, nil
}

func (m model) startLint() (tea.Model, tea.Cmd) {
	if !m.workspaceFound {
		m.toast = "No workspace found"
		return m, nil
	}

	m.scr = screenLint
	m.linting = true
	m.lintErr = nil
	m.report = domain.Report{}

	ch, cmd := startLintAsync(m.deps, m.workspaceRoot)
	m.lintCh = ch
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("paslint") + "\n" +
		m.theme.Subtitle.Render("Style checker for Object Pascal code") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with Init Workspace.",
		)
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Warning.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenLint:
		var body string
		switch {
		case m.linting:
			body = "Linting…"
		case m.lintErr != nil:
			body = m.theme.Error.Render(userMessage(m.lintErr))
		default:
			body = renderReport(m.report, m.theme)
		}
		card := m.theme.Card.Render(
			m.theme.Title.Render("Lint") + "\n\n" + body + "\n\n" +
				m.theme.Help.Render("r rerun • esc/b back • q home"),
		)
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + card)

	case screenReports:
		var body string
		if m.reportsErr != nil {
			body = m.theme.Error.Render(userMessage(m.reportsErr))
		} else {
			body = renderReportRefs(m.reportRefs)
		}
		card := m.theme.Card.Render(
			m.theme.Title.Render("Reports") + "\n\n" + body + "\n\n" +
				m.theme.Help.Render("esc/b back • q home"),
		)
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

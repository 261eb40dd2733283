package tui

import "github.com/dmarins/paslint/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type reportsLoadedMsg struct {
	root string
	refs []domain.ReportRef
	err  error
}

type lintDoneMsg struct {
	report domain.Report
	err    error
}

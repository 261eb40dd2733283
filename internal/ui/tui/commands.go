package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/reportstore"
	"github.com/dmarins/paslint/internal/infra/workspacefinder"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, true)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadReports(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return reportsLoadedMsg{root: root, err: err}
		}

		store := reportstore.NewJSONStore(root, cfg)

		refs, err := store.ListReports()
		return reportsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func listenLint(ch <-chan lintDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return lintDoneMsg{err: errors.New("lint channel closed")}
		}
		return msg
	}
}

func startLintAsync(deps Deps, workspaceRoot string) (chan lintDoneMsg, tea.Cmd) {
	ch := make(chan lintDoneMsg, 1)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("lint.start", "workspace", workspaceRoot, "debug", deps.Debug)

		if deps.RunLint == nil {
			ch <- lintDoneMsg{err: errors.New("RunLint is nil")}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, execErr := deps.RunLint(ctx)

		if execErr != nil {
			log.Error("lint.failed", "err", execErr)
		} else {
			log.Info("lint.ok",
				"files", len(report.Files),
				"violations", report.ViolationCount(),
			)
		}

		if deps.Debug {
			for _, fr := range report.Files {
				log.Debug("lint.file",
					"path", fr.Path,
					"violations", len(fr.Violations),
					"skipped", fr.Skipped,
				)
			}
		}

		ch <- lintDoneMsg{report: report, err: execErr}
	}()

	return ch, listenLint(ch)
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/logger"
	"github.com/dmarins/paslint/internal/infra/scancache"
	"github.com/dmarins/paslint/internal/infra/watcher"
	"github.com/dmarins/paslint/internal/usecase"
)

func lintCmd() *cobra.Command {
	var workspace string
	var format string
	var failOn string
	var noSave bool
	var watch bool
	var jobs int

	c := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Pascal sources against the configured style rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			outFormat, err := resolveFormat(format, ws.cfg)
			if err != nil {
				return err
			}
			failSev, failEnabled, err := resolveFailOn(failOn, ws.cfg)
			if err != nil {
				return err
			}

			src := ws.scanner
			if watch {
				// Watch mode re-scans on every event; the cache keeps
				// unchanged files from being lexed twice.
				src = scancache.New(src)
			}

			uc := usecase.NewLintPaths(src, ws.engine,
				usecase.WithJobs(jobs),
				usecase.WithExclude(ws.cfg.Paths.Exclude),
				usecase.WithExtensions(ws.cfg.Paths.Extensions),
			)

			report, err := uc.Execute(cmd.Context(), ws.root, args)
			if err != nil {
				return err
			}

			reportID := ""
			if !noSave && !watch {
				id, saveErr := ws.store.SaveReport(report)
				if saveErr != nil {
					logger.L().Warn("lint.save_failed", "err", saveErr)
				} else {
					reportID = id
				}
			}

			if err := printReport(os.Stdout, report, reportID, outFormat); err != nil {
				return err
			}

			if watch {
				return watchLoop(cmd, ws, uc)
			}

			if failEnabled && report.Failed(failSev) {
				totals := report.Totals()
				return fmt.Errorf("lint failed (%d error / %d warning / %d info)",
					totals[domain.SeverityError], totals[domain.SeverityWarning], totals[domain.SeverityInfo])
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json (default from paslint.yaml)")
	c.Flags().StringVar(&failOn, "fail-on", "", "Minimum severity that fails the run: error|warning|info|none")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a report artifact under reports/")
	c.Flags().BoolVar(&watch, "watch", false, "Re-lint files as they change (ctrl-c to stop)")
	c.Flags().IntVar(&jobs, "jobs", 0, "Scan parallelism (0 = number of CPUs)")
	return c
}

func watchLoop(cmd *cobra.Command, ws *workspaceCtx, uc *usecase.LintPaths) error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stdout, "watching %s (ctrl-c to stop)\n\n", ws.root)

	wuc := usecase.NewWatchPaths(w, uc)
	err = wuc.Execute(ctx, ws.root, []string{ws.cfg.Paths.ReportsDir}, func(fr domain.FileReport) {
		printPrettyFile(os.Stdout, fr)
	})
	if ctx.Err() != nil {
		// Interrupted by the user; a clean stop, not a failure.
		return nil
	}
	return err
}

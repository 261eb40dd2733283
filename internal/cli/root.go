package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/fsworkspace"
	"github.com/dmarins/paslint/internal/infra/logger"
	"github.com/dmarins/paslint/internal/infra/workspacefinder"
	"github.com/dmarins/paslint/internal/ui/tui"
	"github.com/dmarins/paslint/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "paslint",
		Short:        "paslint — style checker for Object Pascal code",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			finder := workspacefinder.NewFinder()

			logRoot := wd
			if root, ferr := finder.FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			deps := tui.Deps{
				WorkspaceLocator:     finder,
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				RunLint:              runLintForTUI,
				Logger:               logger.L(),
				Debug:                debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .paslint/logs/paslint.log")

	cmd.AddCommand(lintCmd())
	cmd.AddCommand(rulesCmd())
	cmd.AddCommand(checkDocCmd())
	cmd.AddCommand(reportsCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

// runLintForTUI loads the workspace fresh on every invocation so the TUI
// picks up config edits between runs.
func runLintForTUI(ctx context.Context) (domain.Report, error) {
	ws, err := loadWorkspace("")
	if err != nil {
		return domain.Report{}, err
	}

	uc := usecase.NewLintPaths(ws.scanner, ws.engine,
		usecase.WithExclude(ws.cfg.Paths.Exclude),
		usecase.WithExtensions(ws.cfg.Paths.Extensions),
	)
	return uc.Execute(ctx, ws.root, nil)
}

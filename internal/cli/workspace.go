package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/reportstore"
	"github.com/dmarins/paslint/internal/infra/scanner"
	"github.com/dmarins/paslint/internal/infra/workspacefinder"
	"github.com/dmarins/paslint/internal/ports"
	"github.com/dmarins/paslint/internal/rules"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	scanner ports.SourceScanner
	engine  *rules.Engine
	store   ports.ReportStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	engine, err := rules.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	store := reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true))

	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		scanner: scanner.New(),
		engine:  engine,
		store:   store,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `paslint init`): %w", wd, err)
	}
	return root, nil
}

func resolveFailOn(flag string, cfg domain.Config) (domain.Severity, bool, error) {
	v := strings.TrimSpace(flag)
	if v == "" {
		v = cfg.Output.FailOn
	}
	if v == "none" {
		return "", false, nil
	}
	sev, ok := domain.ParseSeverity(v)
	if !ok {
		return "", false, fmt.Errorf("unsupported fail-on %q (expected error|warning|info|none)", v)
	}
	return sev, true, nil
}

func resolveFormat(flag string, cfg domain.Config) (string, error) {
	v := strings.TrimSpace(flag)
	if v == "" {
		v = cfg.Output.Format
	}
	switch v {
	case "pretty", "json":
		return v, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected pretty|json)", v)
	}
}

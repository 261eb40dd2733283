package tui

import (
	"context"
	"log/slog"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	RunLint func(context.Context) (domain.Report, error)

	Logger *slog.Logger
	Debug  bool
}

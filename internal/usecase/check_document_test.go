package usecase

import (
	"context"
	"testing"

	"github.com/dmarins/paslint/internal/domain"
)

type fakeDocChecker struct {
	reports map[string]domain.FileReport
	err     error
}

func (f *fakeDocChecker) CheckDocument(path string) (domain.FileReport, error) {
	if f.err != nil {
		return domain.FileReport{}, f.err
	}
	fr, ok := f.reports[path]
	if !ok {
		return domain.FileReport{}, &domain.OpError{
			Op:   "mdcheck.read",
			Kind: domain.KindNotFound,
			Path: path,
		}
	}
	return fr, nil
}

func TestCheckDocument_CollectsFileReports(t *testing.T) {
	checker := &fakeDocChecker{reports: map[string]domain.FileReport{
		"docs/guide.md": {
			Path: "docs/guide.md",
			Violations: []domain.Violation{
				{Rule: "doc-empty-section", Severity: domain.SeverityWarning},
			},
		},
	}}

	uc := NewCheckDocument(checker)
	report, err := uc.Execute(context.Background(), []string{"docs/guide.md", "docs/missing.md"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(report.Files) != 2 {
		t.Fatalf("expected 2 files, got %+v", report.Files)
	}
	if len(report.Files[0].Violations) != 1 {
		t.Fatalf("violations lost: %+v", report.Files[0])
	}
	if !report.Files[1].Skipped {
		t.Fatalf("missing documents are skipped, not fatal: %+v", report.Files[1])
	}
}

func TestCheckDocument_PropagatesOtherErrors(t *testing.T) {
	checker := &fakeDocChecker{err: &domain.OpError{
		Op:   "mdcheck.parse",
		Kind: domain.KindExecution,
	}}

	uc := NewCheckDocument(checker)
	_, err := uc.Execute(context.Background(), []string{"docs/guide.md"})
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected KindExecution, got: %v", err)
	}
}

func TestCheckDocument_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewCheckDocument(&fakeDocChecker{})
	_, err := uc.Execute(ctx, []string{"docs/guide.md"})
	if err == nil {
		t.Fatalf("expected context error")
	}
}

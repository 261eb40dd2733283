package usecase

import (
	"context"
	"time"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

// CheckDocument runs the document-structure checks over Markdown files.
type CheckDocument struct {
	checker ports.DocChecker
}

func NewCheckDocument(checker ports.DocChecker) *CheckDocument {
	return &CheckDocument{checker: checker}
}

func (uc *CheckDocument) Execute(ctx context.Context, paths []string) (domain.Report, error) {
	report := domain.Report{StartedAt: time.Now()}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return domain.Report{}, err
		}

		fr, err := uc.checker.CheckDocument(p)
		if err != nil {
			if domain.IsKind(err, domain.KindNotFound) {
				report.Files = append(report.Files, domain.FileReport{
					Path:    p,
					Skipped: true,
					Reason:  err.Error(),
				})
				continue
			}
			return domain.Report{}, err
		}
		report.Files = append(report.Files, fr)
	}

	report.EndedAt = time.Now()
	return report, nil
}

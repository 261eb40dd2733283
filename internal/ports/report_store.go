package ports

import "github.com/dmarins/paslint/internal/domain"

// ReportStore persists lint reports for later inspection.
type ReportStore interface {
	SaveReport(report domain.Report) (id string, err error)
	ListReports() ([]domain.ReportRef, error)
	LoadReport(id string) (domain.ReportArtifact, error)
}

package ports

import "github.com/dmarins/paslint/internal/domain"

// DocChecker validates the structure of a guide document (Markdown).
type DocChecker interface {
	CheckDocument(path string) (domain.FileReport, error)
}

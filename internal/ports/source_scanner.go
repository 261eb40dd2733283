package ports

import "github.com/dmarins/paslint/internal/domain"

// SourceScanner turns a source file into its structural representation.
type SourceScanner interface {
	Scan(path string) (domain.SourceUnit, error)
	ScanBytes(path string, src []byte) domain.SourceUnit
}

// Package scanner turns Object Pascal source into the structural
// representation the rule engine consumes. It is a lexical pass with just
// enough declaration parsing for naming and comment rules; it performs no
// semantic analysis.
package scanner

import (
	"os"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

var _ ports.SourceScanner = (*Scanner)(nil)

func (s *Scanner) Scan(path string) (domain.SourceUnit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceUnit{}, &domain.OpError{
			Op:   "scanner.scan",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return s.ScanBytes(path, b), nil
}

// ScanBytes never fails: lexical problems are reported through
// SourceUnit.ScanErrors and the unit carries whatever was recognized.
func (s *Scanner) ScanBytes(path string, src []byte) domain.SourceUnit {
	lx := newLexer(path, src)
	lx.run()

	unit := domain.SourceUnit{
		Path:         path,
		Comments:     lx.comments,
		LineLengths:  lineLengths(src),
		ScanErrors:   lx.errs,
		CodeLines:    countTrue(lx.codeLines),
		CommentLines: countTrue(lx.commentLines),
	}

	p := newParser(lx.tokens, lx.commentEndLines)
	p.run()

	unit.UnitName = p.unitName
	unit.Decls = p.decls
	return unit
}

func lineLengths(src []byte) []int {
	var out []int
	n := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			out = append(out, n)
			n = 0
			continue
		}
		if c == '\r' {
			continue
		}
		// count runes, not bytes
		if c&0xC0 != 0x80 {
			n++
		}
	}
	if n > 0 || len(src) == 0 {
		out = append(out, n)
	}
	return out
}

func countTrue(m map[int]bool) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Package mdcheck validates the structure of Markdown documents: closed code
// fences, headings with bodies, and Pascal snippets that actually lex.
package mdcheck

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

// Rule ids reported by the document checker.
const (
	RuleUnclosedFence domain.RuleID = "doc-unclosed-fence"
	RuleEmptySection  domain.RuleID = "doc-empty-section"
	RuleSnippetParse  domain.RuleID = "doc-snippet-parse"
)

// pascalInfoTags are the fence info strings treated as Pascal snippets.
var pascalInfoTags = map[string]bool{
	"pascal":       true,
	"delphi":       true,
	"objectpascal": true,
	"pas":          true,
}

type Checker struct {
	md      goldmark.Markdown
	scanner ports.SourceScanner
}

// New builds a checker. The scanner is used to lex Pascal snippets; pass nil
// to skip snippet checks.
func New(scanner ports.SourceScanner) *Checker {
	return &Checker{
		md:      goldmark.New(),
		scanner: scanner,
	}
}

var _ ports.DocChecker = (*Checker)(nil)

func (c *Checker) CheckDocument(path string) (domain.FileReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return domain.FileReport{}, &domain.OpError{
			Op:   "mdcheck.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	report := domain.FileReport{Path: path}
	report.Violations = append(report.Violations, c.checkFences(path, src)...)

	doc := c.md.Parser().Parse(text.NewReader(src))
	lines := lineStarts(src)

	report.Violations = append(report.Violations, c.checkSections(path, src, doc, lines)...)
	report.Violations = append(report.Violations, c.checkSnippets(path, src, doc, lines)...)

	domain.SortViolations(report.Violations)
	return report, nil
}

// checkFences is a raw line pass: CommonMark silently closes a trailing fence
// at EOF, so an unmatched fence is invisible to the AST.
func (c *Checker) checkFences(path string, src []byte) []domain.Violation {
	var out []domain.Violation

	openLine := 0
	var openMarker byte
	for i, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		marker, ok := fenceMarker(trimmed)
		if !ok {
			continue
		}
		if openLine == 0 {
			openLine = i + 1
			openMarker = marker
			continue
		}
		// A closing fence must use the same marker character.
		if marker == openMarker {
			openLine = 0
		}
	}

	if openLine != 0 {
		out = append(out, domain.Violation{
			Rule:     RuleUnclosedFence,
			Severity: domain.SeverityError,
			Path:     path,
			Pos:      domain.Position{Line: openLine, Column: 1},
			Message:  "code fence is never closed",
		})
	}
	return out
}

func fenceMarker(line string) (byte, bool) {
	if strings.HasPrefix(line, "```") {
		return '`', true
	}
	if strings.HasPrefix(line, "~~~") {
		return '~', true
	}
	return 0, false
}

// checkSections requires every heading to be followed by at least one
// non-heading block before the next heading of the same or higher level.
func (c *Checker) checkSections(path string, src []byte, doc ast.Node, lines []int) []domain.Violation {
	var out []domain.Violation

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}

		hasBody := false
		for sib := n.NextSibling(); sib != nil; sib = sib.NextSibling() {
			if nh, ok := sib.(*ast.Heading); ok {
				if nh.Level <= h.Level {
					break
				}
				// A subheading counts as body for its parent section.
				hasBody = true
				break
			}
			hasBody = true
			break
		}

		if !hasBody {
			out = append(out, domain.Violation{
				Rule:     RuleEmptySection,
				Severity: domain.SeverityWarning,
				Path:     path,
				Pos:      domain.Position{Line: nodeLine(h, lines), Column: 1},
				Message:  fmt.Sprintf("heading %q has no body text", headingText(h, src)),
			})
		}
	}
	return out
}

// checkSnippets lexes fenced blocks tagged as Pascal and reports snippets
// with unterminated strings or comments.
func (c *Checker) checkSnippets(path string, src []byte, doc ast.Node, lines []int) []domain.Violation {
	if c.scanner == nil {
		return nil
	}

	var out []domain.Violation
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fcb.Language(src)))
		if !pascalInfoTags[lang] {
			return ast.WalkContinue, nil
		}

		var snippet strings.Builder
		segs := fcb.Lines()
		startLine := 0
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			if i == 0 {
				startLine = offsetLine(seg.Start, lines)
			}
			snippet.Write(seg.Value(src))
		}

		unit := c.scanner.ScanBytes(path, []byte(snippet.String()))
		for _, se := range unit.ScanErrors {
			out = append(out, domain.Violation{
				Rule:     RuleSnippetParse,
				Severity: domain.SeverityError,
				Path:     path,
				Pos:      domain.Position{Line: startLine + se.Pos.Line - 1, Column: se.Pos.Column},
				Message:  "snippet does not lex: " + se.Message,
			})
		}
		return ast.WalkContinue, nil
	})
	return out
}

// lineStarts returns the byte offset of the start of each line.
func lineStarts(src []byte) []int {
	out := []int{0}
	for i, b := range src {
		if b == '\n' {
			out = append(out, i+1)
		}
	}
	return out
}

// offsetLine maps a byte offset to a 1-based line number.
func offsetLine(off int, lines []int) int {
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > off })
	return i
}

func nodeLine(n ast.Node, lines []int) int {
	segs := n.Lines()
	if segs.Len() == 0 {
		return 1
	}
	return offsetLine(segs.At(0).Start, lines)
}

func headingText(h *ast.Heading, src []byte) []byte {
	segs := h.Lines()
	if segs.Len() == 0 {
		return nil
	}
	seg := segs.At(0)
	return seg.Value(src)
}

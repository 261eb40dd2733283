package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmarins/paslint/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderReport(report domain.Report, t Theme) string {
	var b strings.Builder

	totals := report.Totals()
	summary := fmt.Sprintf("%d files, %d errors, %d warnings, %d info",
		len(report.Files),
		totals[domain.SeverityError],
		totals[domain.SeverityWarning],
		totals[domain.SeverityInfo],
	)
	if report.ViolationCount() == 0 {
		b.WriteString(t.OK.Render("✓ clean"))
	} else {
		b.WriteString(t.Error.Render("✗ " + summary))
	}
	b.WriteString("\n\n")

	for _, fr := range report.Files {
		if fr.Skipped {
			b.WriteString(t.Warning.Render("[SKIP] " + fr.Path))
			b.WriteString("\n  ")
			b.WriteString(fr.Reason)
			b.WriteString("\n")
			continue
		}
		if len(fr.Violations) == 0 {
			continue
		}

		b.WriteString(fr.Path)
		b.WriteString("\n")
		for _, v := range fr.Violations {
			sev := string(v.Severity)
			switch v.Severity {
			case domain.SeverityError:
				sev = t.Error.Render(sev)
			case domain.SeverityWarning:
				sev = t.Warning.Render(sev)
			}
			b.WriteString(fmt.Sprintf("  %d:%d  %s  %s  %s\n",
				v.Pos.Line, v.Pos.Column, sev, v.Rule, clampString(v.Message, 80)))
		}
	}

	return b.String()
}

func renderReportRefs(refs []domain.ReportRef) string {
	if len(refs) == 0 {
		return "(no saved reports)"
	}

	var b strings.Builder
	for _, ref := range refs {
		b.WriteString("  - ")
		b.WriteString(ref.ID)
		b.WriteString("  ")
		b.WriteString(fmt.Sprintf("%d findings", ref.Findings))
		b.WriteString("\n")
	}
	return b.String()
}

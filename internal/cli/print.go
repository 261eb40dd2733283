package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmarins/paslint/internal/domain"
)

func printReport(w io.Writer, report domain.Report, reportID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// Include reportID (optional) as a wrapper to avoid changing the domain model.
		payload := map[string]any{
			"report_id": reportID,
			"report":    report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, reportID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.Report, reportID string) {
	total := report.EndedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.EndedAt.IsZero() {
		total = 0
	}

	if report.WorkspaceRoot != "" {
		fmt.Fprintf(w, "Workspace: %s\n", report.WorkspaceRoot)
	}
	fmt.Fprintf(w, "Files:     %d\n", len(report.Files))
	fmt.Fprintf(w, "Duration:  %s\n", total.Round(time.Millisecond))
	if reportID != "" {
		fmt.Fprintf(w, "Report ID: %s\n", reportID)
	}
	fmt.Fprintln(w)

	for _, fr := range report.Files {
		printPrettyFile(w, fr)
	}

	totals := report.Totals()
	fmt.Fprintf(w, "Summary: %d error / %d warning / %d info\n",
		totals[domain.SeverityError], totals[domain.SeverityWarning], totals[domain.SeverityInfo])
}

func printPrettyFile(w io.Writer, fr domain.FileReport) {
	if fr.Skipped {
		fmt.Fprintf(w, "- [SKIP] %s\n", fr.Path)
		fmt.Fprintf(w, "  reason: %s\n\n", fr.Reason)
		return
	}

	mark := "✓"
	if len(fr.Violations) > 0 {
		mark = "✗"
	}
	fmt.Fprintf(w, "- [%s] %s (%d finding(s))\n", mark, fr.Path, len(fr.Violations))

	for _, v := range fr.Violations {
		fmt.Fprintf(w, "  %d:%d  %-8s %s  %s\n", v.Pos.Line, v.Pos.Column, v.Severity, v.Rule, v.Message)
	}
	fmt.Fprintln(w)
}

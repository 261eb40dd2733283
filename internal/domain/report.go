package domain

import "time"

// FileReport collects the findings for one source file.
type FileReport struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`

	// Skipped is set when the file could not be read; Violations is empty
	// and Reason explains why.
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Failed reports whether the file carries a violation at or above min.
func (fr FileReport) Failed(min Severity) bool {
	for _, v := range fr.Violations {
		if v.Severity.AtLeast(min) {
			return true
		}
	}
	return false
}

// Report is the outcome of linting a set of files.
type Report struct {
	WorkspaceRoot string    `json:"workspace_root,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`

	Files []FileReport `json:"files"`
}

// Totals counts violations per severity across all files.
func (r Report) Totals() map[Severity]int {
	out := map[Severity]int{}
	for _, f := range r.Files {
		for _, v := range f.Violations {
			out[v.Severity]++
		}
	}
	return out
}

// ViolationCount is the total number of findings in the report.
func (r Report) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Violations)
	}
	return n
}

// Failed reports whether any file fails at or above min. SeverityNone-like
// behavior (never fail) is expressed by the caller skipping the check.
func (r Report) Failed(min Severity) bool {
	for _, f := range r.Files {
		if f.Failed(min) {
			return true
		}
	}
	return false
}

// ReportArtifact is a persisted report for later inspection and querying.
type ReportArtifact struct {
	ID string `json:"id"`

	WorkspaceRoot string    `json:"workspace_root,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`

	Files []FileReport `json:"files"`
}

// ArtifactFromReport pairs a report with its assigned id.
func ArtifactFromReport(id string, r Report) ReportArtifact {
	return ReportArtifact{
		ID:            id,
		WorkspaceRoot: r.WorkspaceRoot,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		Files:         r.Files,
	}
}

// ReportRef is a lightweight reference to a stored report artifact.
type ReportRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	StartedAt time.Time `json:"started_at"`
	Findings  int       `json:"findings"`
}

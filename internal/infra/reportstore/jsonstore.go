package reportstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
	"github.com/google/uuid"
)

const defaultReportsDir = "reports"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	writeIndex     bool
	now            func() time.Time
	newID          func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDSuffix overrides the random id suffix generator, useful for tests.
func WithIDSuffix(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ReportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: dir,
		writeIndex:     false,
		now:            time.Now,
		newID: func() string {
			return uuid.NewString()[:8]
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

func (s *JSONStore) SaveReport(report domain.Report) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := report.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	// Timestamp keeps listings sorted; the random suffix keeps two runs in
	// the same second from colliding.
	id := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), s.newID())
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	artifact := domain.ArtifactFromReport(id, report)
	if artifact.StartedAt.IsZero() {
		artifact.StartedAt = ts
	}

	b, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, artifact)
	}

	return id, nil
}

func (s *JSONStore) ListReports() ([]domain.ReportRef, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "reportstore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ReportRef
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		artifact, err := s.LoadReport(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}

		findings := 0
		for _, f := range artifact.Files {
			findings += len(f.Violations)
		}
		refs = append(refs, domain.ReportRef{
			ID:        artifact.ID,
			File:      e.Name(),
			StartedAt: artifact.StartedAt,
			Findings:  findings,
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (s *JSONStore) LoadReport(id string) (domain.ReportArtifact, error) {
	path := filepath.Join(s.rootDir, s.reportsDirName, id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ReportArtifact{}, &domain.OpError{
			Op:   "reportstore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var artifact domain.ReportArtifact
	if err := json.Unmarshal(b, &artifact); err != nil {
		return domain.ReportArtifact{}, &domain.OpError{
			Op:   "reportstore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return artifact, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, artifact domain.ReportArtifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		StartedAt time.Time `json:"started_at"`
		Files     int       `json:"files"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		StartedAt: artifact.StartedAt,
		Files:     len(artifact.Files),
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

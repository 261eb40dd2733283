package domain

// Config represents the paslint configuration loaded from paslint.yaml.
type Config struct {
	Paths  PathsConfig
	Output OutputConfig

	// Rules holds per-rule overrides keyed by rule id. Rules absent from
	// the map run with their registry defaults.
	Rules map[RuleID]RuleOverride
}

type PathsConfig struct {
	ReportsDir string
	Exclude    []string
	Extensions []string
}

type OutputConfig struct {
	Format string

	// FailOn is the minimum severity that makes a run exit non-zero.
	// "none" disables failure entirely.
	FailOn string
}

// RuleOverride is the raw per-rule section of paslint.yaml.
type RuleOverride struct {
	Enabled  *bool
	Severity string
	Params   map[string]any
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}

// DefaultConfig provides sane defaults if paslint.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ReportsDir: "reports",
			Extensions: []string{".pas", ".pp", ".dpr", ".inc"},
		},
		Output: OutputConfig{
			Format: "pretty",
			FailOn: string(SeverityWarning),
		},
		Rules: map[RuleID]RuleOverride{},
	}
}

package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/dmarins/paslint/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads paslint.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "paslint.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Paslint.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Paslint.Paths.ReportsDir
	}
	if len(y.Paslint.Paths.Exclude) > 0 {
		cfg.Paths.Exclude = y.Paslint.Paths.Exclude
	}
	if len(y.Paslint.Paths.Extensions) > 0 {
		cfg.Paths.Extensions = y.Paslint.Paths.Extensions
	}
	if y.Paslint.Output.Format != "" {
		cfg.Output.Format = y.Paslint.Output.Format
	}
	if y.Paslint.Output.FailOn != "" {
		cfg.Output.FailOn = y.Paslint.Output.FailOn
	}

	for id, ov := range y.Paslint.Rules {
		cfg.Rules[domain.RuleID(id)] = domain.RuleOverride{
			Enabled:  ov.Enabled,
			Severity: ov.Severity,
			Params:   ov.Params,
		}
	}

	return cfg, nil
}

type yamlConfig struct {
	Paslint struct {
		Paths struct {
			ReportsDir string   `yaml:"reports_dir"`
			Exclude    []string `yaml:"exclude"`
			Extensions []string `yaml:"extensions"`
		} `yaml:"paths"`

		Output struct {
			Format string `yaml:"format"`
			FailOn string `yaml:"fail_on"`
		} `yaml:"output"`

		Rules map[string]yamlRuleOverride `yaml:"rules"`
	} `yaml:"paslint"`
}

type yamlRuleOverride struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity string         `yaml:"severity"`
	Params   map[string]any `yaml:"params"`
}

// Package rules holds the style rule registry and the engine that evaluates
// rules against scanned source units.
package rules

import (
	"fmt"

	"github.com/dmarins/paslint/internal/domain"
)

// ScanErrorRule is the reserved id used to surface scanner diagnostics as
// findings. It cannot be disabled or reconfigured.
const ScanErrorRule domain.RuleID = "scan-error"

// CheckFunc evaluates one rule against a source unit.
type CheckFunc func(unit domain.SourceUnit, st domain.RuleSettings) []domain.Violation

// Rule pairs rule metadata with its check.
type Rule struct {
	Meta  domain.RuleMeta
	Check CheckFunc
}

// Engine evaluates the enabled rules against source units.
type Engine struct {
	rules    []Rule
	settings map[domain.RuleID]domain.RuleSettings
}

// NewEngine builds an engine from the built-in registry with the overrides
// from cfg applied. Unknown rule ids in cfg are rejected so typos in
// paslint.yaml surface immediately.
func NewEngine(cfg domain.Config) (*Engine, error) {
	registry := builtin()

	known := make(map[domain.RuleID]bool, len(registry))
	for _, r := range registry {
		known[r.Meta.ID] = true
	}
	for id := range cfg.Rules {
		if !known[id] {
			return nil, &domain.OpError{
				Op:   "rules.configure",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("unknown rule %q", id),
			}
		}
	}

	settings := make(map[domain.RuleID]domain.RuleSettings, len(registry))
	for _, r := range registry {
		st := domain.RuleSettings{
			Enabled:  r.Meta.EnabledByDefault,
			Severity: r.Meta.DefaultSeverity,
			Params:   map[string]any{},
		}
		for k, v := range r.Meta.DefaultParams {
			st.Params[k] = v
		}

		ov, ok := cfg.Rules[r.Meta.ID]
		if ok {
			if ov.Enabled != nil {
				st.Enabled = *ov.Enabled
			}
			if ov.Severity != "" {
				sev, valid := domain.ParseSeverity(ov.Severity)
				if !valid {
					return nil, &domain.OpError{
						Op:   "rules.configure",
						Kind: domain.KindInvalidConfig,
						Err:  fmt.Errorf("rule %q: invalid severity %q", r.Meta.ID, ov.Severity),
					}
				}
				st.Severity = sev
			}
			for k, v := range ov.Params {
				st.Params[k] = v
			}
		}

		settings[r.Meta.ID] = st
	}

	return &Engine{rules: registry, settings: settings}, nil
}

// Evaluate runs every enabled rule against the unit and returns the findings
// sorted for deterministic output. Scanner diagnostics are always included.
func (e *Engine) Evaluate(unit domain.SourceUnit) []domain.Violation {
	var out []domain.Violation

	for _, se := range unit.ScanErrors {
		out = append(out, domain.Violation{
			Rule:     ScanErrorRule,
			Severity: domain.SeverityError,
			Path:     unit.Path,
			Pos:      se.Pos,
			Message:  se.Message,
		})
	}

	for _, r := range e.rules {
		st := e.settings[r.Meta.ID]
		if !st.Enabled {
			continue
		}
		for _, v := range r.Check(unit, st) {
			v.Rule = r.Meta.ID
			v.Severity = st.Severity
			v.Path = unit.Path
			out = append(out, v)
		}
	}

	domain.SortViolations(out)
	return out
}

// Rules lists the registry metadata in registration order.
func (e *Engine) Rules() []domain.RuleMeta {
	out := make([]domain.RuleMeta, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, r.Meta)
	}
	return out
}

// Settings returns the effective settings for a rule id.
func (e *Engine) Settings(id domain.RuleID) (domain.RuleSettings, bool) {
	st, ok := e.settings[id]
	return st, ok
}

func builtin() []Rule {
	return []Rule{
		typePrefixRule(),
		interfacePrefixRule(),
		exceptionPrefixRule(),
		pointerPrefixRule(),
		fieldPrefixRule(),
		paramPrefixRule(),
		pascalCaseRule(),
		booleanNameRule(),
		unitNameMatchRule(),
		maxLineLengthRule(),
		noEmptyCommentRule(),
		commentDensityRule(),
	}
}

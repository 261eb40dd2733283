package domain

import "sort"

// Severity classifies how serious a violation is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank orders severities so thresholds can be compared (info < warning < error).
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity validates a user-supplied severity string.
func ParseSeverity(v string) (Severity, bool) {
	switch Severity(v) {
	case SeverityInfo, SeverityWarning, SeverityError:
		return Severity(v), true
	default:
		return "", false
	}
}

// RuleID names a style rule ("type-prefix", "max-line-length", ...).
type RuleID string

// RuleMeta describes a rule for listings and documentation.
type RuleMeta struct {
	ID              RuleID
	Summary         string
	DefaultSeverity Severity

	// DefaultParams documents the tunable parameters and their defaults.
	// Empty for parameterless rules.
	DefaultParams map[string]any

	// EnabledByDefault is false for rules the guide marks as optional.
	EnabledByDefault bool
}

// RuleSettings is the effective per-rule configuration after merging
// paslint.yaml on top of the rule defaults.
type RuleSettings struct {
	Enabled  bool
	Severity Severity
	Params   map[string]any
}

// IntParam reads an integer parameter, tolerating YAML's int/float decoding.
func (s RuleSettings) IntParam(key string, def int) int {
	v, ok := s.Params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// FloatParam reads a float parameter.
func (s RuleSettings) FloatParam(key string, def float64) float64 {
	v, ok := s.Params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}

// BoolParam reads a boolean parameter.
func (s RuleSettings) BoolParam(key string, def bool) bool {
	v, ok := s.Params[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// StringsParam reads a list-of-strings parameter.
func (s RuleSettings) StringsParam(key string, def []string) []string {
	v, ok := s.Params[key]
	if !ok {
		return def
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, str)
		}
		return out
	default:
		return def
	}
}

// Violation is one finding produced by a rule against a source unit.
type Violation struct {
	Rule     RuleID   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Pos      Position `json:"pos"`
	Message  string   `json:"message"`
}

// SortViolations orders violations by path, line, column, then rule id so
// output is deterministic regardless of evaluation order.
func SortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.Rule < b.Rule
	})
}

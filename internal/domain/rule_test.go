package domain

import "testing"

func TestSeverityAtLeast(t *testing.T) {
	if !SeverityError.AtLeast(SeverityWarning) {
		t.Fatalf("error should be at least warning")
	}
	if !SeverityWarning.AtLeast(SeverityWarning) {
		t.Fatalf("warning should be at least warning")
	}
	if SeverityInfo.AtLeast(SeverityWarning) {
		t.Fatalf("info is below warning")
	}
}

func TestParseSeverity(t *testing.T) {
	if s, ok := ParseSeverity("warning"); !ok || s != SeverityWarning {
		t.Fatalf("expected warning, got %q ok=%v", s, ok)
	}
	if _, ok := ParseSeverity("critical"); ok {
		t.Fatalf("critical is not a severity")
	}
}

func TestRuleSettingsParams(t *testing.T) {
	s := RuleSettings{
		Params: map[string]any{
			"max":       120,
			"min_ratio": 0.25,
			"strict":    true,
			"prefixes":  []any{"Is", "Has"},
		},
	}

	if got := s.IntParam("max", 80); got != 120 {
		t.Fatalf("IntParam = %d, want 120", got)
	}
	if got := s.IntParam("missing", 80); got != 80 {
		t.Fatalf("IntParam default = %d, want 80", got)
	}
	if got := s.FloatParam("min_ratio", 0.1); got != 0.25 {
		t.Fatalf("FloatParam = %v, want 0.25", got)
	}
	if got := s.BoolParam("strict", false); !got {
		t.Fatalf("BoolParam = false, want true")
	}
	got := s.StringsParam("prefixes", nil)
	if len(got) != 2 || got[0] != "Is" || got[1] != "Has" {
		t.Fatalf("StringsParam = %v", got)
	}
}

func TestSortViolationsIsDeterministic(t *testing.T) {
	vs := []Violation{
		{Rule: "pascal-case", Path: "b.pas", Pos: Position{Line: 2, Column: 1}},
		{Rule: "type-prefix", Path: "a.pas", Pos: Position{Line: 9, Column: 3}},
		{Rule: "pascal-case", Path: "a.pas", Pos: Position{Line: 9, Column: 3}},
		{Rule: "field-prefix", Path: "a.pas", Pos: Position{Line: 4, Column: 7}},
	}

	SortViolations(vs)

	wantOrder := []struct {
		path string
		line int
		rule RuleID
	}{
		{"a.pas", 4, "field-prefix"},
		{"a.pas", 9, "pascal-case"},
		{"a.pas", 9, "type-prefix"},
		{"b.pas", 2, "pascal-case"},
	}
	for i, w := range wantOrder {
		v := vs[i]
		if v.Path != w.path || v.Pos.Line != w.line || v.Rule != w.rule {
			t.Fatalf("position %d: got %s:%d %s, want %s:%d %s",
				i, v.Path, v.Pos.Line, v.Rule, w.path, w.line, w.rule)
		}
	}
}

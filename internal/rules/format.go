package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmarins/paslint/internal/domain"
)

func unitNameMatchRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "unit-name-match",
			Summary:          "The unit name matches the file base name",
			DefaultSeverity:  domain.SeverityError,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			if unit.UnitName == "" {
				// Program files (.dpr) and includes have no unit header.
				return nil
			}

			base := filepath.Base(unit.Path)
			base = strings.TrimSuffix(base, filepath.Ext(base))
			if unit.UnitName == base {
				return nil
			}

			return []domain.Violation{{
				Pos:     unitHeaderPos(unit),
				Message: fmt.Sprintf("unit %q does not match file name %q", unit.UnitName, base),
			}}
		},
	}
}

func maxLineLengthRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:              "max-line-length",
			Summary:         "Lines do not exceed the configured length",
			DefaultSeverity: domain.SeverityInfo,
			DefaultParams: map[string]any{
				"max": 120,
			},
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, st domain.RuleSettings) []domain.Violation {
			max := st.IntParam("max", 120)

			var out []domain.Violation
			for i, n := range unit.LineLengths {
				if n <= max {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     domain.Position{Line: i + 1, Column: max + 1},
					Message: fmt.Sprintf("line is %d characters (limit %d)", n, max),
				})
			}
			return out
		},
	}
}

func noEmptyCommentRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "no-empty-comment",
			Summary:          "Comments carry text",
			DefaultSeverity:  domain.SeverityInfo,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, c := range unit.Comments {
				if strings.TrimSpace(c.Text) != "" {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     c.Pos,
					Message: "empty comment",
				})
			}
			return out
		},
	}
}

func unitHeaderPos(unit domain.SourceUnit) domain.Position {
	for _, d := range unit.Decls {
		if d.Kind == domain.DeclUnit {
			return d.Pos
		}
	}
	return domain.Position{Line: 1, Column: 1}
}

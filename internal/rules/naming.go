package rules

import (
	"fmt"
	"strings"

	"github.com/dmarins/paslint/internal/domain"
)

func typePrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "type-prefix",
			Summary:          "Class, record, enum and alias type names start with 'T' followed by PascalCase",
			DefaultSeverity:  domain.SeverityWarning,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				switch d.Kind {
				case domain.DeclClass, domain.DeclRecord, domain.DeclEnum, domain.DeclAlias:
				default:
					continue
				}
				// Exception hierarchies are covered by exception-prefix.
				if d.Kind == domain.DeclClass && isExceptionAncestor(d.Parent) {
					continue
				}
				if domain.HasTypePrefix('T', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("%s %q should be named T<PascalCase>", d.Kind, d.Name),
				})
			}
			return out
		},
	}
}

func interfacePrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "interface-prefix",
			Summary:          "Interface names start with 'I' followed by PascalCase",
			DefaultSeverity:  domain.SeverityWarning,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				if d.Kind != domain.DeclInterface {
					continue
				}
				if domain.HasTypePrefix('I', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("interface %q should be named I<PascalCase>", d.Name),
				})
			}
			return out
		},
	}
}

func exceptionPrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "exception-prefix",
			Summary:          "Exception classes start with 'E' followed by PascalCase",
			DefaultSeverity:  domain.SeverityWarning,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				if d.Kind != domain.DeclClass || !isExceptionAncestor(d.Parent) {
					continue
				}
				if domain.HasTypePrefix('E', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("exception class %q should be named E<PascalCase>", d.Name),
				})
			}
			return out
		},
	}
}

func pointerPrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "pointer-prefix",
			Summary:          "Pointer type names start with 'P' followed by PascalCase",
			DefaultSeverity:  domain.SeverityWarning,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				if d.Kind != domain.DeclPointer {
					continue
				}
				if domain.HasTypePrefix('P', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("pointer type %q should be named P<PascalCase>", d.Name),
				})
			}
			return out
		},
	}
}

func fieldPrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "field-prefix",
			Summary:          "Instance fields start with 'F' followed by PascalCase",
			DefaultSeverity:  domain.SeverityWarning,
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				if d.Kind != domain.DeclField {
					continue
				}
				if domain.HasTypePrefix('F', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("field %q should be named F<PascalCase>", d.Name),
				})
			}
			return out
		},
	}
}

func paramPrefixRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:               "param-prefix",
			Summary:          "Parameter names start with 'A' followed by PascalCase",
			DefaultSeverity:  domain.SeverityInfo,
			EnabledByDefault: false, // the guide lists this convention as optional
		},
		Check: func(unit domain.SourceUnit, _ domain.RuleSettings) []domain.Violation {
			var out []domain.Violation
			for _, d := range unit.Decls {
				if d.Kind != domain.DeclParam {
					continue
				}
				if domain.HasTypePrefix('A', d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("parameter %q should be named A<PascalCase>", d.Name),
				})
			}
			return out
		},
	}
}

func pascalCaseRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:              "pascal-case",
			Summary:         "Routine, property, variable and constant names are PascalCase",
			DefaultSeverity: domain.SeverityWarning,
			DefaultParams: map[string]any{
				"allow_all_caps_consts": true,
			},
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, st domain.RuleSettings) []domain.Violation {
			allowCaps := st.BoolParam("allow_all_caps_consts", true)

			var out []domain.Violation
			for _, d := range unit.Decls {
				switch d.Kind {
				case domain.DeclProcedure, domain.DeclFunction, domain.DeclProperty, domain.DeclVar, domain.DeclConst:
				default:
					continue
				}
				if domain.IsPascalCase(d.Name) {
					continue
				}
				if d.Kind == domain.DeclConst && allowCaps && domain.IsAllCaps(d.Name) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("%s %q should be PascalCase", d.Kind, d.Name),
				})
			}
			return out
		},
	}
}

func booleanNameRule() Rule {
	return Rule{
		Meta: domain.RuleMeta{
			ID:              "boolean-name",
			Summary:         "Boolean members read as predicates (Is/Has/Can/Should)",
			DefaultSeverity: domain.SeverityInfo,
			DefaultParams: map[string]any{
				"prefixes": []string{"Is", "Has", "Can", "Should"},
			},
			EnabledByDefault: true,
		},
		Check: func(unit domain.SourceUnit, st domain.RuleSettings) []domain.Violation {
			prefixes := st.StringsParam("prefixes", []string{"Is", "Has", "Can", "Should"})

			var out []domain.Violation
			for _, d := range unit.Decls {
				switch d.Kind {
				case domain.DeclField, domain.DeclProperty, domain.DeclFunction, domain.DeclVar, domain.DeclParam:
				default:
					continue
				}
				if !strings.EqualFold(d.Type, "Boolean") {
					continue
				}
				name := stripConventionPrefix(d)
				if hasAnyPrefix(name, prefixes) {
					continue
				}
				out = append(out, domain.Violation{
					Pos:     d.Pos,
					Message: fmt.Sprintf("boolean %s %q should start with one of %s", d.Kind, d.Name, strings.Join(prefixes, "/")),
				})
			}
			return out
		},
	}
}

// stripConventionPrefix removes the F/A prefix from fields and params so the
// predicate check looks at the meaningful part of the name (FIsDirty -> IsDirty).
func stripConventionPrefix(d domain.Decl) string {
	switch d.Kind {
	case domain.DeclField:
		if domain.HasTypePrefix('F', d.Name) {
			return d.Name[1:]
		}
	case domain.DeclParam:
		if domain.HasTypePrefix('A', d.Name) {
			return d.Name[1:]
		}
	}
	return d.Name
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			return true
		}
	}
	return false
}

// isExceptionAncestor reports whether a class ancestor name looks like an
// exception type: "Exception" itself or an E-prefixed PascalCase name.
func isExceptionAncestor(parent string) bool {
	if strings.EqualFold(parent, "Exception") {
		return true
	}
	return domain.HasTypePrefix('E', parent)
}

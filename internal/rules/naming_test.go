package rules

import (
	"testing"

	"github.com/dmarins/paslint/internal/domain"
)

func checkOne(t *testing.T, r Rule, unit domain.SourceUnit) []domain.Violation {
	t.Helper()
	st := domain.RuleSettings{
		Enabled:  true,
		Severity: r.Meta.DefaultSeverity,
		Params:   r.Meta.DefaultParams,
	}
	return r.Check(unit, st)
}

func TestTypePrefix_FlagsBadTypeNames(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclClass, Name: "TCustomer"},
			{Kind: domain.DeclClass, Name: "Customer", Pos: domain.Position{Line: 5, Column: 3}},
			{Kind: domain.DeclRecord, Name: "Point"},
			{Kind: domain.DeclEnum, Name: "TOrderState"},
			{Kind: domain.DeclAlias, Name: "UserID"},
			{Kind: domain.DeclProcedure, Name: "doWork"}, // not a type, other rule
		},
	}

	got := checkOne(t, typePrefixRule(), unit)
	if len(got) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(got), got)
	}
	if got[0].Pos.Line != 5 {
		t.Fatalf("expected position to carry through, got %+v", got[0].Pos)
	}
}

func TestTypePrefix_SkipsExceptionClasses(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclClass, Name: "OrderError", Parent: "Exception"},
			{Kind: domain.DeclClass, Name: "PaymentError", Parent: "EOrderError"},
		},
	}

	if got := checkOne(t, typePrefixRule(), unit); len(got) != 0 {
		t.Fatalf("exception classes belong to exception-prefix, got %v", got)
	}
}

func TestInterfacePrefix(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclInterface, Name: "IPaymentGateway"},
			{Kind: domain.DeclInterface, Name: "PaymentGateway"},
		},
	}

	got := checkOne(t, interfacePrefixRule(), unit)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
}

func TestExceptionPrefix(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclClass, Name: "EOrderNotFound", Parent: "Exception"},
			{Kind: domain.DeclClass, Name: "OrderNotFound", Parent: "Exception"},
			{Kind: domain.DeclClass, Name: "TCustomer", Parent: "TObject"},
		},
	}

	got := checkOne(t, exceptionPrefixRule(), unit)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
}

func TestPointerAndFieldPrefix(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclPointer, Name: "PCustomer"},
			{Kind: domain.DeclPointer, Name: "CustomerPtr"},
			{Kind: domain.DeclField, Name: "FCount"},
			{Kind: domain.DeclField, Name: "Count"},
		},
	}

	if got := checkOne(t, pointerPrefixRule(), unit); len(got) != 1 {
		t.Fatalf("pointer-prefix: expected 1 violation, got %v", got)
	}
	if got := checkOne(t, fieldPrefixRule(), unit); len(got) != 1 {
		t.Fatalf("field-prefix: expected 1 violation, got %v", got)
	}
}

func TestParamPrefix_OffByDefault(t *testing.T) {
	r := paramPrefixRule()
	if r.Meta.EnabledByDefault {
		t.Fatalf("param-prefix must be opt-in")
	}

	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclParam, Name: "ACustomer"},
			{Kind: domain.DeclParam, Name: "customer"},
		},
	}
	if got := checkOne(t, r, unit); len(got) != 1 {
		t.Fatalf("expected 1 violation, got %v", got)
	}
}

func TestPascalCase_AllowsAllCapsConsts(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclConst, Name: "MAX_RETRIES"},
			{Kind: domain.DeclConst, Name: "defaultTimeout"},
			{Kind: domain.DeclVar, Name: "TotalCount"},
			{Kind: domain.DeclProcedure, Name: "process_order"},
		},
	}

	got := checkOne(t, pascalCaseRule(), unit)
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %v", got)
	}

	r := pascalCaseRule()
	st := domain.RuleSettings{Enabled: true, Params: map[string]any{"allow_all_caps_consts": false}}
	if got := r.Check(unit, st); len(got) != 3 {
		t.Fatalf("with allow_all_caps_consts=false expected 3, got %v", got)
	}
}

func TestBooleanName(t *testing.T) {
	unit := domain.SourceUnit{
		Decls: []domain.Decl{
			{Kind: domain.DeclField, Name: "FIsDirty", Type: "Boolean"},
			{Kind: domain.DeclField, Name: "FDirty", Type: "Boolean"},
			{Kind: domain.DeclProperty, Name: "HasOrders", Type: "Boolean"},
			{Kind: domain.DeclFunction, Name: "CanRetry", Type: "Boolean"},
			{Kind: domain.DeclFunction, Name: "Retry", Type: "Boolean"},
			{Kind: domain.DeclVar, Name: "Done", Type: "Integer"}, // not boolean
		},
	}

	got := checkOne(t, booleanNameRule(), unit)
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %v", got)
	}
}

package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dmarins/paslint/internal/domain"
)

const orderUnit = `unit OrderProcessing;

interface

uses
  SysUtils, Classes;

type
  /// Order lifecycle states.
  TOrderState = (osNew, osPaid, osShipped);

  EOrderError = class(Exception)
  end;

  POrder = ^TOrder;

  /// An order aggregate.
  TOrder = class(TObject)
  private
    FTotal: Currency;
    FIsPaid: Boolean;
  public
    constructor Create(AOwner: TComponent);
    function Total: Currency;
    property IsPaid: Boolean read FIsPaid;
  end;

  IOrderRepository = interface
    procedure Save(const Order: TOrder);
  end;

const
  MAX_ITEMS = 100;

var
  DefaultState: TOrderState;

implementation

function TOrder.Total: Currency;
begin
  Result := FTotal;
end;

constructor TOrder.Create(AOwner: TComponent);
begin
  inherited Create;
end;

end.
`

func scanUnit(t *testing.T, src string) domain.SourceUnit {
	t.Helper()
	return New().ScanBytes("src/OrderProcessing.pas", []byte(src))
}

func findDecl(unit domain.SourceUnit, kind domain.DeclKind, name string) (domain.Decl, bool) {
	for _, d := range unit.Decls {
		if d.Kind == kind && d.Name == name {
			return d, true
		}
	}
	return domain.Decl{}, false
}

func TestParser_RealisticUnit(t *testing.T) {
	unit := scanUnit(t, orderUnit)

	if len(unit.ScanErrors) != 0 {
		t.Fatalf("unexpected scan errors: %v", unit.ScanErrors)
	}
	if unit.UnitName != "OrderProcessing" {
		t.Fatalf("unit name = %q", unit.UnitName)
	}

	want := []domain.Decl{
		{Kind: domain.DeclUnit, Name: "OrderProcessing"},
		{Kind: domain.DeclEnum, Name: "TOrderState", HasDoc: true, InInterface: true},
		{Kind: domain.DeclClass, Name: "EOrderError", Parent: "Exception", InInterface: true},
		{Kind: domain.DeclPointer, Name: "POrder", InInterface: true},
		{Kind: domain.DeclClass, Name: "TOrder", Parent: "TObject", HasDoc: true, InInterface: true},
		{Kind: domain.DeclField, Name: "FTotal", Parent: "TOrder", Type: "Currency", Visibility: domain.VisPrivate, InInterface: true},
		{Kind: domain.DeclField, Name: "FIsPaid", Parent: "TOrder", Type: "Boolean", Visibility: domain.VisPrivate, InInterface: true},
		{Kind: domain.DeclParam, Name: "AOwner", Type: "TComponent", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclProcedure, Name: "Create", Parent: "TOrder", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclFunction, Name: "Total", Parent: "TOrder", Type: "Currency", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclProperty, Name: "IsPaid", Parent: "TOrder", Type: "Boolean", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclInterface, Name: "IOrderRepository", InInterface: true},
		{Kind: domain.DeclParam, Name: "Order", Type: "TOrder", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclProcedure, Name: "Save", Parent: "IOrderRepository", Visibility: domain.VisPublic, InInterface: true},
		{Kind: domain.DeclConst, Name: "MAX_ITEMS", InInterface: true},
		{Kind: domain.DeclVar, Name: "DefaultState", Type: "TOrderState", InInterface: true},
	}

	if diff := cmp.Diff(want, unit.Decls, cmpopts.IgnoreFields(domain.Decl{}, "Pos")); diff != "" {
		t.Fatalf("decls mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_QualifiedImplementationsNotDoubleReported(t *testing.T) {
	unit := scanUnit(t, orderUnit)

	seen := map[string]int{}
	for _, d := range unit.Decls {
		if d.Kind == domain.DeclProcedure || d.Kind == domain.DeclFunction || d.Kind == domain.DeclParam {
			seen[string(d.Kind)+" "+d.Name]++
		}
	}
	for k, n := range seen {
		if n > 1 {
			t.Fatalf("%s reported %d times", k, n)
		}
	}
}

func TestParser_DocCommentMustBeAdjacent(t *testing.T) {
	src := "unit Docs;\ninterface\ntype\n  /// documented\n  TGood = class\n  end;\n\n  /// stale doc\n\n  TBad = class\n  end;\nimplementation\nend.\n"
	unit := New().ScanBytes("src/Docs.pas", []byte(src))

	good, ok := findDecl(unit, domain.DeclClass, "TGood")
	if !ok || !good.HasDoc {
		t.Fatalf("TGood should carry its doc comment: %+v", good)
	}
	bad, ok := findDecl(unit, domain.DeclClass, "TBad")
	if !ok || bad.HasDoc {
		t.Fatalf("a blank line breaks doc association: %+v", bad)
	}
}

func TestParser_PlainLineCommentIsNotADoc(t *testing.T) {
	src := "unit Docs;\ninterface\ntype\n  // fixme later\n  TThing = class\n  end;\nimplementation\nend.\n"
	unit := New().ScanBytes("src/Docs.pas", []byte(src))

	thing, ok := findDecl(unit, domain.DeclClass, "TThing")
	if !ok || thing.HasDoc {
		t.Fatalf("a // comment must not count as documentation: %+v", thing)
	}
}

func TestParser_GenericsAndMetaclass(t *testing.T) {
	src := `unit Generics;
interface
type
  TList<T> = class
  end;
  TOrderClass = class of TOrder;
  TCallback = procedure(Sender: TObject) of object;
implementation
end.
`
	unit := New().ScanBytes("src/Generics.pas", []byte(src))

	if _, ok := findDecl(unit, domain.DeclClass, "TList"); !ok {
		t.Fatalf("generic class not recognized: %+v", unit.Decls)
	}
	if _, ok := findDecl(unit, domain.DeclAlias, "TOrderClass"); !ok {
		t.Fatalf("metaclass alias not recognized: %+v", unit.Decls)
	}
	if _, ok := findDecl(unit, domain.DeclAlias, "TCallback"); !ok {
		t.Fatalf("procedure type alias not recognized: %+v", unit.Decls)
	}
	// The alias's own params are not declarations.
	if _, ok := findDecl(unit, domain.DeclParam, "Sender"); ok {
		t.Fatalf("function-pointer params should not be emitted")
	}
}

func TestParser_VariantRecord(t *testing.T) {
	src := `unit Shapes;
interface
type
  TShape = record
    Kind: Integer;
    case Integer of
      0: (Radius: Double);
      1: (Width, Height: Double);
  end;
  TAfter = class
  end;
implementation
end.
`
	unit := New().ScanBytes("src/Shapes.pas", []byte(src))

	if _, ok := findDecl(unit, domain.DeclRecord, "TShape"); !ok {
		t.Fatalf("record not recognized")
	}
	// The variant part shares the record's end; the next type must still parse.
	if _, ok := findDecl(unit, domain.DeclClass, "TAfter"); !ok {
		t.Fatalf("declaration after variant record lost: %+v", unit.Decls)
	}
}

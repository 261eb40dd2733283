package domain

// DeclKind identifies what kind of declaration the scanner recognized.
type DeclKind string

const (
	DeclUnit      DeclKind = "unit"
	DeclClass     DeclKind = "class"
	DeclInterface DeclKind = "interface"
	DeclRecord    DeclKind = "record"
	DeclEnum      DeclKind = "enum"
	DeclPointer   DeclKind = "pointer"
	DeclAlias     DeclKind = "alias"
	DeclProcedure DeclKind = "procedure"
	DeclFunction  DeclKind = "function"
	DeclField     DeclKind = "field"
	DeclProperty  DeclKind = "property"
	DeclParam     DeclKind = "param"
	DeclConst     DeclKind = "const"
	DeclVar       DeclKind = "var"
)

// Visibility is the access section a member was declared under.
// Top-level declarations use VisDefault.
type Visibility string

const (
	VisDefault   Visibility = ""
	VisPrivate   Visibility = "private"
	VisProtected Visibility = "protected"
	VisPublic    Visibility = "public"
	VisPublished Visibility = "published"
)

// Position locates a token in a source file (1-based).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Decl is a single declaration recognized in a source unit.
type Decl struct {
	Kind DeclKind
	Name string
	Pos  Position

	// Parent is the enclosing type name for members (fields, methods,
	// properties) and the ancestor name for classes ("class(TObject)").
	Parent string

	// Type is the declared type text for fields, params, vars and consts
	// when the scanner could capture it (e.g. "Boolean", "Integer").
	Type string

	Visibility Visibility

	// HasDoc is true when a doc comment immediately precedes the declaration.
	HasDoc bool

	// InInterface is true for declarations in a unit's interface section.
	InInterface bool
}

// CommentKind distinguishes comment syntaxes. Compiler directives ({$...})
// are not comments and never reach this model.
type CommentKind string

const (
	CommentLine  CommentKind = "line"  // // ...
	CommentBlock CommentKind = "block" // { ... } or (* ... *)
	CommentDoc   CommentKind = "doc"   // /// ...
)

// Comment is a single comment with its position and raw text (markers stripped).
type Comment struct {
	Kind CommentKind
	Pos  Position
	Text string
}

// SourceUnit is the scanner's structural view of one source file.
type SourceUnit struct {
	Path     string
	UnitName string

	Decls    []Decl
	Comments []Comment

	// LineLengths holds the rune count of every line, index 0 = line 1.
	LineLengths []int

	// CodeLines and CommentLines are the counts used by density checks.
	// A line containing both code and a trailing comment counts as both.
	CodeLines    int
	CommentLines int

	// ScanErrors holds diagnostics for malformed input (unterminated string
	// or comment). The scanner reports these instead of failing the run.
	ScanErrors []ScanError
}

// ScanError describes a lexical problem found while scanning.
type ScanError struct {
	Pos     Position
	Message string
}

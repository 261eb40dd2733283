package scanner

import (
	"github.com/dmarins/paslint/internal/domain"
)

// parser walks the token stream and extracts declarations. It is resilient by
// construction: unknown constructs are skipped token by token, never aborting
// the file.
type parser struct {
	toks       []token
	i          int
	commentEnd map[int]bool

	unitName    string
	decls       []domain.Decl
	inInterface bool
	section     string // "", "type", "var", "const"
}

func newParser(toks []token, commentEndLines map[int]bool) *parser {
	return &parser{toks: toks, commentEnd: commentEndLines}
}

func (p *parser) run() {
	for p.i < len(p.toks) {
		t := p.cur()
		if t.kind != tokWord {
			p.i++
			continue
		}

		switch t.lower() {
		case "unit":
			p.unitHeader(true)
		case "program", "library":
			p.unitHeader(false)
		case "uses":
			p.skipPast(";")
		case "interface":
			p.inInterface = true
			p.section = ""
			p.i++
		case "implementation", "initialization", "finalization":
			p.inInterface = false
			p.section = ""
			p.i++
		case "type":
			p.section = "type"
			p.i++
		case "var", "threadvar":
			p.section = "var"
			p.i++
		case "const", "resourcestring":
			p.section = "const"
			p.i++
		case "procedure", "constructor", "destructor":
			p.routine(domain.DeclProcedure)
		case "function":
			p.routine(domain.DeclFunction)
		case "class":
			// "class procedure" / "class function" at implementation level.
			p.i++
		case "begin", "asm":
			p.skipStatementBlock()
		default:
			switch p.section {
			case "type":
				p.typeDecl()
			case "var":
				p.varDecl()
			case "const":
				p.constDecl()
			default:
				p.i++
			}
		}
	}
}

// --- token helpers ---

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) peekTok(ahead int) (token, bool) {
	if p.i+ahead >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.i+ahead], true
}

func (p *parser) skipPast(sym string) {
	for p.i < len(p.toks) {
		if p.toks[p.i].is(sym) {
			p.i++
			return
		}
		p.i++
	}
}

// skipStatementBlock consumes a begin/asm..end statement body, including
// nested begin/case/try blocks.
func (p *parser) skipStatementBlock() {
	depth := 0
	for p.i < len(p.toks) {
		t := p.toks[p.i]
		if t.kind == tokWord {
			switch t.lower() {
			case "begin", "case", "try", "asm":
				depth++
			case "end":
				depth--
				if depth <= 0 {
					p.i++
					return
				}
			}
		}
		p.i++
	}
}

// skipTypeBody consumes a class/record/interface body after its opening
// keyword until the matching end. Nested anonymous records are tracked;
// variant record "case" shares the enclosing end and is not counted.
func (p *parser) skipTypeBody() {
	depth := 1
	for p.i < len(p.toks) {
		t := p.toks[p.i]
		if t.kind == tokWord {
			switch t.lower() {
			case "record", "class", "object":
				depth++
			case "end":
				depth--
				if depth <= 0 {
					p.i++
					return
				}
			}
		}
		p.i++
	}
}

func (p *parser) prevKeyword(kw string) bool {
	return p.i > 0 && p.toks[p.i-1].keyword(kw)
}

func (p *parser) hasDocAbove(line int) bool {
	return p.commentEnd[line-1]
}

// --- declarations ---

func (p *parser) unitHeader(isUnit bool) {
	kw := p.cur()
	p.i++
	name, ok := p.peekTok(0)
	if !ok || name.kind != tokWord {
		return
	}
	full := name.text
	pos := name.pos
	p.i++
	// dotted unit names: My.Company.Utils
	for {
		dot, ok := p.peekTok(0)
		if !ok || !dot.is(".") {
			break
		}
		p.i++
		part, ok := p.peekTok(0)
		if !ok || part.kind != tokWord {
			break
		}
		full += "." + part.text
		p.i++
	}
	p.skipPast(";")

	if !isUnit {
		return
	}
	p.unitName = full
	p.decls = append(p.decls, domain.Decl{
		Kind:   domain.DeclUnit,
		Name:   full,
		Pos:    pos,
		HasDoc: p.hasDocAbove(kw.pos.Line),
	})
}

func (p *parser) typeDecl() {
	name := p.cur()
	pos := name.pos
	p.i++

	// generic parameters: TList<T> = class ...
	if t, ok := p.peekTok(0); ok && t.is("<") {
		p.skipPast(">")
	}

	eq, ok := p.peekTok(0)
	if !ok || !eq.is("=") {
		// not a type declaration start; resync
		return
	}
	p.i++

	t, ok := p.peekTok(0)
	if !ok {
		return
	}

	// skip storage modifiers
	for t.keyword("packed") {
		p.i++
		t, ok = p.peekTok(0)
		if !ok {
			return
		}
	}

	doc := p.hasDocAbove(pos.Line)

	switch {
	case t.keyword("class"):
		p.i++
		if next, ok := p.peekTok(0); ok && next.keyword("of") {
			// metaclass reference: TFooClass = class of TFoo
			p.emitType(domain.DeclAlias, name.text, pos, "", doc)
			p.skipPast(";")
			return
		}
		p.classLike(domain.DeclClass, name.text, pos, doc)

	case t.keyword("interface"), t.keyword("dispinterface"):
		p.i++
		p.classLike(domain.DeclInterface, name.text, pos, doc)

	case t.keyword("record"), t.keyword("object"):
		p.i++
		p.emitType(domain.DeclRecord, name.text, pos, "", doc)
		p.typeBody(name.text)

	case t.is("("):
		p.emitType(domain.DeclEnum, name.text, pos, "", doc)
		p.skipPast(")")
		p.skipPast(";")

	case t.is("^"):
		p.emitType(domain.DeclPointer, name.text, pos, "", doc)
		p.skipPast(";")

	default:
		p.emitType(domain.DeclAlias, name.text, pos, "", doc)
		p.skipTypeExpr()
	}
}

// skipTypeExpr consumes an alias's type expression up to its semicolon.
// Function-pointer types separate parameters with semicolons, so parens are
// balanced, and "array of record ... end" bodies are stepped over.
func (p *parser) skipTypeExpr() {
	depth := 0
	for p.i < len(p.toks) {
		t := p.cur()
		if t.kind == tokWord {
			switch t.lower() {
			case "record", "class", "object":
				// "procedure ... of object" is a calling convention, not a body
				if t.lower() == "object" && p.prevKeyword("of") {
					p.i++
					continue
				}
				p.i++
				p.skipTypeBody()
				continue
			}
		}
		switch {
		case t.is("("), t.is("["):
			depth++
		case t.is(")"), t.is("]"):
			depth--
		case t.is(";") && depth <= 0:
			p.i++
			return
		}
		p.i++
	}
}

// classLike handles the part after "= class" / "= interface": optional
// modifiers, ancestors, helper clause, then either a forward declaration or
// the member body.
func (p *parser) classLike(kind domain.DeclKind, name string, pos domain.Position, doc bool) {
	parent := ""

	for {
		t, ok := p.peekTok(0)
		if !ok {
			p.emitType(kind, name, pos, parent, doc)
			return
		}
		switch {
		case t.keyword("abstract"), t.keyword("sealed"):
			p.i++
		case t.keyword("helper"):
			// class helper for TFoo
			p.i++
			if f, ok := p.peekTok(0); ok && f.keyword("for") {
				p.i++
				p.i++ // helped type name
			}
		case t.is("("):
			p.i++
			if a, ok := p.peekTok(0); ok && a.kind == tokWord {
				parent = a.text
			}
			p.skipPast(")")
		case t.is(";"):
			// forward declaration
			p.i++
			p.emitType(kind, name, pos, parent, doc)
			return
		default:
			p.emitType(kind, name, pos, parent, doc)
			p.typeBody(name)
			return
		}
	}
}

func (p *parser) emitType(kind domain.DeclKind, name string, pos domain.Position, parent string, doc bool) {
	p.decls = append(p.decls, domain.Decl{
		Kind:        kind,
		Name:        name,
		Pos:         pos,
		Parent:      parent,
		HasDoc:      doc,
		InInterface: p.inInterface,
	})
}

// typeBody parses class/interface/record members until the matching end.
func (p *parser) typeBody(parent string) {
	vis := domain.VisPublic
	depth := 1

	for p.i < len(p.toks) {
		t := p.cur()
		if t.kind != tokWord {
			p.i++
			continue
		}

		switch t.lower() {
		case "end":
			depth--
			p.i++
			if depth <= 0 {
				p.skipPast(";")
				return
			}
		case "strict":
			p.i++
		case "private":
			vis = domain.VisPrivate
			p.i++
		case "protected":
			vis = domain.VisProtected
			p.i++
		case "public":
			vis = domain.VisPublic
			p.i++
		case "published":
			vis = domain.VisPublished
			p.i++
		case "class":
			// class method / class var / class property prefix
			p.i++
		case "procedure", "constructor", "destructor":
			p.member(domain.DeclProcedure, parent, vis)
		case "function":
			p.member(domain.DeclFunction, parent, vis)
		case "property":
			p.property(parent, vis)
		case "case":
			// variant record selector, shares the record's end
			p.i++
		case "var", "const", "type", "threadvar":
			p.i++
		case "record", "object":
			// anonymous nested record in a field type
			depth++
			p.i++
		default:
			p.field(parent, vis)
		}
	}
}

// member parses a routine declared inside a type body.
func (p *parser) member(kind domain.DeclKind, parent string, vis domain.Visibility) {
	kw := p.cur()
	p.i++

	name, ok := p.peekTok(0)
	if !ok || name.kind != tokWord {
		return
	}
	p.i++

	if t, ok := p.peekTok(0); ok && t.is("<") {
		p.skipPast(">")
	}

	retType := p.signature(vis)

	p.decls = append(p.decls, domain.Decl{
		Kind:        kind,
		Name:        name.text,
		Pos:         name.pos,
		Parent:      parent,
		Type:        retType,
		Visibility:  vis,
		HasDoc:      p.hasDocAbove(kw.pos.Line),
		InInterface: p.inInterface,
	})

	p.skipPast(";")
	p.skipDirectives()
}

// routine parses a unit-level or implementation routine, including qualified
// method implementations (procedure TFoo.Bar).
func (p *parser) routine(kind domain.DeclKind) {
	kw := p.cur()
	p.i++

	name, ok := p.peekTok(0)
	if !ok || name.kind != tokWord {
		return
	}
	p.i++

	parent := ""
	for {
		dot, ok := p.peekTok(0)
		if !ok || !dot.is(".") {
			break
		}
		p.i++
		part, ok := p.peekTok(0)
		if !ok || part.kind != tokWord {
			break
		}
		if parent == "" {
			parent = name.text
		} else {
			parent = parent + "." + name.text
		}
		name = part
		p.i++
	}

	if t, ok := p.peekTok(0); ok && t.is("<") {
		p.skipPast(">")
	}

	mark := len(p.decls)
	retType := p.signature(domain.VisDefault)

	// Qualified implementations repeat a declaration already captured from
	// the type body; recording it (or its params) again would double-report
	// every method.
	if parent == "" {
		p.decls = append(p.decls, domain.Decl{
			Kind:        kind,
			Name:        name.text,
			Pos:         name.pos,
			Type:        retType,
			HasDoc:      p.hasDocAbove(kw.pos.Line),
			InInterface: p.inInterface,
		})
	} else {
		p.decls = p.decls[:mark]
	}

	p.skipPast(";")
	p.skipDirectives()
	p.section = ""
}

// signature consumes the parameter list and return type, emitting param
// declarations. It stops before the terminating semicolon.
func (p *parser) signature(vis domain.Visibility) (retType string) {
	if t, ok := p.peekTok(0); ok && t.is("(") {
		p.i++
		p.params(vis)
	}
	if t, ok := p.peekTok(0); ok && t.is(":") {
		p.i++
		if rt, ok := p.peekTok(0); ok && rt.kind == tokWord {
			retType = rt.text
			p.i++
		}
	}
	return retType
}

// params parses "(const A, B: Integer; var S: string = '')" groups.
func (p *parser) params(vis domain.Visibility) {
	var group []token

	flush := func(typ string) {
		for _, n := range group {
			p.decls = append(p.decls, domain.Decl{
				Kind:        domain.DeclParam,
				Name:        n.text,
				Pos:         n.pos,
				Type:        typ,
				Visibility:  vis,
				InInterface: p.inInterface,
			})
		}
		group = group[:0]
	}

	for p.i < len(p.toks) {
		t := p.cur()
		switch {
		case t.is(")"):
			flush("")
			p.i++
			return
		case t.is(";"):
			flush("")
			p.i++
		case t.is(","):
			p.i++
		case t.is(":"):
			p.i++
			typ := ""
			if tt, ok := p.peekTok(0); ok && tt.kind == tokWord {
				typ = tt.text
			}
			flush(typ)
			// consume type expression and optional default value
			for p.i < len(p.toks) {
				tt := p.cur()
				if tt.is(";") || tt.is(")") {
					break
				}
				p.i++
			}
		case t.kind == tokWord:
			switch t.lower() {
			case "const", "var", "out", "constref":
				p.i++
			default:
				group = append(group, t)
				p.i++
			}
		default:
			p.i++
		}
	}
}

// skipDirectives consumes trailing routine directives: "override; inline;".
func (p *parser) skipDirectives() {
	for {
		t, ok := p.peekTok(0)
		if !ok || t.kind != tokWord {
			return
		}
		switch t.lower() {
		case "overload", "override", "virtual", "dynamic", "abstract", "reintroduce",
			"inline", "static", "stdcall", "cdecl", "safecall", "register", "forward",
			"deprecated", "experimental", "platform":
			p.skipPast(";")
		case "external":
			p.skipPast(";")
		default:
			return
		}
	}
}

func (p *parser) property(parent string, vis domain.Visibility) {
	kw := p.cur()
	p.i++

	name, ok := p.peekTok(0)
	if !ok || name.kind != tokWord {
		return
	}
	p.i++

	// indexed property: property Items[Index: Integer]: TItem
	if t, ok := p.peekTok(0); ok && t.is("[") {
		p.skipPast("]")
	}

	typ := ""
	if t, ok := p.peekTok(0); ok && t.is(":") {
		p.i++
		if tt, ok := p.peekTok(0); ok && tt.kind == tokWord {
			typ = tt.text
		}
	}

	p.decls = append(p.decls, domain.Decl{
		Kind:        domain.DeclProperty,
		Name:        name.text,
		Pos:         name.pos,
		Parent:      parent,
		Type:        typ,
		Visibility:  vis,
		HasDoc:      p.hasDocAbove(kw.pos.Line),
		InInterface: p.inInterface,
	})

	p.skipPast(";")
	// default; stored; etc. ride on the same statement chain
	for {
		t, ok := p.peekTok(0)
		if !ok || t.kind != tokWord {
			return
		}
		switch t.lower() {
		case "default", "stored", "nodefault":
			p.skipPast(";")
		default:
			return
		}
	}
}

// field parses "Name, Name2: Type;" inside a type body.
func (p *parser) field(parent string, vis domain.Visibility) {
	var names []token
	names = append(names, p.cur())
	p.i++

	for p.i < len(p.toks) {
		t := p.cur()
		switch {
		case t.is(","):
			p.i++
			if n, ok := p.peekTok(0); ok && n.kind == tokWord {
				names = append(names, n)
				p.i++
			}
		case t.is(":"):
			p.i++
			typ := ""
			if tt, ok := p.peekTok(0); ok && tt.kind == tokWord {
				typ = tt.text
			}
			for _, n := range names {
				p.decls = append(p.decls, domain.Decl{
					Kind:        domain.DeclField,
					Name:        n.text,
					Pos:         n.pos,
					Parent:      parent,
					Type:        typ,
					Visibility:  vis,
					HasDoc:      p.hasDocAbove(n.pos.Line),
					InInterface: p.inInterface,
				})
			}
			p.skipFieldType()
			return
		case t.is("="):
			// class const: Name = value;
			for _, n := range names {
				p.decls = append(p.decls, domain.Decl{
					Kind:        domain.DeclConst,
					Name:        n.text,
					Pos:         n.pos,
					Parent:      parent,
					Visibility:  vis,
					InInterface: p.inInterface,
				})
			}
			p.skipPast(";")
			return
		default:
			// resync on anything unexpected
			p.i++
			return
		}
	}
}

// skipFieldType consumes a field's type expression up to its semicolon,
// stepping over anonymous record bodies.
func (p *parser) skipFieldType() {
	for p.i < len(p.toks) {
		t := p.cur()
		if t.kind == tokWord {
			switch t.lower() {
			case "record", "class", "object":
				if t.lower() == "object" && p.prevKeyword("of") {
					p.i++
					continue
				}
				p.i++
				p.skipTypeBody()
				continue
			}
		}
		if t.is(";") {
			p.i++
			return
		}
		p.i++
	}
}

// varDecl parses "Name, Name2: Type;" in a var section.
func (p *parser) varDecl() {
	var names []token
	names = append(names, p.cur())
	p.i++

	for p.i < len(p.toks) {
		t := p.cur()
		switch {
		case t.is(","):
			p.i++
			if n, ok := p.peekTok(0); ok && n.kind == tokWord {
				names = append(names, n)
				p.i++
			}
		case t.is(":"):
			p.i++
			typ := ""
			if tt, ok := p.peekTok(0); ok && tt.kind == tokWord {
				typ = tt.text
			}
			for _, n := range names {
				p.decls = append(p.decls, domain.Decl{
					Kind:        domain.DeclVar,
					Name:        n.text,
					Pos:         n.pos,
					Type:        typ,
					HasDoc:      p.hasDocAbove(n.pos.Line),
					InInterface: p.inInterface,
				})
			}
			p.skipFieldType()
			return
		default:
			p.i++
			return
		}
	}
}

// constDecl parses "Name = expr;" or "Name: Type = expr;" in a const section.
func (p *parser) constDecl() {
	name := p.cur()
	p.i++

	t, ok := p.peekTok(0)
	if !ok {
		return
	}

	typ := ""
	if t.is(":") {
		p.i++
		if tt, ok := p.peekTok(0); ok && tt.kind == tokWord {
			typ = tt.text
		}
		for p.i < len(p.toks) && !p.cur().is("=") && !p.cur().is(";") {
			p.i++
		}
	} else if !t.is("=") {
		return
	}

	p.decls = append(p.decls, domain.Decl{
		Kind:        domain.DeclConst,
		Name:        name.text,
		Pos:         name.pos,
		Type:        typ,
		HasDoc:      p.hasDocAbove(name.pos.Line),
		InInterface: p.inInterface,
	})
	p.skipConstValue()
}

// skipConstValue consumes the value expression of a const, stepping over
// parenthesized array/record constants that contain semicolons.
func (p *parser) skipConstValue() {
	depth := 0
	for p.i < len(p.toks) {
		t := p.cur()
		switch {
		case t.is("("), t.is("["):
			depth++
		case t.is(")"), t.is("]"):
			depth--
		case t.is(";") && depth <= 0:
			p.i++
			return
		}
		p.i++
	}
}

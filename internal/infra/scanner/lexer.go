package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/dmarins/paslint/internal/domain"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokNumber
	tokString
	tokSym
)

type token struct {
	kind tokenKind
	text string // words are kept verbatim; lower() is used for keyword tests
	pos  domain.Position
}

// lower returns the keyword form of a word token. Pascal keywords are
// case-insensitive.
func (t token) lower() string { return strings.ToLower(t.text) }

func (t token) is(sym string) bool { return t.kind == tokSym && t.text == sym }

func (t token) keyword(kw string) bool { return t.kind == tokWord && t.lower() == kw }

type lexer struct {
	path string
	src  []byte

	off  int
	line int
	col  int

	tokens   []token
	comments []domain.Comment
	errs     []domain.ScanError

	codeLines    map[int]bool
	commentLines map[int]bool

	// commentEndLines maps the last line of each doc-capable comment
	// (/// and block forms) to true so the parser can associate doc
	// comments with the following declaration.
	commentEndLines map[int]bool
}

func newLexer(path string, src []byte) *lexer {
	return &lexer{
		path:            path,
		src:             src,
		line:            1,
		col:             1,
		codeLines:       map[int]bool{},
		commentLines:    map[int]bool{},
		commentEndLines: map[int]bool{},
	}
}

func (lx *lexer) run() {
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]

		switch {
		case c == '\n':
			lx.advance()
		case c == ' ' || c == '\t' || c == '\r':
			lx.advance()
		case c == '/' && lx.peek(1) == '/':
			lx.lineComment()
		case c == '{':
			lx.braceComment()
		case c == '(' && lx.peek(1) == '*':
			lx.parenComment()
		case c == '\'':
			lx.stringLit()
		case isIdentStart(c):
			lx.word()
		case c >= '0' && c <= '9':
			lx.number()
		default:
			lx.symbol()
		}
	}
}

func (lx *lexer) peek(ahead int) byte {
	if lx.off+ahead >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+ahead]
}

// advance consumes one byte, maintaining line/col. Multi-byte runes advance
// the column once, on their leading byte.
func (lx *lexer) advance() {
	c := lx.src[lx.off]
	lx.off++
	if c == '\n' {
		lx.line++
		lx.col = 1
		return
	}
	if c&0xC0 != 0x80 {
		lx.col++
	}
}

func (lx *lexer) here() domain.Position {
	return domain.Position{Line: lx.line, Column: lx.col}
}

func (lx *lexer) emit(kind tokenKind, text string, pos domain.Position) {
	lx.tokens = append(lx.tokens, token{kind: kind, text: text, pos: pos})
	lx.codeLines[pos.Line] = true
}

func (lx *lexer) lineComment() {
	pos := lx.here()
	lx.advance() // /
	lx.advance() // /

	doc := false
	if lx.off < len(lx.src) && lx.src[lx.off] == '/' {
		doc = true
		lx.advance()
	}

	start := lx.off
	for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
		lx.advance()
	}

	kind := domain.CommentLine
	if doc {
		kind = domain.CommentDoc
	}
	lx.addComment(kind, pos, string(lx.src[start:lx.off]), pos.Line)
}

func (lx *lexer) braceComment() {
	pos := lx.here()
	lx.advance() // {

	directive := lx.off < len(lx.src) && lx.src[lx.off] == '$'

	start := lx.off
	for lx.off < len(lx.src) && lx.src[lx.off] != '}' {
		lx.advance()
	}
	if lx.off >= len(lx.src) {
		lx.errs = append(lx.errs, domain.ScanError{Pos: pos, Message: "unterminated { comment"})
		return
	}
	text := string(lx.src[start:lx.off])
	endLine := lx.line
	lx.advance() // }

	if directive {
		// {$MODE ...} and friends are compiler input, not commentary.
		return
	}
	lx.addComment(domain.CommentBlock, pos, text, endLine)
}

func (lx *lexer) parenComment() {
	pos := lx.here()
	lx.advance() // (
	lx.advance() // *

	start := lx.off
	for lx.off < len(lx.src) {
		if lx.src[lx.off] == '*' && lx.peek(1) == ')' {
			text := string(lx.src[start:lx.off])
			endLine := lx.line
			lx.advance()
			lx.advance()
			lx.addComment(domain.CommentBlock, pos, text, endLine)
			return
		}
		lx.advance()
	}
	lx.errs = append(lx.errs, domain.ScanError{Pos: pos, Message: "unterminated (* comment"})
}

func (lx *lexer) addComment(kind domain.CommentKind, pos domain.Position, text string, endLine int) {
	lx.comments = append(lx.comments, domain.Comment{Kind: kind, Pos: pos, Text: text})
	for l := pos.Line; l <= endLine; l++ {
		lx.commentLines[l] = true
	}
	// Plain // comments never document the declaration below them.
	if kind == domain.CommentDoc || kind == domain.CommentBlock {
		lx.commentEndLines[endLine] = true
	}
}

// stringLit consumes a single-quoted string. Pascal strings cannot span
// lines; a newline before the closing quote is a scan error.
func (lx *lexer) stringLit() {
	pos := lx.here()
	lx.advance() // opening '

	var b strings.Builder
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]
		if c == '\n' {
			break
		}
		if c == '\'' {
			if lx.peek(1) == '\'' { // '' escape
				b.WriteByte('\'')
				lx.advance()
				lx.advance()
				continue
			}
			lx.advance()
			lx.emit(tokString, b.String(), pos)
			return
		}
		b.WriteByte(c)
		lx.advance()
	}
	lx.errs = append(lx.errs, domain.ScanError{Pos: pos, Message: "unterminated string"})
	lx.emit(tokString, b.String(), pos)
}

func (lx *lexer) word() {
	pos := lx.here()
	start := lx.off
	for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
		lx.advance()
	}
	lx.emit(tokWord, string(lx.src[start:lx.off]), pos)
}

func (lx *lexer) number() {
	pos := lx.here()
	start := lx.off
	for lx.off < len(lx.src) && (isIdentPart(lx.src[lx.off]) || lx.src[lx.off] == '.' && isDigitByte(lx.peek(1))) {
		lx.advance()
	}
	lx.emit(tokNumber, string(lx.src[start:lx.off]), pos)
}

func (lx *lexer) symbol() {
	pos := lx.here()
	c := lx.src[lx.off]
	if c < utf8.RuneSelf {
		lx.advance()
		// two-char operators the parser cares about
		if c == ':' && lx.off < len(lx.src) && lx.src[lx.off] == '=' {
			lx.advance()
			lx.emit(tokSym, ":=", pos)
			return
		}
		lx.emit(tokSym, string(c), pos)
		return
	}
	// Non-ASCII byte outside string/comment: consume the rune and move on.
	_, size := utf8.DecodeRune(lx.src[lx.off:])
	for i := 0; i < size; i++ {
		lx.advance()
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

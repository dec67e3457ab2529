package syntax

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
)

// Precedence levels, lowest to highest, exactly as laid out in
// SPEC_FULL.md's expression grammar.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecComma
	PrecAssignment
	PrecTernary
	PrecLogicOr
	PrecLogicAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecOrdering
	PrecShift
	PrecRange
	PrecSum
	PrecProduct
	PrecUnary
	PrecCall
	PrecPrimary
)

type prefixParseFn func(p *Parser) ast.Expr
type infixParseFn func(p *Parser, left ast.Expr) ast.Expr

// rule is one row of the Pratt table: a token kind's prefix handler,
// infix handler, and infix precedence. Either handler may be nil.
type rule struct {
	prefix prefixParseFn
	infix  infixParseFn
	prec   Precedence
}

// rules is the Pratt table, keyed by token kind. It is built once, in
// newRules, rather than scattered across per-token registration calls,
// since the table is static for the whole grammar.
var rules map[TokenKind]rule

func init() {
	rules = newRules()
}

// Parser is a Pratt-style recursive-descent parser. One Parser parses one
// module; importing another module constructs a fresh Parser recursively
// (see importDeclaration in parse_import.go).
type Parser struct {
	sink   *report.Sink
	tokens []Token
	pos    int

	module   *depm.Module
	registry *depm.Registry
	depth    int

	canAssign bool

	scopeDepth int
	inClass    bool
	inFunction bool
	inLoop     bool
	inSwitch   bool
	inCtor     bool
	inDtor     bool

	currentClass *ast.ClassStmt
}

func NewParser(sink *report.Sink, tokens []Token, module *depm.Module, registry *depm.Registry, depth int) *Parser {
	return &Parser{sink: sink, tokens: tokens, module: module, registry: registry, depth: depth}
}

// Parse is the parser's external contract: consume the whole token
// stream, returning the ordered statement list and leaving module's
// Classes/Functions/Imported tables populated as a side effect.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(END_OF_FILE) {
		if p.check(END_OF_LINE) {
			p.advance()
			continue
		}
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

// -- token stream primitives --------------------------------------------

func (p *Parser) peek() Token     { return p.tokens[p.pos] }
func (p *Parser) previous() Token { return p.tokens[p.pos-1] }
func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token kind or raises a LocalError.
func (p *Parser) consume(kind TokenKind, format string, args ...interface{}) Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(report.Raise(p.peek().Span, format, args...))
}

// skipEOLs consumes any run of END_OF_LINE tokens, used at points in the
// grammar where a newline is cosmetic (e.g. between `)` and `->` in a
// function header).
func (p *Parser) skipEOLs() {
	for p.check(END_OF_LINE) {
		p.advance()
	}
}

// endStatement consumes the `;` or END_OF_LINE that terminates a
// statement.
func (p *Parser) endStatement() {
	if p.check(SEMICOLON) || p.check(END_OF_LINE) {
		p.advance()
		return
	}
	if p.check(END_OF_FILE) || p.check(RIGHT_BRACE) {
		return
	}
	panic(report.Raise(p.peek().Span, "expected end of statement"))
}

// spanFrom builds a span covering everything from the token at `from`
// (inclusive) to the token just consumed.
func (p *Parser) spanFrom(from Token) *report.TextSpan {
	return report.Over(from.Span, p.previous().Span)
}

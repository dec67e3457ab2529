package syntax

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/report"
)

// newRules builds the Pratt table: for every token kind that participates
// in expression grammar, its (prefix, infix, precedence) triple.
func newRules() map[TokenKind]rule {
	r := map[TokenKind]rule{}

	r[LEFT_PAREN] = rule{prefix: grouping, infix: call, prec: PrecCall}
	r[LEFT_BRACKET] = rule{prefix: listLiteral, infix: index, prec: PrecCall}
	r[DOT] = rule{infix: dot, prec: PrecCall}
	r[COLON_COLON] = rule{infix: scopeAccess, prec: PrecCall}

	r[MINUS] = rule{prefix: unary, infix: binary, prec: PrecSum}
	r[PLUS] = rule{prefix: unary, infix: binary, prec: PrecSum}
	r[SLASH] = rule{infix: binary, prec: PrecProduct}
	r[STAR] = rule{infix: binary, prec: PrecProduct}
	r[PERCENT] = rule{infix: binary, prec: PrecProduct}

	r[BANG] = rule{prefix: unary}
	r[TILDE] = rule{prefix: unary}
	r[PLUS_PLUS] = rule{prefix: unary}
	r[MINUS_MINUS] = rule{prefix: unary}

	r[BANG_EQUAL] = rule{infix: binary, prec: PrecEquality}
	r[EQUAL_EQUAL] = rule{infix: binary, prec: PrecEquality}
	r[LESS] = rule{infix: binary, prec: PrecOrdering}
	r[LESS_EQUAL] = rule{infix: binary, prec: PrecOrdering}
	r[GREATER] = rule{infix: binary, prec: PrecOrdering}
	r[GREATER_EQUAL] = rule{infix: binary, prec: PrecOrdering}
	r[LESS_LESS] = rule{infix: binary, prec: PrecShift}
	r[GREATER_GREATER] = rule{infix: binary, prec: PrecShift}
	r[AMP] = rule{infix: binary, prec: PrecBitAnd}
	r[PIPE] = rule{infix: binary, prec: PrecBitOr}
	r[CARET] = rule{infix: binary, prec: PrecBitXor}
	r[DOT_DOT] = rule{infix: binary, prec: PrecRange}
	r[DOT_DOT_EQUAL] = rule{infix: binary, prec: PrecRange}

	r[AND] = rule{infix: logical, prec: PrecLogicAnd}
	r[OR] = rule{infix: logical, prec: PrecLogicOr}

	r[QUESTION] = rule{infix: ternary, prec: PrecTernary}
	r[COMMA] = rule{infix: comma, prec: PrecComma}

	r[IDENTIFIER] = rule{prefix: variable}
	r[INT_VALUE] = rule{prefix: literal}
	r[FLOAT_VALUE] = rule{prefix: literal}
	r[STRING_VALUE] = rule{prefix: literal}
	r[TRUE] = rule{prefix: literal}
	r[FALSE] = rule{prefix: literal}
	r[NULL] = rule{prefix: literal}
	r[THIS] = rule{prefix: this}
	r[SUPER] = rule{prefix: super}

	return r
}

func (p *Parser) ruleFor(kind TokenKind) rule {
	return rules[kind]
}

// parseExpression parses a full expression, including the top-level comma
// operator.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecComma)
}

// parseAssignmentExpression parses an expression without consuming a
// trailing comma operator, used wherever a single expression is expected
// (call arguments, a list literal's elements, etc).
func (p *Parser) parseAssignmentExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the core Pratt loop: parse a prefix expression, then
// keep consuming infix operators whose precedence is at least minPrec.
func (p *Parser) parsePrecedence(minPrec Precedence) ast.Expr {
	savedCanAssign := p.canAssign
	p.canAssign = minPrec <= PrecAssignment
	defer func() { p.canAssign = savedCanAssign }()

	tok := p.advance()
	prefixRule := p.ruleFor(tok.Kind)
	if prefixRule.prefix == nil {
		panic(report.Raise(tok.Span, "unexpected token %q in expression", tok.Lexeme))
	}
	left := prefixRule.prefix(p)

	for {
		nextRule := p.ruleFor(p.peek().Kind)
		if nextRule.infix == nil || nextRule.prec < minPrec {
			break
		}
		p.advance()
		left = nextRule.infix(p, left)
	}

	if minPrec <= PrecAssignment && isAssignOp(p.peek().Kind) {
		panic(report.Raise(p.peek().Span, "invalid assignment target"))
	}

	return left
}

func isAssignOp(k TokenKind) bool {
	switch k {
	case EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL:
		return true
	default:
		return false
	}
}

func assignOpFor(k TokenKind) ast.AssignOp {
	switch k {
	case PLUS_EQUAL:
		return ast.AssignAdd
	case MINUS_EQUAL:
		return ast.AssignSub
	case STAR_EQUAL:
		return ast.AssignMul
	case SLASH_EQUAL:
		return ast.AssignDiv
	default:
		return ast.AssignPlain
	}
}

// -- prefix handlers ------------------------------------------------------

func literal(p *Parser) ast.Expr {
	tok := p.previous()

	switch tok.Kind {
	case INT_VALUE:
		return ast.NewLiteral(tok.Span, ast.LitInt, tok.Lexeme)
	case FLOAT_VALUE:
		return ast.NewLiteral(tok.Span, ast.LitFloat, tok.Lexeme)
	case TRUE:
		return ast.NewLiteral(tok.Span, ast.LitBool, "true")
	case FALSE:
		return ast.NewLiteral(tok.Span, ast.LitBool, "false")
	case NULL:
		return ast.NewLiteral(tok.Span, ast.LitNull, "null")
	case STRING_VALUE:
		// Adjacent string literals concatenate at parse time: the scanner
		// never merges them (see SPEC_FULL.md's resolution of the open
		// question on this point).
		value := tok.Lexeme
		span := tok.Span
		for p.check(STRING_VALUE) {
			next := p.advance()
			value += next.Lexeme
			span = report.Over(span, next.Span)
		}
		return ast.NewLiteral(span, ast.LitString, value)
	}
	panic(report.Raise(tok.Span, "internal: literal() called on non-literal token"))
}

func variable(p *Parser) ast.Expr {
	tok := p.previous()
	v := ast.NewVariable(tok.Span, tok.Lexeme)

	if p.canAssign && isAssignOp(p.peek().Kind) {
		op := p.advance()
		value := p.parsePrecedence(PrecAssignment)
		return ast.NewAssign(report.Over(tok.Span, value.Span()), v, assignOpFor(op.Kind), value)
	}

	return v
}

func this(p *Parser) ast.Expr {
	tok := p.previous()
	if !(p.inClass && p.inFunction) {
		p.sink.Error(tok.Span, "'this' may only be used inside a method body")
	}
	return ast.NewThis(tok.Span)
}

func super(p *Parser) ast.Expr {
	tok := p.previous()
	if !(p.inClass && p.inFunction) {
		p.sink.Error(tok.Span, "'super' may only be used inside a method body")
	}
	p.consume(DOT, "expected '.' after 'super'")
	name := p.consume(IDENTIFIER, "expected member name after 'super.'")
	return ast.NewSuper(report.Over(tok.Span, name.Span), name.Lexeme)
}

// grouping handles `(expr)` and, when a comma follows the first element,
// a tuple literal `(a, b, c)`. A single parenthesized expression stays a
// Grouping node; two or more elements become a Tuple.
func grouping(p *Parser) ast.Expr {
	tok := p.previous()

	first := p.parseAssignmentExpression()
	if !p.check(COMMA) {
		close := p.consume(RIGHT_PAREN, "expected ')' after expression")
		return ast.NewGrouping(report.Over(tok.Span, close.Span), first)
	}

	elems := []ast.Expr{first}
	for p.match(COMMA) {
		elems = append(elems, p.parseAssignmentExpression())
	}
	close := p.consume(RIGHT_PAREN, "expected ')' after tuple elements")
	return ast.NewTuple(report.Over(tok.Span, close.Span), elems)
}

func listLiteral(p *Parser) ast.Expr {
	tok := p.previous()
	var elems []ast.Expr
	for !p.check(RIGHT_BRACKET) {
		elems = append(elems, p.parseAssignmentExpression())
		if !p.match(COMMA) {
			break
		}
	}
	close := p.consume(RIGHT_BRACKET, "expected ']' after list elements")
	return ast.NewList(report.Over(tok.Span, close.Span), elems)
}

func unary(p *Parser) ast.Expr {
	tok := p.previous()
	right := p.parsePrecedence(PrecUnary)
	return ast.NewUnary(report.Over(tok.Span, right.Span()), tok.Lexeme, right)
}

// -- infix handlers --------------------------------------------------------

func binary(p *Parser, left ast.Expr) ast.Expr {
	op := p.previous()
	rule := p.ruleFor(op.Kind)
	right := p.parsePrecedence(rule.prec + 1)
	return ast.NewBinary(report.Over(left.Span(), right.Span()), left, op.Lexeme, right)
}

func logical(p *Parser, left ast.Expr) ast.Expr {
	op := p.previous()
	rule := p.ruleFor(op.Kind)
	right := p.parsePrecedence(rule.prec + 1)
	return ast.NewLogical(report.Over(left.Span(), right.Span()), left, op.Lexeme, right)
}

func ternary(p *Parser, cond ast.Expr) ast.Expr {
	then := p.parsePrecedence(PrecTernary)
	p.consume(COLON, "expected ':' in ternary expression")
	els := p.parsePrecedence(PrecTernary)
	return ast.NewTernary(report.Over(cond.Span(), els.Span()), cond, then, els)
}

func comma(p *Parser, first ast.Expr) ast.Expr {
	exprs := []ast.Expr{first}
	exprs = append(exprs, p.parsePrecedence(PrecAssignment))
	for p.match(COMMA) {
		exprs = append(exprs, p.parsePrecedence(PrecAssignment))
	}
	return ast.NewComma(report.Over(first.Span(), exprs[len(exprs)-1].Span()), exprs)
}

func call(p *Parser, callee ast.Expr) ast.Expr {
	var args []ast.Expr
	for !p.check(RIGHT_PAREN) {
		args = append(args, p.parseAssignmentExpression())
		if !p.match(COMMA) {
			break
		}
	}
	close := p.consume(RIGHT_PAREN, "expected ')' after arguments")
	return ast.NewCall(report.Over(callee.Span(), close.Span), callee, args)
}

func index(p *Parser, object ast.Expr) ast.Expr {
	idx := p.parseExpression()
	close := p.consume(RIGHT_BRACKET, "expected ']' after index")
	idxExpr := ast.NewIndex(report.Over(object.Span(), close.Span), object, idx)

	if p.canAssign && isAssignOp(p.peek().Kind) {
		op := p.advance()
		value := p.parsePrecedence(PrecAssignment)
		return ast.NewListAssign(report.Over(object.Span(), value.Span()), idxExpr, assignOpFor(op.Kind), value)
	}

	return idxExpr
}

// dot handles `.` member access, including the `x.2.0` tuple-double-
// access disambiguation: a FLOAT_VALUE lexeme right after `.` is split
// into two synthetic member names and chained into two Get nodes.
func dot(p *Parser, object ast.Expr) ast.Expr {
	if p.check(FLOAT_VALUE) {
		tok := p.advance()
		first, second := splitFloatLexeme(tok.Lexeme)
		inner := ast.NewGet(report.Over(object.Span(), tok.Span), object, first)
		return finishGetOrSet(p, inner, tok.Span, second)
	}

	name := p.consume(IDENTIFIER, "expected member name after '.'")
	getExpr := ast.NewGet(report.Over(object.Span(), name.Span), object, name.Lexeme)
	return finishGetOrSet(p, getExpr, name.Span, "")
}

// finishGetOrSet wraps a freshly built Get node, handling the case where
// a second synthetic member name (from a split float lexeme) must chain
// another Get on top, and otherwise checking for a trailing assignment.
func finishGetOrSet(p *Parser, getExpr *ast.Get, span *report.TextSpan, pendingSecondMember string) ast.Expr {
	if pendingSecondMember != "" {
		return ast.NewGet(span, getExpr, pendingSecondMember)
	}

	if p.canAssign && isAssignOp(p.peek().Kind) {
		op := p.advance()
		value := p.parsePrecedence(PrecAssignment)
		return ast.NewSet(report.Over(getExpr.Span(), value.Span()), getExpr, assignOpFor(op.Kind), value)
	}

	return getExpr
}

// splitFloatLexeme breaks a scanned "2.0"-shaped lexeme into its integer
// parts either side of the dot, for the tuple double-access case.
func splitFloatLexeme(lexeme string) (first, second string) {
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '.' {
			return lexeme[:i], lexeme[i+1:]
		}
	}
	return lexeme, ""
}

func scopeAccess(p *Parser, left ast.Expr) ast.Expr {
	scopeName, ok := left.(*ast.Variable)
	if !ok {
		panic(report.Raise(left.Span(), "left side of '::' must be a module or class name"))
	}
	member := p.consume(IDENTIFIER, "expected member name after '::'")
	sn := ast.NewScopeName(scopeName.Span(), scopeName.Name)
	return ast.NewScopeAccess(report.Over(left.Span(), member.Span), sn, member.Lexeme)
}

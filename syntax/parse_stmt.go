package syntax

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/report"
)

// statement parses every statement form except the declarations handled
// directly in declaration() (class/fn/type/import/var).
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(LEFT_BRACE):
		return p.block()
	case p.match(BREAK):
		return p.breakStatement()
	case p.match(CONTINUE):
		return p.continueStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(FOR):
		return p.forStatement()
	case p.match(SWITCH):
		return p.switchStatement()
	default:
		return p.expressionStatement()
	}
}

// block parses `{ stmts... }`, introducing a new lexical scope level.
func (p *Parser) block() *ast.Block {
	start := p.consume(LEFT_BRACE, "expected '{'")
	p.skipEOLs()

	p.scopeDepth++
	defer func() { p.scopeDepth-- }()

	var stmts []ast.Stmt
	for !p.check(RIGHT_BRACE) && !p.check(END_OF_FILE) {
		if p.check(END_OF_LINE) {
			p.advance()
			continue
		}
		stmts = append(stmts, p.declaration())
		p.skipEOLs()
	}

	close := p.consume(RIGHT_BRACE, "expected '}' to close block")
	return ast.NewBlock(report.Over(start.Span, close.Span), stmts)
}

func (p *Parser) breakStatement() ast.Stmt {
	tok := p.previous()
	if !(p.inLoop || p.inSwitch) {
		p.sink.Error(tok.Span, "'break' is only legal inside a loop or switch")
	}
	stmt := ast.NewBreakStmt(tok.Span)
	p.endStatement()
	return stmt
}

func (p *Parser) continueStatement() ast.Stmt {
	tok := p.previous()
	if !p.inLoop {
		p.sink.Error(tok.Span, "'continue' is only legal inside a loop")
	}
	stmt := ast.NewContinueStmt(tok.Span)
	p.endStatement()
	return stmt
}

func (p *Parser) returnStatement() ast.Stmt {
	tok := p.previous()
	if !p.inFunction {
		p.sink.Error(tok.Span, "'return' is only legal inside a function body")
	}

	var value ast.Expr
	if !p.check(SEMICOLON) && !p.check(END_OF_LINE) {
		value = p.parseExpression()
	}

	span := tok.Span
	if value != nil {
		span = report.Over(tok.Span, value.Span())
	}
	stmt := ast.NewReturnStmt(span, value)
	p.endStatement()
	return stmt
}

func (p *Parser) ifStatement() ast.Stmt {
	start := p.previous()
	cond := p.parseExpression()
	then := p.block()

	var els ast.Stmt
	p.skipEOLs()
	if p.match(ELSE) {
		if p.match(IF) {
			els = p.ifStatement()
		} else {
			els = p.block()
		}
	}

	span := then.Span()
	if els != nil {
		span = report.Over(start.Span, els.Span())
	} else {
		span = report.Over(start.Span, span)
	}
	return ast.NewIfStmt(span, cond, then, els)
}

func (p *Parser) whileStatement() ast.Stmt {
	start := p.previous()

	savedInLoop := p.inLoop
	p.inLoop = true
	defer func() { p.inLoop = savedInLoop }()

	cond := p.parseExpression()
	body := p.block()
	return ast.NewWhileStmt(report.Over(start.Span, body.Span()), cond, body)
}

// forStatement parses `for(init?; cond?; step?) { body }` and desugars it
// immediately into `{ init; while cond { body; step; } }`, matching the
// for-loop desugaring boundary scenario exactly: no separate ForStmt node
// ever exists past this function.
func (p *Parser) forStatement() ast.Stmt {
	start := p.previous()
	p.consume(LEFT_PAREN, "expected '(' after 'for'")

	p.scopeDepth++
	defer func() { p.scopeDepth-- }()

	var init ast.Stmt
	if !p.check(SEMICOLON) {
		switch {
		case p.check(VAR), p.check(CONST), p.check(REF):
			init = p.varDeclaration()
		default:
			init = p.expressionStatementNoTerm()
		}
	}
	p.consume(SEMICOLON, "expected ';' after for-loop initializer")

	var cond ast.Expr
	if !p.check(SEMICOLON) {
		cond = p.parseExpression()
	} else {
		cond = ast.NewLiteral(p.peek().Span, ast.LitBool, "true")
	}
	p.consume(SEMICOLON, "expected ';' after for-loop condition")

	var step ast.Expr
	if !p.check(RIGHT_PAREN) {
		step = p.parseExpression()
	}
	p.consume(RIGHT_PAREN, "expected ')' after for-loop clauses")

	savedInLoop := p.inLoop
	p.inLoop = true
	body := p.block()
	p.inLoop = savedInLoop

	bodyStmts := append([]ast.Stmt{}, body.Stmts...)
	if step != nil {
		bodyStmts = append(bodyStmts, ast.NewExpressionStmt(step.Span(), step))
	}
	loopBody := ast.NewBlock(body.Span(), bodyStmts)
	whileStmt := ast.NewWhileStmt(report.Over(start.Span, loopBody.Span()), cond, loopBody)

	var outer []ast.Stmt
	if init != nil {
		outer = append(outer, init)
	}
	outer = append(outer, whileStmt)

	return ast.NewBlock(report.Over(start.Span, whileStmt.Span()), outer)
}

func (p *Parser) switchStatement() ast.Stmt {
	start := p.previous()
	discriminant := p.parseExpression()
	p.consume(LEFT_BRACE, "expected '{' to start switch body")
	p.skipEOLs()

	savedInSwitch := p.inSwitch
	p.inSwitch = true
	defer func() { p.inSwitch = savedInSwitch }()

	var cases []ast.SwitchCase
	haveDefault := false
	for !p.check(RIGHT_BRACE) && !p.check(END_OF_FILE) {
		var c ast.SwitchCase
		if p.match(DEFAULT) {
			if haveDefault {
				p.sink.Error(p.previous().Span, "switch may have at most one 'default' arm")
			}
			haveDefault = true
			c.IsDefault = true
		} else {
			c.Expr = p.parseExpression()
		}
		p.consume(ARROW, "expected '->' after switch case")
		c.Body = p.statement()
		cases = append(cases, c)
		p.skipEOLs()
	}

	close := p.consume(RIGHT_BRACE, "expected '}' to close switch body")
	return ast.NewSwitchStmt(report.Over(start.Span, close.Span), discriminant, cases)
}

func (p *Parser) expressionStatement() ast.Stmt {
	stmt := p.expressionStatementNoTerm()
	p.endStatement()
	return stmt
}

func (p *Parser) expressionStatementNoTerm() ast.Stmt {
	expr := p.parseExpression()
	return ast.NewExpressionStmt(expr.Span(), expr)
}

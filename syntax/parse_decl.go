package syntax

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/common"
	"github.com/dc03/wis/report"
)

// declaration is the entry point for every top-level and block-level
// production. A syntax error anywhere beneath it unwinds here via panic,
// is reported, and synchronize() puts the token stream back into a state
// where the caller's loop can keep going; the offending statement becomes
// a NullStmt placeholder rather than aborting the whole parse.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if p.sink.Catch(recover()) {
			p.synchronize()
			stmt = &ast.NullStmt{}
		}
	}()

	switch {
	case p.match(CLASS):
		return p.classDeclaration()
	case p.match(FN):
		return p.functionDeclaration(common.Public, false)
	case p.match(TYPE):
		return p.typeDeclaration()
	case p.match(IMPORT):
		return p.importDeclaration()
	case p.check(VAR), p.check(CONST), p.check(REF):
		stmt := p.varDeclaration()
		p.endStatement()
		return stmt
	default:
		return p.statement()
	}
}

// classDeclaration parses `class Name { (visibility (var|const|ref|fn) …)* }`.
func (p *Parser) classDeclaration() ast.Stmt {
	start := p.previous()
	name := p.consume(IDENTIFIER, "expected class name")
	class := ast.NewClassStmt(report.Over(start.Span, name.Span), name.Lexeme)
	class.ModuleName = p.module.Name

	savedClass, savedInClass := p.currentClass, p.inClass
	p.currentClass, p.inClass = class, true
	defer func() { p.currentClass, p.inClass = savedClass, savedInClass }()

	p.consume(LEFT_BRACE, "expected '{' to start class body")
	p.skipEOLs()

	for !p.check(RIGHT_BRACE) && !p.check(END_OF_FILE) {
		vis := p.visibility()

		switch {
		case p.match(FN):
			method := p.functionDeclaration(vis, true)
			fn := method.(*ast.FunctionStmt)
			if !class.AddMethod(fn) {
				p.sink.Error(fn.Span(), "cannot declare constructors or destructors more than once")
			}
		case p.check(VAR), p.check(CONST), p.check(REF):
			v := p.varDeclaration()
			p.endStatement()
			class.Members = append(class.Members, ast.Member{Var: v, Visibility: vis})
		default:
			panic(report.Raise(p.peek().Span, "expected member declaration inside class body"))
		}

		p.skipEOLs()
	}

	close := p.consume(RIGHT_BRACE, "expected '}' to close class body")
	class.StmtBase = ast.NewStmtBase(report.Over(start.Span, close.Span))

	if p.scopeDepth == 0 {
		if _, dup := p.module.Classes[class.Name]; dup {
			p.sink.Error(class.Span(), "duplicate class name %q in module %q", class.Name, p.module.Name)
		} else {
			p.module.Classes[class.Name] = class
		}
	}

	return class
}

// visibility parses the mandatory `public`/`protected`/`private` prefix
// before a class member.
func (p *Parser) visibility() common.VisibilityKind {
	switch {
	case p.match(PUBLIC):
		return common.Public
	case p.match(PROTECTED):
		return common.Protected
	case p.match(PRIVATE):
		return common.Private
	default:
		panic(report.Raise(p.peek().Span, "expected visibility modifier ('public', 'protected', or 'private')"))
	}
}

// functionDeclaration parses `fn name(param: type, …) -> type { body }`.
// A destructor is spelled `fn ~Name(...)`; the leading `~` (if any) is
// scanned as a TILDE token, which this function consumes before the name.
func (p *Parser) functionDeclaration(vis common.VisibilityKind, isMethod bool) ast.Stmt {
	start := p.previous()

	namePrefix := ""
	if p.match(TILDE) {
		namePrefix = "~"
	}
	nameTok := p.consume(IDENTIFIER, "expected function name")
	name := namePrefix + nameTok.Lexeme

	p.consume(LEFT_PAREN, "expected '(' after function name")
	var params []ast.Param
	for !p.check(RIGHT_PAREN) {
		pname := p.consume(IDENTIFIER, "expected parameter name")
		p.consume(COLON, "expected ':' after parameter name")
		ptype := p.parseType()
		params = append(params, ast.Param{Name: pname.Lexeme, Type: ptype})
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' after parameters")
	p.skipEOLs()

	var retType *ast.Type
	if p.match(ARROW) {
		p.skipEOLs()
		retType = p.parseType()
	} else {
		retType = ast.NewPrimitiveType(nameTok.Span, ast.PrimUnit, false, false)
	}

	isCtor := name == p.currentClassName()
	isDtor := name == "~"+p.currentClassName()

	savedInFunction, savedInCtor, savedInDtor := p.inFunction, p.inCtor, p.inDtor
	savedScopeDepth := p.scopeDepth
	p.inFunction, p.inCtor, p.inDtor = true, isCtor, isDtor
	p.scopeDepth++
	defer func() {
		p.inFunction, p.inCtor, p.inDtor = savedInFunction, savedInCtor, savedInDtor
		p.scopeDepth = savedScopeDepth
	}()

	body := p.block()

	fn := ast.NewFunctionStmt(report.Over(start.Span, body.Span()), name, retType, params, body)
	fn.Visibility = vis
	fn.IsMethod = isMethod
	fn.IsCtor = isCtor
	fn.IsDtor = isDtor

	if !isMethod && savedScopeDepth == 0 {
		if _, dup := p.module.Functions[name]; dup {
			p.sink.Error(fn.Span(), "duplicate function name %q in module %q", name, p.module.Name)
		} else {
			p.module.Functions[name] = fn
		}
	}

	return fn
}

func (p *Parser) currentClassName() string {
	if p.currentClass == nil {
		return ""
	}
	return p.currentClass.Name
}

// typeDeclaration parses `type Name = type_expr;`.
func (p *Parser) typeDeclaration() ast.Stmt {
	start := p.previous()
	name := p.consume(IDENTIFIER, "expected type alias name")
	p.consume(EQUAL, "expected '=' in type alias")
	expr := p.parseType()
	stmt := ast.NewTypeStmt(report.Over(start.Span, expr.Span()), name.Lexeme, expr)
	p.endStatement()
	return stmt
}

// varDeclaration parses `var|const|ref name[: type] [= expr]`. It does
// not consume the terminating `;`/newline; callers do that, since this
// helper is reused both for statements and for-loop desugaring where the
// surrounding grammar controls the terminator.
func (p *Parser) varDeclaration() *ast.VarStmt {
	var keyword ast.VarKeyword
	start := p.advance()
	switch start.Kind {
	case VAR:
		keyword = ast.VarVar
	case CONST:
		keyword = ast.VarConst
	case REF:
		keyword = ast.VarRef
	}

	name := p.consume(IDENTIFIER, "expected variable name")

	var declaredType *ast.Type
	if p.match(COLON) {
		declaredType = p.parseType()
	}

	var init ast.Expr
	if p.match(EQUAL) {
		init = p.parseAssignmentExpression()
	}

	span := name.Span
	if init != nil {
		span = report.Over(name.Span, init.Span())
	} else if declaredType != nil {
		span = report.Over(name.Span, declaredType.Span())
	}

	return ast.NewVarStmt(report.Over(start.Span, span), keyword, name.Lexeme, declaredType, init)
}

// parseType parses a type expression: a primitive name, a user-defined
// (class) name, a list type `[elem]` or `[elem; size]`, a tuple type
// `(t1, t2, ...)`, or `typeof(expr)`. `const`/`ref` prefixes set the
// IsConst/IsRef flags on the resulting node.
func (p *Parser) parseType() *ast.Type {
	isConst := p.match(CONST)
	isRef := p.match(REF)
	start := p.peek()

	switch {
	case p.match(TYPEOF):
		p.consume(LEFT_PAREN, "expected '(' after 'typeof'")
		expr := p.parseExpression()
		close := p.consume(RIGHT_PAREN, "expected ')' after typeof expression")
		return ast.NewTypeofType(report.Over(start.Span, close.Span), expr, isConst, isRef)

	case p.match(LEFT_BRACKET):
		elem := p.parseType()
		var size ast.Expr
		if p.match(SEMICOLON) {
			size = p.parseAssignmentExpression()
		}
		close := p.consume(RIGHT_BRACKET, "expected ']' to close list type")
		return ast.NewListType(report.Over(start.Span, close.Span), elem, size, isConst, isRef)

	case p.match(LEFT_PAREN):
		var elems []*ast.Type
		for !p.check(RIGHT_PAREN) {
			elems = append(elems, p.parseType())
			if !p.match(COMMA) {
				break
			}
		}
		close := p.consume(RIGHT_PAREN, "expected ')' to close tuple type")
		return ast.NewTupleType(report.Over(start.Span, close.Span), elems, isConst, isRef)

	case p.check(NULL):
		tok := p.advance()
		return ast.NewPrimitiveType(tok.Span, ast.PrimNull, isConst, isRef)

	default:
		if p.check(IDENTIFIER) {
			if prim, ok := primitiveNames[p.peek().Lexeme]; ok {
				tok := p.advance()
				return ast.NewPrimitiveType(tok.Span, prim, isConst, isRef)
			}
		}

		name := p.consume(IDENTIFIER, "expected type name")
		return ast.NewUserDefinedType(name.Span, name.Lexeme, isConst, isRef)
	}
}

// primitiveNames are not reserved words: `int`, `float`, `string`, `bool`,
// and `unit` are ordinary identifiers the parser recognizes by spelling
// only when parsing a type expression, which keeps them available as
// plain variable names everywhere else in the grammar.
var primitiveNames = map[string]ast.PrimitiveKind{
	"int":    ast.PrimInt,
	"float":  ast.PrimFloat,
	"string": ast.PrimString,
	"bool":   ast.PrimBool,
	"unit":   ast.PrimUnit,
}

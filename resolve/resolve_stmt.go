package resolve

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/typing"
)

func (r *Resolver) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.NullStmt:
		// A parse-error or import placeholder: nothing to check.
	case *ast.Block:
		r.checkBlock(s)
	case *ast.ExpressionStmt:
		r.checkExpr(s.Expression)
	case *ast.VarStmt:
		r.checkVarStmt(s)
	case *ast.FunctionStmt:
		r.checkFunctionStmt(s)
	case *ast.ClassStmt:
		r.checkClassStmt(s)
	case *ast.IfStmt:
		r.checkIfStmt(s)
	case *ast.WhileStmt:
		r.withLoop(func() {
			r.checkCondition(s.Cond)
			r.checkBlock(s.Body)
		})
	case *ast.SwitchStmt:
		r.checkSwitchStmt(s)
	case *ast.ReturnStmt:
		r.checkReturnStmt(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Legality was already checked by the parser's context flags;
		// nothing further to resolve.
	case *ast.TypeStmt:
		r.resolveTypeExpr(s.Expr)
	}
}

func (r *Resolver) checkBlock(b *ast.Block) {
	r.beginScope()
	defer r.endScope()

	for _, stmt := range b.Stmts {
		r.checkStmt(stmt)
	}
}

func (r *Resolver) checkCondition(cond ast.Expr) {
	t := r.checkExpr(cond)
	if !typing.IsError(t) && t.Kind != typing.KindBool {
		r.sink.Error(cond.Span(), "condition must be type bool, got %s", typing.Repr(t))
	}
}

func (r *Resolver) checkVarStmt(s *ast.VarStmt) {
	var declared *typing.DataType
	if s.DeclaredType != nil {
		declared = r.resolveTypeExpr(s.DeclaredType)
	}

	var initType *typing.DataType
	if s.Initializer != nil {
		initType = r.checkExpr(s.Initializer)
	}

	switch {
	case declared != nil && initType != nil:
		r.checkAssignable(s.Initializer.Span(), declared, initType, &s.Conversion)
		s.ResolvedType = declared
	case declared != nil:
		s.ResolvedType = declared
	case initType != nil:
		s.ResolvedType = initType
	default:
		r.sink.Error(s.Span(), "variable %q needs either a type annotation or an initializer", s.Name)
		s.ResolvedType = typing.Error()
	}

	if initType != nil && s.ResolvedType.Kind == typing.KindClass && !s.ResolvedType.Ref {
		s.RequiresCopy = true
	}

	isConst := s.Keyword == ast.VarConst
	r.declare(s.Name, s.ResolvedType, isConst, s)
}

func (r *Resolver) checkFunctionStmt(s *ast.FunctionStmt) {
	savedFn, savedInFunction := r.currentFunction, r.inFunction
	r.currentFunction, r.inFunction = s, true
	defer func() { r.currentFunction, r.inFunction = savedFn, savedInFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range s.Params {
		r.declare(param.Name, r.resolveTypeExpr(param.Type), false, nil)
	}

	r.checkBlock(s.Body)
}

func (r *Resolver) checkIfStmt(s *ast.IfStmt) {
	r.checkCondition(s.Cond)
	r.checkBlock(s.Then)
	if s.Else != nil {
		r.checkStmt(s.Else)
	}
}

func (r *Resolver) checkSwitchStmt(s *ast.SwitchStmt) {
	discType := r.checkExpr(s.Discriminant)

	r.withSwitch(func() {
		for _, c := range s.Cases {
			if !c.IsDefault {
				caseType := r.checkExpr(c.Expr)
				if !typing.Equals(discType, caseType) {
					r.sink.Error(c.Expr.Span(), "switch case type %s does not match discriminant type %s",
						typing.Repr(caseType), typing.Repr(discType))
				}
			}
			r.checkStmt(c.Body)
		}
	})
}

func (r *Resolver) checkReturnStmt(s *ast.ReturnStmt) {
	if r.currentFunction == nil {
		return
	}
	retType := r.currentFunction.ResolvedType.Return

	if s.Value == nil {
		if !typing.IsError(retType) && retType.Kind != typing.KindUnit && retType.Kind != typing.KindNull {
			r.sink.Error(s.Span(), "missing return value for function declared to return %s", typing.Repr(retType))
		}
		return
	}

	valType := r.checkExpr(s.Value)
	var conv typing.NumericConversion
	r.checkAssignable(s.Value.Span(), retType, valType, &conv)
	s.Value.Resolved().Conv = conv
}

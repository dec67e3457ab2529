package resolve

import "github.com/dc03/wis/ast"

// checkClassStmt resolves a class's member types, then checks every
// method body with the class context (this/super/ctor/dtor flags)
// established. Duplicate member or method names are reported once each.
func (r *Resolver) checkClassStmt(c *ast.ClassStmt) {
	savedClass, savedClassTyp, savedInClass := r.currentClass, r.currentClassTyp, r.inClass
	r.currentClass, r.currentClassTyp, r.inClass = c, c.ClassType, true
	defer func() { r.currentClass, r.currentClassTyp, r.inClass = savedClass, savedClassTyp, savedInClass }()

	seen := map[string]bool{}

	for _, m := range c.Members {
		if seen[m.Var.Name] {
			r.sink.Error(m.Var.Span(), "duplicate member name %q in class %q", m.Var.Name, c.Name)
		}
		seen[m.Var.Name] = true

		if m.Var.DeclaredType != nil {
			m.Var.ResolvedType = r.resolveTypeExpr(m.Var.DeclaredType)
		} else if m.Var.Initializer != nil {
			m.Var.ResolvedType = r.checkExpr(m.Var.Initializer)
		} else {
			r.sink.Error(m.Var.Span(), "member %q needs either a type annotation or an initializer", m.Var.Name)
		}
	}

	for _, method := range c.Methods {
		if seen[method.Name] {
			r.sink.Error(method.Span(), "duplicate method name %q in class %q", method.Name, c.Name)
		}
		seen[method.Name] = true
		method.ResolvedType = r.functionSignature(method)
	}

	for _, method := range c.Methods {
		r.checkMethodBody(c, method)
	}
}

func (r *Resolver) checkMethodBody(c *ast.ClassStmt, method *ast.FunctionStmt) {
	savedFn, savedInFunction := r.currentFunction, r.inFunction
	savedInCtor, savedInDtor := r.inCtor, r.inDtor
	r.currentFunction, r.inFunction = method, true
	r.inCtor, r.inDtor = method.IsCtor, method.IsDtor
	defer func() {
		r.currentFunction, r.inFunction = savedFn, savedInFunction
		r.inCtor, r.inDtor = savedInCtor, savedInDtor
	}()

	r.beginScope()
	defer r.endScope()

	for _, param := range method.Params {
		r.declare(param.Name, r.resolveTypeExpr(param.Type), false, nil)
	}

	r.checkBlock(method.Body)
}

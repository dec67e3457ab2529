package resolve

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/common"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/typing"
)

// checkExpr type-checks an expression, returning its resolved type and
// filling in its Resolved() record as a side effect.
func (r *Resolver) checkExpr(e ast.Expr) *typing.DataType {
	t := r.synthesize(e)
	e.Resolved().Type = t
	return t
}

func (r *Resolver) synthesize(e ast.Expr) *typing.DataType {
	switch ex := e.(type) {
	case *ast.Literal:
		return r.checkLiteral(ex)
	case *ast.Variable:
		return r.checkVariable(ex)
	case *ast.Grouping:
		return r.checkExpr(ex.Inner)
	case *ast.Assign:
		return r.checkAssign(ex)
	case *ast.Binary:
		return r.checkBinary(ex)
	case *ast.Logical:
		return r.checkLogical(ex)
	case *ast.Unary:
		return r.checkUnary(ex)
	case *ast.Ternary:
		return r.checkTernary(ex)
	case *ast.Comma:
		var last *typing.DataType
		for _, sub := range ex.Exprs {
			last = r.checkExpr(sub)
		}
		return last
	case *ast.Tuple:
		elems := make([]*typing.DataType, len(ex.Elems))
		for i, sub := range ex.Elems {
			elems[i] = r.checkExpr(sub)
		}
		return typing.Tuple(elems)
	case *ast.List:
		return r.checkList(ex)
	case *ast.Index:
		return r.checkIndex(ex)
	case *ast.ListAssign:
		return r.checkListAssign(ex)
	case *ast.Get:
		return r.checkGet(ex)
	case *ast.Set:
		return r.checkSet(ex)
	case *ast.Call:
		return r.checkCall(ex)
	case *ast.This:
		return r.checkThis(ex)
	case *ast.Super:
		return r.checkSuper(ex)
	case *ast.ScopeName:
		return r.checkScopeName(ex)
	case *ast.ScopeAccess:
		return r.checkScopeAccess(ex)
	default:
		r.sink.Error(e.Span(), "internal: unhandled expression kind")
		return typing.Error()
	}
}

func (r *Resolver) checkLiteral(l *ast.Literal) *typing.DataType {
	switch l.Kind {
	case ast.LitInt:
		return typing.Int(true)
	case ast.LitFloat:
		return typing.Float(true)
	case ast.LitString:
		return typing.String(true)
	case ast.LitBool:
		return typing.Bool(true)
	default:
		return typing.Null()
	}
}

func (r *Resolver) checkVariable(v *ast.Variable) *typing.DataType {
	if entry := r.lookup(v.Name); entry != nil {
		// Top-level classes and functions are on the scope stack too (see
		// registerTopLevel); attach their back-reference here.
		if entry.Depth == 0 && entry.VarDecl == nil {
			if fn, ok := r.module.Functions[v.Name]; ok {
				v.Resolved().FuncRef = fn
			} else if class, ok := r.module.Classes[v.Name]; ok {
				v.Resolved().ClassRef = class
			}
		}
		return entry.Type
	}

	if r.inClass {
		for _, m := range r.currentClass.Members {
			if m.Var.Name == v.Name {
				if !r.visibilityAllows(m.Visibility, r.currentClass) {
					r.sink.Error(v.Span(), "member %q is not accessible here", v.Name)
				}
				return m.Var.ResolvedType
			}
		}
	}

	if fn, ok := r.module.Functions[v.Name]; ok {
		v.Resolved().FuncRef = fn
		return fn.ResolvedType
	}
	if class, ok := r.module.Classes[v.Name]; ok {
		v.Resolved().ClassRef = class
		return class.ClassType
	}

	r.sink.Error(v.Span(), "undefined name %q", v.Name)
	return typing.Error()
}

// checkAssignable validates that a value of type `from` may be used where
// a value of type `to` is expected, recording an INT->FLOAT widening on
// *conv when required. A mismatch reports exactly one error; an error
// sentinel on either side is treated as already-reported and passes.
func (r *Resolver) checkAssignable(span *report.TextSpan, to, from *typing.DataType, conv *typing.NumericConversion) bool {
	if typing.IsError(to) || typing.IsError(from) {
		return true
	}

	if typing.Equals(to, from) {
		return true
	}

	if to.Kind == typing.KindFloat && from.Kind == typing.KindInt {
		*conv = typing.ConversionIntToFloat
		return true
	}

	r.sink.Error(span, "cannot use value of type %s where %s is expected", typing.Repr(from), typing.Repr(to))
	return false
}

func (r *Resolver) checkAssign(a *ast.Assign) *typing.DataType {
	targetType := r.checkExpr(a.Target)
	entry := r.lookup(a.Target.Name)
	if entry != nil && entry.IsConst {
		r.sink.Error(a.Target.Span(), "cannot assign to const variable %q", a.Target.Name)
	}

	valueType := r.checkExpr(a.Value)
	if a.Op != ast.AssignPlain {
		requireNumericOrStringPlus(r, a.Span(), targetType, valueType, a.Op)
	} else {
		var conv typing.NumericConversion
		r.checkAssignable(a.Value.Span(), targetType, valueType, &conv)
		a.Resolved().Conv = conv
	}
	return targetType
}

func requireNumericOrStringPlus(r *Resolver, span *report.TextSpan, target, value *typing.DataType, op ast.AssignOp) {
	if typing.IsError(target) || typing.IsError(value) {
		return
	}
	if op == ast.AssignAdd && target.Kind == typing.KindString && value.Kind == typing.KindString {
		return
	}
	if !typing.IsNumeric(target) || !typing.IsNumeric(value) {
		r.sink.Error(span, "compound assignment requires numeric operands, got %s and %s", typing.Repr(target), typing.Repr(value))
	}
}

func (r *Resolver) checkBinary(b *ast.Binary) *typing.DataType {
	left := r.checkExpr(b.Left)
	right := r.checkExpr(b.Right)

	switch b.Operator {
	case "+", "-", "*", "/", "%":
		if b.Operator == "+" && left.Kind == typing.KindString && right.Kind == typing.KindString {
			return typing.String(true)
		}
		return r.arithmeticResult(b, left, right)
	case "<", "<=", ">", ">=":
		r.requireNumeric(b.Span(), left, right)
		return typing.Bool(true)
	case "==", "!=":
		r.requireComparable(b.Span(), left, right)
		return typing.Bool(true)
	case "<<", ">>", "&", "|", "^":
		r.requireInt(b.Span(), left, right)
		return typing.Int(true)
	case "..", "..=":
		r.requireInt(b.Span(), left, right)
		return typing.Range()
	default:
		r.sink.Error(b.Span(), "internal: unhandled binary operator %q", b.Operator)
		return typing.Error()
	}
}

// arithmeticResult implements the widening rule: FLOAT if either operand
// is FLOAT, else INT, recording the INT->FLOAT conversion on whichever
// operand needed it.
func (r *Resolver) arithmeticResult(b *ast.Binary, left, right *typing.DataType) *typing.DataType {
	if !r.requireNumeric(b.Span(), left, right) {
		return typing.Error()
	}

	if left.Kind == typing.KindFloat || right.Kind == typing.KindFloat {
		if left.Kind == typing.KindInt {
			b.Left.Resolved().Conv = typing.ConversionIntToFloat
		}
		if right.Kind == typing.KindInt {
			b.Right.Resolved().Conv = typing.ConversionIntToFloat
		}
		return typing.Float(true)
	}
	return typing.Int(true)
}

func (r *Resolver) requireNumeric(span *report.TextSpan, left, right *typing.DataType) bool {
	if typing.IsError(left) || typing.IsError(right) {
		return false
	}
	if !typing.IsNumeric(left) || !typing.IsNumeric(right) {
		r.sink.Error(span, "operands must be numeric, got %s and %s", typing.Repr(left), typing.Repr(right))
		return false
	}
	return true
}

func (r *Resolver) requireInt(span *report.TextSpan, left, right *typing.DataType) bool {
	if typing.IsError(left) || typing.IsError(right) {
		return false
	}
	if left.Kind != typing.KindInt || right.Kind != typing.KindInt {
		r.sink.Error(span, "operands must be int, got %s and %s", typing.Repr(left), typing.Repr(right))
		return false
	}
	return true
}

func (r *Resolver) requireComparable(span *report.TextSpan, left, right *typing.DataType) bool {
	if typing.IsError(left) || typing.IsError(right) {
		return false
	}
	if left.Kind == typing.KindClass && right.Kind == typing.KindClass {
		if left.ClassName == right.ClassName && left.ClassModule == right.ClassModule {
			return true
		}
		r.sink.Error(span, "cannot compare values of different classes %s and %s", left.ClassName, right.ClassName)
		return false
	}
	if !typing.Equals(left, right) {
		r.sink.Error(span, "cannot compare values of type %s and %s", typing.Repr(left), typing.Repr(right))
		return false
	}
	return true
}

func (r *Resolver) checkLogical(l *ast.Logical) *typing.DataType {
	left := r.checkExpr(l.Left)
	right := r.checkExpr(l.Right)
	if !typing.IsError(left) && left.Kind != typing.KindBool {
		r.sink.Error(l.Left.Span(), "operand of %q must be bool, got %s", l.Operator, typing.Repr(left))
	}
	if !typing.IsError(right) && right.Kind != typing.KindBool {
		r.sink.Error(l.Right.Span(), "operand of %q must be bool, got %s", l.Operator, typing.Repr(right))
	}
	return typing.Bool(true)
}

func (r *Resolver) checkUnary(u *ast.Unary) *typing.DataType {
	right := r.checkExpr(u.Right)
	switch u.Operator {
	case "-", "+":
		if !typing.IsError(right) && !typing.IsNumeric(right) {
			r.sink.Error(u.Span(), "unary %q requires a numeric operand, got %s", u.Operator, typing.Repr(right))
			return typing.Error()
		}
		return right
	case "!":
		if !typing.IsError(right) && right.Kind != typing.KindBool {
			r.sink.Error(u.Span(), "unary '!' requires a bool operand, got %s", typing.Repr(right))
		}
		return typing.Bool(true)
	case "~":
		if !typing.IsError(right) && right.Kind != typing.KindInt {
			r.sink.Error(u.Span(), "unary '~' requires an int operand, got %s", typing.Repr(right))
		}
		return typing.Int(true)
	case "++", "--":
		if _, ok := u.Right.(*ast.Variable); !ok {
			r.sink.Error(u.Span(), "%q requires an assignable operand", u.Operator)
		}
		if !typing.IsError(right) && !typing.IsNumeric(right) {
			r.sink.Error(u.Span(), "%q requires a numeric operand, got %s", u.Operator, typing.Repr(right))
		}
		return right
	default:
		return typing.Error()
	}
}

func (r *Resolver) checkTernary(t *ast.Ternary) *typing.DataType {
	r.checkCondition(t.Cond)
	thenType := r.checkExpr(t.Then)
	elseType := r.checkExpr(t.Else)

	var conv typing.NumericConversion
	if r.checkAssignable(t.Else.Span(), thenType, elseType, &conv) {
		t.Else.Resolved().Conv = conv
		return thenType
	}
	return typing.Error()
}

func (r *Resolver) checkList(l *ast.List) *typing.DataType {
	if len(l.Elems) == 0 {
		return typing.List(typing.Unit(), 0)
	}
	elemType := r.checkExpr(l.Elems[0])
	for _, e := range l.Elems[1:] {
		t := r.checkExpr(e)
		if !typing.Equals(elemType, t) {
			r.sink.Error(e.Span(), "list elements must share one type: expected %s, got %s", typing.Repr(elemType), typing.Repr(t))
		}
	}
	return typing.List(elemType, len(l.Elems))
}

func (r *Resolver) checkIndex(i *ast.Index) *typing.DataType {
	objType := r.checkExpr(i.Object)
	idxType := r.checkExpr(i.Idx)

	if typing.IsError(objType) {
		return typing.Error()
	}
	if objType.Kind != typing.KindList {
		r.sink.Error(i.Object.Span(), "cannot index into non-list type %s", typing.Repr(objType))
		return typing.Error()
	}
	if !typing.IsError(idxType) && idxType.Kind != typing.KindInt {
		r.sink.Error(i.Idx.Span(), "list index must be int, got %s", typing.Repr(idxType))
	}

	elem := *objType.Elem
	elem.Const = objType.Const
	elem.Ref = objType.Ref
	return &elem
}

func (r *Resolver) checkListAssign(la *ast.ListAssign) *typing.DataType {
	targetType := r.checkExpr(la.Target)
	if targetType.Const {
		r.sink.Error(la.Target.Span(), "cannot assign into a const list")
	}
	valueType := r.checkExpr(la.Value)

	if la.Op != ast.AssignPlain {
		requireNumericOrStringPlus(r, la.Span(), targetType, valueType, la.Op)
	} else {
		var conv typing.NumericConversion
		r.checkAssignable(la.Value.Span(), targetType, valueType, &conv)
		la.Resolved().Conv = conv
	}
	return targetType
}

func (r *Resolver) checkGet(g *ast.Get) *typing.DataType {
	objType := r.checkExpr(g.Object)
	if typing.IsError(objType) {
		return typing.Error()
	}

	if objType.Kind == typing.KindTuple {
		idx, ok := tupleIndexFromName(g.Name)
		if !ok || idx < 0 || idx >= len(objType.Elems) {
			r.sink.Error(g.Span(), "tuple has no member %q", g.Name)
			return typing.Error()
		}
		return objType.Elems[idx]
	}

	if objType.Kind != typing.KindClass {
		r.sink.Error(g.Object.Span(), "cannot access member of non-class type %s", typing.Repr(objType))
		return typing.Error()
	}

	class, ok := r.module.Classes[objType.ClassName]
	if !ok {
		r.sink.Error(g.Span(), "internal: class %q not found in module", objType.ClassName)
		return typing.Error()
	}

	if member, vis, ok := findMember(class, g.Name); ok {
		if !r.visibilityAllows(vis, class) {
			r.sink.Error(g.Span(), "member %q of class %q is not accessible here", g.Name, class.Name)
		}
		// A member read through a const-qualified object (this outside a
		// constructor/destructor, in particular) is itself const, the same
		// way checkIndex propagates a const list's element constness.
		if objType.Const {
			return typing.AsConst(member.ResolvedType, true)
		}
		return member.ResolvedType
	}
	if method, vis, ok := findMethod(class, g.Name); ok {
		if !r.visibilityAllows(vis, class) {
			r.sink.Error(g.Span(), "method %q of class %q is not accessible here", g.Name, class.Name)
		}
		g.Resolved().FuncRef = method
		return method.ResolvedType
	}

	r.sink.Error(g.Span(), "class %q has no member %q", class.Name, g.Name)
	return typing.Error()
}

func tupleIndexFromName(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func findMember(class *ast.ClassStmt, name string) (*ast.VarStmt, common.VisibilityKind, bool) {
	for _, m := range class.Members {
		if m.Var.Name == name {
			return m.Var, m.Visibility, true
		}
	}
	return nil, common.Public, false
}

func findMethod(class *ast.ClassStmt, name string) (*ast.FunctionStmt, common.VisibilityKind, bool) {
	for _, m := range class.Methods {
		if m.Name == name {
			return m, m.Visibility, true
		}
	}
	return nil, common.Public, false
}

// visibilityAllows checks a member access against the resolver's current
// class context: public is always visible; protected requires the
// current class to be (or derive from) the owner (no inheritance exists
// today, so this degenerates to "be the owner"); private requires the
// current class to literally be the owner.
func (r *Resolver) visibilityAllows(vis common.VisibilityKind, owner *ast.ClassStmt) bool {
	if vis == common.Public {
		return true
	}
	if r.currentClass == nil {
		return false
	}
	return r.currentClass.Name == owner.Name && r.currentClass.ModuleName == owner.ModuleName
}

func (r *Resolver) checkSet(s *ast.Set) *typing.DataType {
	targetType := r.checkGet(s.Target)
	if targetType.Const {
		r.sink.Error(s.Target.Span(), "cannot assign to const member %q", s.Target.Name)
	}
	valueType := r.checkExpr(s.Value)

	if s.Op != ast.AssignPlain {
		requireNumericOrStringPlus(r, s.Span(), targetType, valueType, s.Op)
	} else {
		var conv typing.NumericConversion
		r.checkAssignable(s.Value.Span(), targetType, valueType, &conv)
		s.Resolved().Conv = conv
	}
	return targetType
}

func (r *Resolver) checkCall(c *ast.Call) *typing.DataType {
	calleeType := r.checkExpr(c.Callee)
	if typing.IsError(calleeType) {
		for _, a := range c.Args {
			r.checkExpr(a)
		}
		return typing.Error()
	}

	// Calling a class constructs an instance.
	if calleeType.Kind == typing.KindClass {
		class := r.module.Classes[calleeType.ClassName]
		var params []*typing.DataType
		if class != nil && class.Ctor != nil {
			params = class.Ctor.ResolvedType.Params
		}
		r.checkArgs(c, params)
		return calleeType
	}

	if calleeType.Kind != typing.KindFunction {
		r.sink.Error(c.Callee.Span(), "cannot call value of type %s", typing.Repr(calleeType))
		for _, a := range c.Args {
			r.checkExpr(a)
		}
		return typing.Error()
	}

	r.checkArgs(c, calleeType.Params)
	return calleeType.Return
}

func (r *Resolver) checkArgs(c *ast.Call, params []*typing.DataType) {
	if len(c.Args) != len(params) {
		r.sink.Error(c.Span(), "expected %d argument(s), got %d", len(params), len(c.Args))
	}

	for i, arg := range c.Args {
		argType := r.checkExpr(arg)
		if i >= len(params) {
			continue
		}
		var conv typing.NumericConversion
		r.checkAssignable(arg.Span(), params[i], argType, &conv)
		arg.Resolved().Conv = conv
	}
}

func (r *Resolver) checkThis(t *ast.This) *typing.DataType {
	if !r.inClass || r.currentClassTyp == nil {
		r.sink.Error(t.Span(), "'this' used outside of a method body")
		return typing.Error()
	}
	this := typing.RefTo(r.currentClassTyp)
	return typing.AsConst(this, !(r.inCtor || r.inDtor))
}

func (r *Resolver) checkSuper(s *ast.Super) *typing.DataType {
	if r.currentClass == nil || r.currentClass.Super == nil {
		r.sink.Error(s.Span(), "'super' used in a class with no superclass")
		return typing.Error()
	}
	if member, vis, ok := findMember(r.currentClass.Super, s.Name); ok {
		_ = vis
		return member.ResolvedType
	}
	if method, _, ok := findMethod(r.currentClass.Super, s.Name); ok {
		return method.ResolvedType
	}
	r.sink.Error(s.Span(), "superclass has no member %q", s.Name)
	return typing.Error()
}

func (r *Resolver) checkScopeName(sn *ast.ScopeName) *typing.DataType {
	if class, ok := r.module.Classes[sn.Name]; ok {
		sn.Resolved().ClassRef = class
		return class.ClassType
	}
	r.sink.Error(sn.Span(), "undefined module or class %q", sn.Name)
	return typing.Error()
}

func (r *Resolver) checkScopeAccess(sa *ast.ScopeAccess) *typing.DataType {
	scopeType := r.checkExpr(sa.Scope)
	if typing.IsError(scopeType) {
		return typing.Error()
	}

	class := sa.Scope.Resolved().ClassRef
	if class == nil {
		r.sink.Error(sa.Span(), "%q does not name a class", sa.Scope.Name)
		return typing.Error()
	}

	if method, vis, ok := findMethod(class, sa.Member); ok {
		if !r.visibilityAllows(vis, class) {
			r.sink.Error(sa.Span(), "method %q of class %q is not accessible here", sa.Member, class.Name)
		}
		sa.Resolved().FuncRef = method
		return method.ResolvedType
	}

	r.sink.Error(sa.Span(), "class %q has no static member %q", class.Name, sa.Member)
	return typing.Error()
}

// Package resolve is the type resolver: a tree-walking pass over an
// already-parsed module that performs name resolution, scope bookkeeping,
// and full type checking, annotating every expression's Resolved record
// as it goes.
package resolve

import (
	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/common"
	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/typing"
)

// scopeEntry is one binding on the resolver's scope stack: a common.Symbol
// (the name/depth/const-ness the parser would also recognize) plus the
// resolver-only annotations common.Symbol deliberately stays free of.
type scopeEntry struct {
	common.Symbol
	Type    *typing.DataType
	VarDecl *ast.VarStmt
}

// Resolver walks a single module's statements once, after parsing. Its
// imported modules have already been resolved by the time it runs (see
// the import-resolution algorithm in package syntax).
type Resolver struct {
	sink   *report.Sink
	module *depm.Module

	scope []scopeEntry
	depth int

	inClass    bool
	inFunction bool
	inLoop     bool
	inSwitch   bool
	inCtor     bool
	inDtor     bool

	currentClass    *ast.ClassStmt
	currentClassTyp *typing.DataType
	currentFunction *ast.FunctionStmt
}

// Check type-checks module in place. It is the resolver's external
// contract: `check(module)` in SPEC_FULL.md's terms.
func Check(sink *report.Sink, module *depm.Module) {
	r := &Resolver{sink: sink, module: module}
	r.run()
}

func (r *Resolver) run() {
	// Two passes: first register every top-level class and function's
	// signature so forward references (a function calling one declared
	// later in the same module) resolve, then check every body.
	for _, stmt := range r.module.Statements {
		r.registerTopLevel(stmt)
	}
	for _, stmt := range r.module.Statements {
		r.checkStmt(stmt)
	}
}

func (r *Resolver) registerTopLevel(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ClassStmt:
		s.ClassType = typing.Class(r.module.Name, s.Name)
		r.declare(s.Name, s.ClassType, true, nil)
	case *ast.FunctionStmt:
		s.ResolvedType = r.functionSignature(s)
		r.declare(s.Name, s.ResolvedType, true, nil)
	}
}

// -- scope stack -----------------------------------------------------------

func (r *Resolver) beginScope() int {
	r.depth++
	return r.depth
}

func (r *Resolver) endScope() {
	i := len(r.scope)
	for i > 0 && r.scope[i-1].Depth == r.depth {
		i--
	}
	r.scope = r.scope[:i]
	r.depth--
}

func (r *Resolver) declare(lexeme string, t *typing.DataType, constant bool, decl *ast.VarStmt) {
	sym := common.Symbol{Lexeme: lexeme, Depth: r.depth, IsConst: constant}
	r.scope = append(r.scope, scopeEntry{Symbol: sym, Type: t, VarDecl: decl})
}

// lookup returns the topmost matching scope entry, or nil if lexeme is
// unbound in any enclosing scope.
func (r *Resolver) lookup(lexeme string) *scopeEntry {
	for i := len(r.scope) - 1; i >= 0; i-- {
		if r.scope[i].Lexeme == lexeme {
			return &r.scope[i]
		}
	}
	return nil
}

// -- context guards --------------------------------------------------------

func (r *Resolver) withLoop(f func()) {
	saved := r.inLoop
	r.inLoop = true
	defer func() { r.inLoop = saved }()
	f()
}

func (r *Resolver) withSwitch(f func()) {
	saved := r.inSwitch
	r.inSwitch = true
	defer func() { r.inSwitch = saved }()
	f()
}

// functionSignature builds the typing.DataType for a function, resolving
// its declared parameter and return types.
func (r *Resolver) functionSignature(fn *ast.FunctionStmt) *typing.DataType {
	params := make([]*typing.DataType, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = r.resolveTypeExpr(p.Type)
	}
	ret := r.resolveTypeExpr(fn.ReturnType)
	return typing.Function(params, ret)
}

// resolveTypeExpr turns a syntactic ast.Type into a typing.DataType,
// caching the result on the node so re-resolving is idempotent.
func (r *Resolver) resolveTypeExpr(t *ast.Type) *typing.DataType {
	if t == nil {
		return typing.Unit()
	}
	if t.Resolved != nil {
		return t.Resolved
	}

	var result *typing.DataType
	switch t.Kind {
	case ast.TypePrimitive:
		result = primitiveDataType(t.Primitive)
	case ast.TypeUserDefined:
		if entry := r.lookup(t.Name); entry != nil && entry.Type.Kind == typing.KindClass {
			result = entry.Type
		} else if class, ok := r.module.Classes[t.Name]; ok {
			result = class.ClassType
		} else {
			r.sink.Error(t.Span(), "undefined type %q", t.Name)
			result = typing.Error()
		}
	case ast.TypeList:
		elem := r.resolveTypeExpr(t.Elem)
		size := -1
		result = typing.List(elem, size)
	case ast.TypeTuple:
		elems := make([]*typing.DataType, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = r.resolveTypeExpr(e)
		}
		result = typing.Tuple(elems)
	case ast.TypeTypeof:
		inner := r.checkExpr(t.Of)
		result = inner
	default:
		result = typing.Error()
	}

	result = typing.AsConst(result, t.IsConst)
	if t.IsRef {
		result = typing.RefTo(result)
	}
	t.Resolved = result
	return result
}

func primitiveDataType(p ast.PrimitiveKind) *typing.DataType {
	switch p {
	case ast.PrimInt:
		return typing.Int(false)
	case ast.PrimFloat:
		return typing.Float(false)
	case ast.PrimString:
		return typing.String(false)
	case ast.PrimBool:
		return typing.Bool(false)
	case ast.PrimNull:
		return typing.Null()
	default:
		return typing.Unit()
	}
}

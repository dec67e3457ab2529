package ast

import (
	"github.com/dc03/wis/common"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/typing"
)

// VarKeyword is which of var/const/ref introduced a VarStmt.
type VarKeyword int

const (
	VarVar VarKeyword = iota
	VarConst
	VarRef
)

// VarStmt is a variable declaration: `var|const|ref name[: type] [= expr];`
type VarStmt struct {
	StmtBase
	Keyword      VarKeyword
	Name         string
	DeclaredType *Type // nil if inferred from Initializer
	Initializer  Expr  // nil if absent

	// Filled in by the resolver.
	ResolvedType  *typing.DataType
	Conversion    typing.NumericConversion
	RequiresCopy  bool
}

func NewVarStmt(span *report.TextSpan, keyword VarKeyword, name string, declaredType *Type, init Expr) *VarStmt {
	return &VarStmt{StmtBase: NewStmtBase(span), Keyword: keyword, Name: name, DeclaredType: declaredType, Initializer: init}
}

// Param is one entry of a function's parameter list.
type Param struct {
	Name string
	Type *Type
}

// FunctionStmt is `fn name(params...) -> type { body }`.
type FunctionStmt struct {
	StmtBase
	Name       string
	ReturnType *Type
	Params     []Param
	Body       *Block

	// Set by the parser. A top-level function has Public visibility and
	// IsMethod false.
	Visibility common.VisibilityKind
	IsMethod   bool
	IsCtor     bool
	IsDtor     bool

	ResolvedType *typing.DataType // function type, filled in by the resolver
}

func NewFunctionStmt(span *report.TextSpan, name string, returnType *Type, params []Param, body *Block) *FunctionStmt {
	return &FunctionStmt{StmtBase: NewStmtBase(span), Name: name, ReturnType: returnType, Params: params, Body: body}
}

// Member is one (VarStmt, visibility) entry of a class's member list.
type Member struct {
	Var        *VarStmt
	Visibility common.VisibilityKind
}

// ClassStmt is a class declaration. Super is always nil: the grammar this
// front-end accepts has no superclass syntax (see SPEC_FULL.md's notes on
// inheritance), but the slot is kept so a future grammar extension does
// not require reshaping every consumer of ClassStmt.
type ClassStmt struct {
	StmtBase
	Name    string
	Super   *ClassStmt
	Members []Member
	Methods []*FunctionStmt

	Ctor *FunctionStmt // weak reference into Methods, nil if absent
	Dtor *FunctionStmt // weak reference into Methods, nil if absent

	ModuleName string // owning module, set once the parser knows it

	ClassType *typing.DataType // filled in by the resolver's top-level pass
}

func NewClassStmt(span *report.TextSpan, name string) *ClassStmt {
	return &ClassStmt{StmtBase: NewStmtBase(span), Name: name}
}

// AddMethod appends a method, wiring Ctor/Dtor back-references as it
// recognizes the constructor/destructor by name. Returns false if this
// would be a second constructor or destructor.
func (c *ClassStmt) AddMethod(fn *FunctionStmt) bool {
	c.Methods = append(c.Methods, fn)

	if fn.IsCtor {
		if c.Ctor != nil {
			return false
		}
		c.Ctor = fn
	}
	if fn.IsDtor {
		if c.Dtor != nil {
			return false
		}
		c.Dtor = fn
	}
	return true
}

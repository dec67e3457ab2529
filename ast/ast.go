// Package ast defines the tagged-variant syntax tree shared by the parser
// and the type resolver. Expr and Stmt are interfaces implemented by a
// closed set of concrete node types; callers dispatch on concrete type
// with a type switch rather than a visitor, since the node set is fixed
// at compile time (see SPEC_FULL.md's design notes on this point).
package ast

import (
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/typing"
)

// Node is the common capability of every AST node: knowing its own span.
type Node interface {
	Span() *report.TextSpan
}

// Expr is any expression node.
type Expr interface {
	Node
	Resolved() *Resolved
}

// Stmt is any statement node.
type Stmt interface {
	Node
}

// Resolved is the per-expression annotation the type resolver fills in.
// FuncRef/ClassRef are optional non-owning back-references, set when the
// expression denotes a call target or class reference respectively.
type Resolved struct {
	Type     *typing.DataType
	FuncRef  *FunctionStmt
	ClassRef *ClassStmt
	Conv     typing.NumericConversion
}

// ExprBase is embedded by every concrete Expr so it only has to implement
// Span() and Resolved() once.
type ExprBase struct {
	span *report.TextSpan
	res  Resolved
}

func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{span: span}
}

func (b *ExprBase) Span() *report.TextSpan  { return b.span }
func (b *ExprBase) Resolved() *Resolved     { return &b.res }

// StmtBase is embedded by every concrete Stmt for its span.
type StmtBase struct {
	span *report.TextSpan
}

func NewStmtBase(span *report.TextSpan) StmtBase {
	return StmtBase{span: span}
}

func (b *StmtBase) Span() *report.TextSpan { return b.span }

// NullStmt is the placeholder left in a statement list at the point a
// parse error was recovered from (see synchronize in package syntax). The
// parser also leaves one for every import declaration, since an import's
// effect is recorded in the module registry rather than in the tree.
type NullStmt struct {
	StmtBase
}

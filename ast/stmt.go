package ast

import "github.com/dc03/wis/report"

// Block is `{ stmts... }`, introducing a new lexical scope.
type Block struct {
	StmtBase
	Stmts []Stmt
}

func NewBlock(span *report.TextSpan, stmts []Stmt) *Block {
	return &Block{StmtBase: NewStmtBase(span), Stmts: stmts}
}

// ExpressionStmt wraps an expression used for its side effect.
type ExpressionStmt struct {
	StmtBase
	Expression Expr
}

func NewExpressionStmt(span *report.TextSpan, expr Expr) *ExpressionStmt {
	return &ExpressionStmt{StmtBase: NewStmtBase(span), Expression: expr}
}

// BreakStmt is `break;`. Legal only inside in_loop || in_switch.
type BreakStmt struct {
	StmtBase
}

func NewBreakStmt(span *report.TextSpan) *BreakStmt { return &BreakStmt{StmtBase: NewStmtBase(span)} }

// ContinueStmt is `continue;`. Legal only inside in_loop.
type ContinueStmt struct {
	StmtBase
}

func NewContinueStmt(span *report.TextSpan) *ContinueStmt {
	return &ContinueStmt{StmtBase: NewStmtBase(span)}
}

// ReturnStmt is `return [expr];`. Legal only inside in_function.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil if bare `return;`
}

func NewReturnStmt(span *report.TextSpan, value Expr) *ReturnStmt {
	return &ReturnStmt{StmtBase: NewStmtBase(span), Value: value}
}

// IfStmt is `if cond { then } [else els]`. Els may itself be an IfStmt
// (chained else-if) or a Block.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *Block
	Else Stmt // *Block, *IfStmt, or nil
}

func NewIfStmt(span *report.TextSpan, cond Expr, then *Block, els Stmt) *IfStmt {
	return &IfStmt{StmtBase: NewStmtBase(span), Cond: cond, Then: then, Else: els}
}

// WhileStmt is `while cond { body }`. The parser also uses this to
// desugar for-loops into `{ init; while cond { body; step; } }`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *Block
}

func NewWhileStmt(span *report.TextSpan, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{StmtBase: NewStmtBase(span), Cond: cond, Body: body}
}

// SwitchCase is one `expr -> stmt` arm, or the `default -> stmt` arm when
// IsDefault is set (Expr is nil in that case).
type SwitchCase struct {
	Expr      Expr
	IsDefault bool
	Body      Stmt
}

// SwitchStmt is `switch expr { cases... }`; at most one case has
// IsDefault set, enforced by the parser.
type SwitchStmt struct {
	StmtBase
	Discriminant Expr
	Cases        []SwitchCase
}

func NewSwitchStmt(span *report.TextSpan, discriminant Expr, cases []SwitchCase) *SwitchStmt {
	return &SwitchStmt{StmtBase: NewStmtBase(span), Discriminant: discriminant, Cases: cases}
}

// TypeStmt is a type alias: `type Name = type_expr;`.
type TypeStmt struct {
	StmtBase
	Name string
	Expr *Type
}

func NewTypeStmt(span *report.TextSpan, name string, expr *Type) *TypeStmt {
	return &TypeStmt{StmtBase: NewStmtBase(span), Name: name, Expr: expr}
}

package ast

import "github.com/dc03/wis/report"

// LiteralKind discriminates the kind of value a Literal expression holds.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

// AssignOp enumerates the operators the parser folds into Assign/Set/
// ListAssign nodes: plain `=` and the compound arithmetic forms.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// Literal is an int/float/string/bool/null constant.
type Literal struct {
	ExprBase
	Kind  LiteralKind
	Value string // raw lexeme; the resolver/codegen parse it per Kind
}

func NewLiteral(span *report.TextSpan, kind LiteralKind, value string) *Literal {
	return &Literal{ExprBase: NewExprBase(span), Kind: kind, Value: value}
}

// Variable is a bare identifier reference.
type Variable struct {
	ExprBase
	Name string
}

func NewVariable(span *report.TextSpan, name string) *Variable {
	return &Variable{ExprBase: NewExprBase(span), Name: name}
}

// Assign is `target = value` or a compound-assignment form over a plain
// variable target.
type Assign struct {
	ExprBase
	Target *Variable
	Op     AssignOp
	Value  Expr
}

func NewAssign(span *report.TextSpan, target *Variable, op AssignOp, value Expr) *Assign {
	return &Assign{ExprBase: NewExprBase(span), Target: target, Op: op, Value: value}
}

// Binary is a left-associative binary operator application.
type Binary struct {
	ExprBase
	Left     Expr
	Operator string
	Right    Expr
}

func NewBinary(span *report.TextSpan, left Expr, operator string, right Expr) *Binary {
	return &Binary{ExprBase: NewExprBase(span), Left: left, Operator: operator, Right: right}
}

// Logical is `and`/`or`, kept distinct from Binary so the resolver can
// enforce BOOL operands and the (future) code generator can short-circuit.
type Logical struct {
	ExprBase
	Left     Expr
	Operator string
	Right    Expr
}

func NewLogical(span *report.TextSpan, left Expr, operator string, right Expr) *Logical {
	return &Logical{ExprBase: NewExprBase(span), Left: left, Operator: operator, Right: right}
}

// Unary is a prefix operator: `-`, `+`, `!`, `~`, `++`, `--`.
type Unary struct {
	ExprBase
	Operator string
	Right    Expr
}

func NewUnary(span *report.TextSpan, operator string, right Expr) *Unary {
	return &Unary{ExprBase: NewExprBase(span), Operator: operator, Right: right}
}

// Ternary is `cond ? then : otherwise`.
type Ternary struct {
	ExprBase
	Cond  Expr
	Then  Expr
	Else  Expr
}

func NewTernary(span *report.TextSpan, cond, then, els Expr) *Ternary {
	return &Ternary{ExprBase: NewExprBase(span), Cond: cond, Then: then, Else: els}
}

// Grouping is a parenthesized sub-expression, kept as its own node so the
// parser does not have to special-case "was this already parenthesized".
type Grouping struct {
	ExprBase
	Inner Expr
}

func NewGrouping(span *report.TextSpan, inner Expr) *Grouping {
	return &Grouping{ExprBase: NewExprBase(span), Inner: inner}
}

// Comma is the `,` operator at expression-statement level (as opposed to
// a Tuple literal, which uses explicit parentheses).
type Comma struct {
	ExprBase
	Exprs []Expr
}

func NewComma(span *report.TextSpan, exprs []Expr) *Comma {
	return &Comma{ExprBase: NewExprBase(span), Exprs: exprs}
}

// Tuple is a parenthesized `(a, b, c)` literal.
type Tuple struct {
	ExprBase
	Elems []Expr
}

func NewTuple(span *report.TextSpan, elems []Expr) *Tuple {
	return &Tuple{ExprBase: NewExprBase(span), Elems: elems}
}

// List is a `[a, b, c]` literal.
type List struct {
	ExprBase
	Elems []Expr
}

func NewList(span *report.TextSpan, elems []Expr) *List {
	return &List{ExprBase: NewExprBase(span), Elems: elems}
}

// Index is `object[index]`.
type Index struct {
	ExprBase
	Object Expr
	Idx    Expr
}

func NewIndex(span *report.TextSpan, object, idx Expr) *Index {
	return &Index{ExprBase: NewExprBase(span), Object: object, Idx: idx}
}

// ListAssign is `object[index] = value` (or a compound form).
type ListAssign struct {
	ExprBase
	Target *Index
	Op     AssignOp
	Value  Expr
}

func NewListAssign(span *report.TextSpan, target *Index, op AssignOp, value Expr) *ListAssign {
	return &ListAssign{ExprBase: NewExprBase(span), Target: target, Op: op, Value: value}
}

// Get is `object.name`, member read access, and also the synthetic node
// produced when a FLOAT_VALUE token after `.` is split to disambiguate a
// tuple double-access (x.2.0 -> Get(Get(x, "2"), "0")).
type Get struct {
	ExprBase
	Object Expr
	Name   string
}

func NewGet(span *report.TextSpan, object Expr, name string) *Get {
	return &Get{ExprBase: NewExprBase(span), Object: object, Name: name}
}

// Set is `object.name = value` (or a compound form).
type Set struct {
	ExprBase
	Target *Get
	Op     AssignOp
	Value  Expr
}

func NewSet(span *report.TextSpan, target *Get, op AssignOp, value Expr) *Set {
	return &Set{ExprBase: NewExprBase(span), Target: target, Op: op, Value: value}
}

// Call is `callee(args...)`.
type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func NewCall(span *report.TextSpan, callee Expr, args []Expr) *Call {
	return &Call{ExprBase: NewExprBase(span), Callee: callee, Args: args}
}

// This is a `this` reference, legal only inside a method body.
type This struct {
	ExprBase
}

func NewThis(span *report.TextSpan) *This {
	return &This{ExprBase: NewExprBase(span)}
}

// Super is a `super.name` reference.
type Super struct {
	ExprBase
	Name string
}

func NewSuper(span *report.TextSpan, name string) *Super {
	return &Super{ExprBase: NewExprBase(span), Name: name}
}

// ScopeName is the left-hand module/class name of a `Name::member` access,
// kept as its own node (rather than folded straight into ScopeAccess) so
// the resolver can report "unknown scope" distinctly from "unknown member".
type ScopeName struct {
	ExprBase
	Name string
}

func NewScopeName(span *report.TextSpan, name string) *ScopeName {
	return &ScopeName{ExprBase: NewExprBase(span), Name: name}
}

// ScopeAccess is `Name::member`.
type ScopeAccess struct {
	ExprBase
	Scope  *ScopeName
	Member string
}

func NewScopeAccess(span *report.TextSpan, scope *ScopeName, member string) *ScopeAccess {
	return &ScopeAccess{ExprBase: NewExprBase(span), Scope: scope, Member: member}
}

package ast

import (
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/typing"
)

// PrimitiveKind enumerates the built-in primitive type names the parser
// can see written out in source (`int`, `float`, ...).
type PrimitiveKind int

const (
	PrimInt PrimitiveKind = iota
	PrimFloat
	PrimString
	PrimBool
	PrimNull
	PrimUnit
)

// TypeKind discriminates the variants of Type.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeUserDefined
	TypeList
	TypeTuple
	TypeTypeof
)

// Type is the syntactic type-expression tree the parser builds from a
// type annotation. It is resolved into a typing.DataType by the resolver,
// cached in the Resolved field so re-resolving is idempotent.
type Type struct {
	span    *report.TextSpan
	Kind    TypeKind
	IsConst bool
	IsRef   bool

	Primitive PrimitiveKind // TypePrimitive

	Name string // TypeUserDefined

	Elem *Type // TypeList
	Size Expr  // TypeList, nil if unsized

	Elems []*Type // TypeTuple

	Of Expr // TypeTypeof

	Resolved *typing.DataType
}

func (t *Type) Span() *report.TextSpan { return t.span }

func NewPrimitiveType(span *report.TextSpan, kind PrimitiveKind, isConst, isRef bool) *Type {
	return &Type{span: span, Kind: TypePrimitive, Primitive: kind, IsConst: isConst, IsRef: isRef}
}

func NewUserDefinedType(span *report.TextSpan, name string, isConst, isRef bool) *Type {
	return &Type{span: span, Kind: TypeUserDefined, Name: name, IsConst: isConst, IsRef: isRef}
}

func NewListType(span *report.TextSpan, elem *Type, size Expr, isConst, isRef bool) *Type {
	return &Type{span: span, Kind: TypeList, Elem: elem, Size: size, IsConst: isConst, IsRef: isRef}
}

func NewTupleType(span *report.TextSpan, elems []*Type, isConst, isRef bool) *Type {
	return &Type{span: span, Kind: TypeTuple, Elems: elems, IsConst: isConst, IsRef: isRef}
}

func NewTypeofType(span *report.TextSpan, of Expr, isConst, isRef bool) *Type {
	return &Type{span: span, Kind: TypeTypeof, Of: of, IsConst: isConst, IsRef: isRef}
}

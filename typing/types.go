// Package typing is the resolved type system: the semantic counterpart to
// the syntactic type expressions the parser builds (see package ast's
// Type). A DataType is a single tagged struct rather than an interface
// hierarchy, matching the tagged-variant style the rest of the AST uses.
package typing

import "strings"

// Kind discriminates the variants of DataType.
type Kind int

const (
	// KindInvalid is the zero value: "not yet resolved". A successfully
	// checked expression never has this kind.
	KindInvalid Kind = iota

	// KindError is the sentinel produced after a type error has already
	// been reported for a sub-expression, so that the same mistake does
	// not cascade into a second, third, and fourth diagnostic.
	KindError

	KindInt
	KindFloat
	KindString
	KindBool
	KindNull
	KindUnit // the return type of a function declared to return nothing

	KindClass
	KindList
	KindTuple
	KindRange
	KindFunction
)

// DataType is a resolved type. Const and Ref record the inherent
// qualifiers carried by the value of this type (mirroring the
// is_const/is_ref flags spec.md attaches to every type node).
type DataType struct {
	Kind  Kind
	Const bool
	Ref   bool

	// KindClass
	ClassModule string
	ClassName   string

	// KindList
	Elem *DataType
	Size int // -1 means unspecified/dynamic

	// KindTuple
	Elems []*DataType

	// KindFunction
	Params []*DataType
	Return *DataType
}

func Error() *DataType { return &DataType{Kind: KindError} }

func Int(constant bool) *DataType    { return &DataType{Kind: KindInt, Const: constant} }
func Float(constant bool) *DataType  { return &DataType{Kind: KindFloat, Const: constant} }
func String(constant bool) *DataType { return &DataType{Kind: KindString, Const: constant} }
func Bool(constant bool) *DataType   { return &DataType{Kind: KindBool, Const: constant} }
func Null() *DataType                { return &DataType{Kind: KindNull, Const: true} }
func Unit() *DataType                { return &DataType{Kind: KindUnit} }
func Range() *DataType               { return &DataType{Kind: KindRange} }

func Class(module, name string) *DataType {
	return &DataType{Kind: KindClass, ClassModule: module, ClassName: name}
}

func List(elem *DataType, size int) *DataType {
	return &DataType{Kind: KindList, Elem: elem, Size: size}
}

func Tuple(elems []*DataType) *DataType {
	return &DataType{Kind: KindTuple, Elems: elems}
}

func Function(params []*DataType, ret *DataType) *DataType {
	return &DataType{Kind: KindFunction, Params: params, Return: ret}
}

// RefTo returns a copy of t marked as a reference, e.g. the type of `this`.
func RefTo(t *DataType) *DataType {
	cp := *t
	cp.Ref = true
	return &cp
}

// AsConst returns a copy of t with the Const qualifier set/cleared.
func AsConst(t *DataType, constant bool) *DataType {
	cp := *t
	cp.Const = constant
	return &cp
}

// IsError reports whether t is the error sentinel (or nil, which the
// resolver treats the same way so a missing annotation never panics).
func IsError(t *DataType) bool {
	return t == nil || t.Kind == KindError
}

// IsNumeric reports whether t is INT or FLOAT.
func IsNumeric(t *DataType) bool {
	return !IsError(t) && (t.Kind == KindInt || t.Kind == KindFloat)
}

// IsUnresolved reports whether t has never been assigned a kind.
func IsUnresolved(t *DataType) bool {
	return t == nil || t.Kind == KindInvalid
}

// Equals reports whether two types are the same type for the purposes of
// equality comparison and assignment-without-widening. It ignores the
// Const/Ref qualifiers: `const int` and `int` are the same type, just with
// different mutability.
func Equals(a, b *DataType) bool {
	if IsError(a) || IsError(b) {
		// Error types compare equal to anything so a single mistake does
		// not generate a cascade of "type mismatch" errors downstream.
		return true
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindClass:
		return a.ClassModule == b.ClassModule && a.ClassName == b.ClassName
	case KindList:
		return Equals(a.Elem, b.Elem)
	case KindTuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equals(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equals(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equals(a.Return, b.Return)
	default:
		return true
	}
}

// NumericConversion records the implicit conversion, if any, that must be
// applied to a numeric operand so the code generator downstream can emit
// the right instruction. FloatToInt is never produced by any rule in this
// front-end today (there is no narrowing-cast syntax yet) but is kept
// alongside IntToFloat since the original implementation's conversion enum
// is bidirectional; see SPEC_FULL.md.
type NumericConversion int

const (
	ConversionNone NumericConversion = iota
	ConversionIntToFloat
	ConversionFloatToInt
)

// Repr renders t for diagnostics, e.g. "const ref [int; 4]".
func Repr(t *DataType) string {
	if IsError(t) {
		return "<error>"
	}

	sb := strings.Builder{}
	if t.Const {
		sb.WriteString("const ")
	}
	if t.Ref {
		sb.WriteString("ref ")
	}

	switch t.Kind {
	case KindInvalid:
		sb.WriteString("<unresolved>")
	case KindInt:
		sb.WriteString("int")
	case KindFloat:
		sb.WriteString("float")
	case KindString:
		sb.WriteString("string")
	case KindBool:
		sb.WriteString("bool")
	case KindNull:
		sb.WriteString("null")
	case KindUnit:
		sb.WriteString("unit")
	case KindRange:
		sb.WriteString("range")
	case KindClass:
		sb.WriteString(t.ClassName)
	case KindList:
		sb.WriteRune('[')
		sb.WriteString(Repr(t.Elem))
		if t.Size >= 0 {
			sb.WriteString("; ")
			sb.WriteString(itoa(t.Size))
		}
		sb.WriteRune(']')
	case KindTuple:
		sb.WriteRune('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(e))
		}
		sb.WriteRune(')')
	case KindFunction:
		sb.WriteRune('(')
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(p))
		}
		sb.WriteString(") -> ")
		sb.WriteString(Repr(t.Return))
	}

	return sb.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

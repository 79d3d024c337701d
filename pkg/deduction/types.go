package deduction

import "strings"

// RefKind distinguishes the reference-ness of a deduced type.
type RefKind int

const (
	RefNone RefKind = iota
	RefLvalue
	RefRvalue
)

func (k RefKind) String() string {
	switch k {
	case RefLvalue:
		return "&"
	case RefRvalue:
		return "&&"
	default:
		return ""
	}
}

// CV is a const/volatile qualifier set.
type CV struct {
	Const    bool
	Volatile bool
}

// Empty reports whether no qualifier is set.
func (c CV) Empty() bool { return !c.Const && !c.Volatile }

func (c CV) String() string {
	switch {
	case c.Const && c.Volatile:
		return "const volatile"
	case c.Const:
		return "const"
	case c.Volatile:
		return "volatile"
	default:
		return ""
	}
}

// Base is the underlying type a deduced type is built from: either an opaque
// named type or a pointer to a previously deduced type. The resolver never
// interprets names beyond the void check.
type Base interface {
	baseEqual(other Base) bool
}

// Named is an atomic or user-defined type identified only by its spelling.
type Named struct {
	Name string
}

func (n Named) baseEqual(other Base) bool {
	o, ok := other.(Named)
	return ok && o.Name == n.Name
}

// PointerTo is a pointer base; the pointee carries its own qualifiers.
type PointerTo struct {
	Pointee Type
}

func (p PointerTo) baseEqual(other Base) bool {
	o, ok := other.(PointerTo)
	return ok && o.Pointee.Equal(p.Pointee)
}

// VoidName is the spelling the resolver recognises as the void-equivalent
// type when rejecting deduction from a call returning no value.
const VoidName = "void"

// Type is an immutable deduced-type descriptor. When Ref is not RefNone the
// descriptor denotes a reference to Base and CV qualifies the referent;
// references themselves never carry qualifiers, so there is no slot for them.
type Type struct {
	Base Base
	CV   CV
	Ref  RefKind
}

// Atomic builds a plain named type with no qualifiers.
func Atomic(name string) Type {
	return Type{Base: Named{Name: name}}
}

// Ptr wraps a type in one level of pointer indirection.
func Ptr(pointee Type) Type {
	return Type{Base: PointerTo{Pointee: pointee}}
}

// IsVoid reports whether the base denotes the void-equivalent type.
func (t Type) IsVoid() bool {
	n, ok := t.Base.(Named)
	return ok && n.Name == VoidName
}

// Equal is structural equality over base, qualifiers, and reference kind.
func (t Type) Equal(other Type) bool {
	if t.CV != other.CV || t.Ref != other.Ref {
		return false
	}
	if t.Base == nil || other.Base == nil {
		return t.Base == nil && other.Base == nil
	}
	return t.Base.baseEqual(other.Base)
}

// sameValue compares base and qualifiers only, ignoring reference kind. It is
// the equality used when validating shared placeholder deductions.
func (t Type) sameValue(other Type) bool {
	stripped := t
	stripped.Ref = RefNone
	strippedOther := other
	strippedOther.Ref = RefNone
	return stripped.Equal(strippedOther)
}

// String renders the descriptor in C++ declaration order, e.g. "const int&",
// "char* const*", "volatile long&&".
func (t Type) String() string {
	var sb strings.Builder
	switch b := t.Base.(type) {
	case Named:
		if q := t.CV.String(); q != "" {
			sb.WriteString(q)
			sb.WriteByte(' ')
		}
		sb.WriteString(b.Name)
	case PointerTo:
		sb.WriteString(b.Pointee.String())
		sb.WriteByte('*')
		if q := t.CV.String(); q != "" {
			sb.WriteByte(' ')
			sb.WriteString(q)
		}
	default:
		sb.WriteString("<nil>")
	}
	sb.WriteString(t.Ref.String())
	return sb.String()
}

// ValueCategory classifies an expression instance.
type ValueCategory int

const (
	CategoryUnknown ValueCategory = iota
	Lvalue
	Xvalue
	Prvalue
)

func (v ValueCategory) String() string {
	switch v {
	case Lvalue:
		return "lvalue"
	case Xvalue:
		return "xvalue"
	case Prvalue:
		return "prvalue"
	default:
		return "unclassified"
	}
}

// Shape identifies the syntactic form an expression description covers.
type Shape int

const (
	Identifier Shape = iota
	MemberAccess
	FunctionCall
	Parenthesized
	OperatorExpression
)

func (s Shape) String() string {
	switch s {
	case Identifier:
		return "identifier"
	case MemberAccess:
		return "member access"
	case FunctionCall:
		return "function call"
	case Parenthesized:
		return "parenthesized expression"
	case OperatorExpression:
		return "operator expression"
	default:
		return "unknown shape"
	}
}

// Expr describes one classified expression instance, as supplied by a
// front-end. Declared is the entity's declared type for Identifier and
// MemberAccess, and the declared return type for FunctionCall. Parenthesized
// expressions carry the wrapped description in Inner instead. An
// OperatorExpression may carry either: Inner names the operand whose value
// type the operator yields, and Declared is used directly when the front-end
// already knows the result type (literals, dereference, address-of).
type Expr struct {
	Shape    Shape
	Declared Type
	Category ValueCategory
	Inner    *Expr

	// StorageAccess marks an operator expression that designates existing
	// storage (assignment-like or subscript-like forms). The rule classifier
	// maps it to Lvalue.
	StorageAccess bool
}

// Decoration is one syntactic layer written around a deduction placeholder.
type Decoration int

const (
	Pointer Decoration = iota
	LvalueReference
	RvalueReference
	Const
	Volatile
)

func (d Decoration) String() string {
	switch d {
	case Pointer:
		return "pointer"
	case LvalueReference:
		return "lvalue-reference"
	case RvalueReference:
		return "rvalue-reference"
	case Const:
		return "const"
	case Volatile:
		return "volatile"
	default:
		return "unknown decoration"
	}
}

func (d Decoration) isReference() bool {
	return d == LvalueReference || d == RvalueReference
}

func (d Decoration) isIndirection() bool {
	return d == Pointer || d.isReference()
}

// Pattern is the sequence of decorations around a placeholder, innermost
// first, e.g. `const auto*&` is [Const, Pointer, LvalueReference].
type Pattern []Decoration

// HasIndirection reports whether any pointer or reference decoration appears.
func (p Pattern) HasIndirection() bool {
	for _, d := range p {
		if d.isIndirection() {
			return true
		}
	}
	return false
}

// BindingContext is the syntactic site a value deduction is requested for.
type BindingContext int

const (
	BindVariable BindingContext = iota
	BindArrayElement
	BindTemplateArgument
)

func (b BindingContext) String() string {
	switch b {
	case BindArrayElement:
		return "array element"
	case BindTemplateArgument:
		return "template argument"
	default:
		return "variable"
	}
}

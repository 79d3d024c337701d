package cppexpr

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"cxxdeduce/resolver-go/pkg/deduction"
)

type parseContext struct {
	source []byte
	scope  Scope
}

// errorf builds a ParseError whose location is adjusted for the synthetic
// wrapper line the probe adds above the expression.
func (ctx *parseContext) errorf(node *sitter.Node, format string, args ...any) *ParseError {
	err := errorAt(node, fmt.Sprintf(format, args...))
	if err.Location.Line > 1 {
		err.Location.Line--
	}
	if err.Location.EndLine > 1 {
		err.Location.EndLine--
	}
	return err
}

func (ctx *parseContext) convert(node *sitter.Node) (*deduction.Expr, error) {
	if node == nil {
		return nil, fmt.Errorf("cppexpr: nil syntax node")
	}
	switch node.Kind() {
	case "identifier", "qualified_identifier":
		declared, err := ctx.lookup(node, sliceContent(node, ctx.source))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.Identifier, Declared: declared}, nil

	case "field_expression":
		field := node.ChildByFieldName("field")
		if field == nil {
			return nil, ctx.errorf(node, "member access without a member name")
		}
		declared, err := ctx.lookup(field, sliceContent(field, ctx.source))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.MemberAccess, Declared: declared}, nil

	case "call_expression":
		return ctx.convertCall(node)

	case "parenthesized_expression":
		inner, err := ctx.convert(node.NamedChild(0))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.Parenthesized, Inner: inner}, nil

	case "assignment_expression":
		left, err := ctx.convert(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.OperatorExpression, Inner: left, StorageAccess: true}, nil

	case "binary_expression":
		left, err := ctx.convert(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.OperatorExpression, Inner: left}, nil

	case "unary_expression":
		operand, err := ctx.convert(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.OperatorExpression, Inner: operand}, nil

	case "update_expression":
		return ctx.convertUpdate(node)

	case "pointer_expression":
		return ctx.convertPointer(node)

	case "subscript_expression":
		return ctx.convertSubscript(node)

	case "comma_expression":
		return ctx.convertComma(node)

	case "conditional_expression":
		consequence, err := ctx.convert(node.ChildByFieldName("consequence"))
		if err != nil {
			return nil, err
		}
		return &deduction.Expr{Shape: deduction.OperatorExpression, Inner: consequence}, nil

	case "number_literal":
		return literalExpr(numberLiteralType(sliceContent(node, ctx.source))), nil
	case "true", "false":
		return literalExpr(deduction.Atomic("bool")), nil
	case "char_literal":
		return literalExpr(deduction.Atomic("char")), nil
	case "string_literal":
		// Array types are outside the deducible surface; string literals
		// degrade to a pointer to const char.
		constChar := deduction.Type{
			Base: deduction.Named{Name: "char"},
			CV:   deduction.CV{Const: true},
		}
		return literalExpr(deduction.Ptr(constChar)), nil
	case "null":
		return literalExpr(deduction.Atomic("nullptr_t")), nil

	default:
		return nil, ctx.errorf(node, "unsupported expression form %q", node.Kind())
	}
}

func (ctx *parseContext) convertCall(node *sitter.Node) (*deduction.Expr, error) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return nil, ctx.errorf(node, "call without a callee")
	}
	var name string
	switch fn.Kind() {
	case "identifier", "qualified_identifier":
		name = sliceContent(fn, ctx.source)
	case "field_expression":
		field := fn.ChildByFieldName("field")
		if field == nil {
			return nil, ctx.errorf(fn, "member call without a member name")
		}
		name = sliceContent(field, ctx.source)
	default:
		return nil, ctx.errorf(fn, "unsupported callee form %q", fn.Kind())
	}
	declared, err := ctx.lookup(fn, name)
	if err != nil {
		return nil, err
	}
	return &deduction.Expr{Shape: deduction.FunctionCall, Declared: declared}, nil
}

func (ctx *parseContext) convertUpdate(node *sitter.Node) (*deduction.Expr, error) {
	operand, err := ctx.convert(node.ChildByFieldName("argument"))
	if err != nil {
		return nil, err
	}
	// Prefix increment and decrement designate the updated storage; the
	// postfix forms yield the prior value as a temporary.
	prefix := false
	if first := node.Child(0); first != nil {
		kind := first.Kind()
		prefix = kind == "++" || kind == "--"
	}
	return &deduction.Expr{
		Shape:         deduction.OperatorExpression,
		Inner:         operand,
		StorageAccess: prefix,
	}, nil
}

func (ctx *parseContext) convertPointer(node *sitter.Node) (*deduction.Expr, error) {
	argNode := node.ChildByFieldName("argument")
	operand, err := ctx.convert(argNode)
	if err != nil {
		return nil, err
	}
	operandType, err := ctx.valueType(argNode, operand)
	if err != nil {
		return nil, err
	}

	op := ""
	if opNode := node.ChildByFieldName("operator"); opNode != nil {
		op = sliceContent(opNode, ctx.source)
	} else if first := node.Child(0); first != nil {
		op = first.Kind()
	}
	switch op {
	case "*":
		pointee, ok := operandType.Base.(deduction.PointerTo)
		if !ok {
			return nil, ctx.errorf(node, "cannot dereference non-pointer type %s", operandType)
		}
		return &deduction.Expr{
			Shape:         deduction.OperatorExpression,
			Declared:      pointee.Pointee,
			StorageAccess: true,
		}, nil
	case "&":
		return &deduction.Expr{
			Shape:    deduction.OperatorExpression,
			Declared: deduction.Ptr(operandType),
		}, nil
	default:
		return nil, ctx.errorf(node, "unsupported pointer operator %q", op)
	}
}

func (ctx *parseContext) convertSubscript(node *sitter.Node) (*deduction.Expr, error) {
	argNode := node.NamedChild(0)
	operand, err := ctx.convert(argNode)
	if err != nil {
		return nil, err
	}
	operandType, err := ctx.valueType(argNode, operand)
	if err != nil {
		return nil, err
	}
	pointee, ok := operandType.Base.(deduction.PointerTo)
	if !ok {
		return nil, ctx.errorf(node, "cannot subscript non-pointer type %s", operandType)
	}
	return &deduction.Expr{
		Shape:         deduction.OperatorExpression,
		Declared:      pointee.Pointee,
		StorageAccess: true,
	}, nil
}

// convertComma yields the right operand; the comma result keeps that
// operand's category.
func (ctx *parseContext) convertComma(node *sitter.Node) (*deduction.Expr, error) {
	right, err := ctx.convert(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	category, err := deduction.RuleClassifier{}.Classify(right)
	if err != nil {
		return nil, err
	}
	return &deduction.Expr{
		Shape:         deduction.OperatorExpression,
		Inner:         right,
		StorageAccess: category == deduction.Lvalue,
	}, nil
}

// valueType resolves an already-converted operand to its value type with
// reference-ness stripped, for forms whose result type is derived from an
// operand rather than carried structurally.
func (ctx *parseContext) valueType(node *sitter.Node, operand *deduction.Expr) (deduction.Type, error) {
	classified, err := deduction.Apply(deduction.RuleClassifier{}, operand)
	if err != nil {
		return deduction.Type{}, err
	}
	typ, err := deduction.ForExpression(classified)
	if err != nil {
		return deduction.Type{}, ctx.errorf(node, "%v", err)
	}
	typ.Ref = deduction.RefNone
	return typ, nil
}

func (ctx *parseContext) lookup(node *sitter.Node, name string) (deduction.Type, error) {
	if name == "" {
		return deduction.Type{}, ctx.errorf(node, "empty name")
	}
	typ, ok := ctx.scope[name]
	if !ok {
		return deduction.Type{}, ctx.errorf(node, "unknown name %q", name)
	}
	return typ, nil
}

func literalExpr(typ deduction.Type) *deduction.Expr {
	return &deduction.Expr{Shape: deduction.OperatorExpression, Declared: typ}
}

func numberLiteralType(content string) deduction.Type {
	lowered := strings.ToLower(content)
	if strings.HasSuffix(lowered, "f") && !strings.HasPrefix(lowered, "0x") {
		return deduction.Atomic("float")
	}
	if strings.ContainsAny(lowered, ".e") && !strings.HasPrefix(lowered, "0x") {
		return deduction.Atomic("double")
	}
	return deduction.Atomic("int")
}

package deduction

import "fmt"

// ForExpression computes the type that expression-based deduction assigns to
// a classified expression, independent of any initializer.
//
// The dispatch is deliberately over Shape, not over value category: a bare
// identifier or member access is an lvalue yet still resolves to its declared
// type verbatim, while the same entity parenthesized resolves to an lvalue
// reference. Folding the two cases into a category check would erase that
// distinction.
func ForExpression(expr *Expr) (Type, error) {
	if expr == nil {
		return Type{}, fmt.Errorf("deduction: nil expression")
	}
	switch expr.Shape {
	case Identifier, MemberAccess:
		// Full fidelity: reference-ness and qualifiers of the declared type
		// pass through untouched.
		return expr.Declared, nil

	case FunctionCall:
		if expr.Declared.IsVoid() {
			return Type{}, newError(ErrVoidDeduction, expr,
				"cannot deduce a type from a call returning %s", VoidName)
		}
		return expr.Declared, nil

	case Parenthesized:
		if expr.Inner == nil {
			return Type{}, fmt.Errorf("deduction: parenthesized expression has no inner expression")
		}
		inner, err := ForExpression(expr.Inner)
		if err != nil {
			return Type{}, err
		}
		if expr.Category == Lvalue {
			// Parenthesizing an lvalue always yields a reference to the
			// inner result, qualifiers taken from the referent level.
			inner.Ref = RefLvalue
			return inner, nil
		}
		return inner, nil

	case OperatorExpression:
		operand, err := operandType(expr)
		if err != nil {
			return Type{}, err
		}
		operand.Ref = RefNone
		switch expr.Category {
		case Lvalue:
			operand.Ref = RefLvalue
		case Xvalue:
			operand.Ref = RefRvalue
		}
		return operand, nil

	default:
		return Type{}, fmt.Errorf("deduction: unsupported expression shape %v", expr.Shape)
	}
}

// operandType yields the value type an operator expression produces: the
// resolved type of Inner when the operand is described structurally, else
// the declared result type the front-end supplied.
func operandType(expr *Expr) (Type, error) {
	if expr.Inner == nil {
		return expr.Declared, nil
	}
	return ForExpression(expr.Inner)
}

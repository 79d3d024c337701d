package deduction

import "fmt"

// Classifier computes the value category of an expression description. The
// resolver consumes categories, it never computes them; front-ends and test
// fixtures inject an implementation.
type Classifier interface {
	Classify(expr *Expr) (ValueCategory, error)
}

// RuleClassifier implements the standard category rule: names and member
// accesses are lvalues; a call follows its declared return's reference kind;
// an operator expression is an lvalue exactly when it designates existing
// storage; parentheses inherit the category of what they wrap.
type RuleClassifier struct{}

func (RuleClassifier) Classify(expr *Expr) (ValueCategory, error) {
	if expr == nil {
		return CategoryUnknown, fmt.Errorf("deduction: nil expression")
	}
	switch expr.Shape {
	case Identifier, MemberAccess:
		return Lvalue, nil
	case FunctionCall:
		switch expr.Declared.Ref {
		case RefLvalue:
			return Lvalue, nil
		case RefRvalue:
			return Xvalue, nil
		default:
			return Prvalue, nil
		}
	case Parenthesized:
		if expr.Inner == nil {
			return CategoryUnknown, fmt.Errorf("deduction: parenthesized expression has no inner expression")
		}
		return RuleClassifier{}.Classify(expr.Inner)
	case OperatorExpression:
		if expr.StorageAccess {
			return Lvalue, nil
		}
		return Prvalue, nil
	default:
		return CategoryUnknown, fmt.Errorf("deduction: unsupported expression shape %v", expr.Shape)
	}
}

// Apply returns a copy of expr with Category filled on every node, inner
// expressions first, using c. The input is left untouched.
func Apply(c Classifier, expr *Expr) (*Expr, error) {
	if expr == nil {
		return nil, fmt.Errorf("deduction: nil expression")
	}
	out := *expr
	if expr.Inner != nil {
		inner, err := Apply(c, expr.Inner)
		if err != nil {
			return nil, err
		}
		out.Inner = inner
	}
	category, err := c.Classify(&out)
	if err != nil {
		return nil, err
	}
	out.Category = category
	return &out, nil
}

package deduction

import "testing"

func classify(t *testing.T, expr *Expr) ValueCategory {
	t.Helper()
	category, err := RuleClassifier{}.Classify(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return category
}

func TestNamesClassifyAsLvalues(t *testing.T) {
	ident := &Expr{Shape: Identifier, Declared: Atomic("int")}
	member := &Expr{Shape: MemberAccess, Declared: Atomic("int")}
	if got := classify(t, ident); got != Lvalue {
		t.Fatalf("expected lvalue for identifier, got %s", got)
	}
	if got := classify(t, member); got != Lvalue {
		t.Fatalf("expected lvalue for member access, got %s", got)
	}
}

func TestCallClassifiesByDeclaredReturn(t *testing.T) {
	cases := []struct {
		ref  RefKind
		want ValueCategory
	}{
		{RefLvalue, Lvalue},
		{RefRvalue, Xvalue},
		{RefNone, Prvalue},
	}
	for _, tc := range cases {
		call := &Expr{Shape: FunctionCall, Declared: Type{Base: Named{Name: "int"}, Ref: tc.ref}}
		if got := classify(t, call); got != tc.want {
			t.Fatalf("return ref %v: expected %s, got %s", tc.ref, tc.want, got)
		}
	}
}

func TestParenthesesInheritInnerCategory(t *testing.T) {
	call := &Expr{Shape: FunctionCall, Declared: Type{Base: Named{Name: "int"}, Ref: RefRvalue}}
	paren := &Expr{Shape: Parenthesized, Inner: call}
	if got := classify(t, paren); got != Xvalue {
		t.Fatalf("expected xvalue, got %s", got)
	}
}

func TestOperatorClassifiesByStorageAccess(t *testing.T) {
	assignLike := &Expr{Shape: OperatorExpression, Declared: Atomic("int"), StorageAccess: true}
	arithmetic := &Expr{Shape: OperatorExpression, Declared: Atomic("int")}
	if got := classify(t, assignLike); got != Lvalue {
		t.Fatalf("expected lvalue, got %s", got)
	}
	if got := classify(t, arithmetic); got != Prvalue {
		t.Fatalf("expected prvalue, got %s", got)
	}
}

func TestApplyFillsNestedCategories(t *testing.T) {
	ident := &Expr{Shape: Identifier, Declared: Atomic("int")}
	paren := &Expr{Shape: Parenthesized, Inner: ident}

	classified, err := Apply(RuleClassifier{}, paren)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if classified.Category != Lvalue || classified.Inner.Category != Lvalue {
		t.Fatalf("expected lvalue at both levels, got %s / %s",
			classified.Category, classified.Inner.Category)
	}
	if paren.Category != CategoryUnknown || ident.Category != CategoryUnknown {
		t.Fatalf("Apply must not mutate its input")
	}
}

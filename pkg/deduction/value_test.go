package deduction

import (
	"errors"
	"testing"
)

func constIntLvalue() *Expr {
	return &Expr{
		Shape:    Identifier,
		Declared: Type{Base: Named{Name: "int"}, CV: CV{Const: true}, Ref: RefLvalue},
		Category: Lvalue,
	}
}

func deductionCode(t *testing.T, err error) ErrorCode {
	t.Helper()
	var dErr *Error
	if !errors.As(err, &dErr) {
		t.Fatalf("expected a deduction error, got %v", err)
	}
	return dErr.Code
}

func TestPlainBindingDiscardsTopLevelQualifiers(t *testing.T) {
	got, err := ForValue(constIntLvalue(), nil, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Atomic("int")) {
		t.Fatalf("expected int, got %s", got)
	}
}

func TestReferenceBindingPreservesQualifiers(t *testing.T) {
	got, err := ForValue(constIntLvalue(), Pattern{LvalueReference}, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Type{Base: Named{Name: "int"}, CV: CV{Const: true}, Ref: RefLvalue}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestMissingInitializerRejected(t *testing.T) {
	_, err := ForValue(nil, nil, BindVariable)
	if code := deductionCode(t, err); code != ErrMissingInitializer {
		t.Fatalf("expected %s, got %s", ErrMissingInitializer, code)
	}
}

func TestVolatileDiscardedWithoutIndirection(t *testing.T) {
	init := &Expr{
		Shape:    Identifier,
		Declared: Type{Base: Named{Name: "long"}, CV: CV{Const: true, Volatile: true}},
		Category: Lvalue,
	}
	got, err := ForValue(init, nil, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Atomic("long")) {
		t.Fatalf("expected long, got %s", got)
	}
}

func TestPointerPatternKeepsPointeeQualifiers(t *testing.T) {
	// auto *p = s, with s of type const char*: the placeholder is const char
	// and the bound type matches the initializer's pointer type.
	constChar := Type{Base: Named{Name: "char"}, CV: CV{Const: true}}
	init := &Expr{Shape: Identifier, Declared: Ptr(constChar), Category: Lvalue}

	got, err := ForValue(init, Pattern{Pointer}, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Ptr(constChar)) {
		t.Fatalf("expected %s, got %s", Ptr(constChar), got)
	}
}

func TestConstDecorationApplied(t *testing.T) {
	init := &Expr{Shape: Identifier, Declared: Atomic("int"), Category: Lvalue}
	got, err := ForValue(init, Pattern{Const}, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Type{Base: Named{Name: "int"}, CV: CV{Const: true}}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestConstPointerPattern(t *testing.T) {
	// const auto *p = &n, with n of type const int.
	constInt := Type{Base: Named{Name: "int"}, CV: CV{Const: true}}
	init := &Expr{Shape: OperatorExpression, Declared: Ptr(constInt), Category: Prvalue}

	got, err := ForValue(init, Pattern{Const, Pointer}, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Ptr(constInt)) {
		t.Fatalf("expected %s, got %s", Ptr(constInt), got)
	}
}

func TestRvalueReferencePattern(t *testing.T) {
	init := &Expr{Shape: FunctionCall, Declared: Atomic("int"), Category: Prvalue}
	got, err := ForValue(init, Pattern{RvalueReference}, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Type{Base: Named{Name: "int"}, Ref: RefRvalue}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestXvalueInitializerStripsReference(t *testing.T) {
	init := &Expr{
		Shape:    FunctionCall,
		Declared: Type{Base: Named{Name: "int"}, Ref: RefRvalue},
		Category: Xvalue,
	}
	got, err := ForValue(init, nil, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Atomic("int")) {
		t.Fatalf("expected int, got %s", got)
	}
}

func TestReferenceDecorationMustBeOutermost(t *testing.T) {
	init := &Expr{Shape: Identifier, Declared: Atomic("int"), Category: Lvalue}
	for _, pattern := range []Pattern{
		{LvalueReference, Pointer},
		{RvalueReference, Const},
		{LvalueReference, LvalueReference},
	} {
		_, err := ForValue(init, pattern, BindVariable)
		if code := deductionCode(t, err); code != ErrInvalidPattern {
			t.Fatalf("pattern %v: expected %s, got %s", pattern, ErrInvalidPattern, code)
		}
	}
}

func TestArrayElementContextRejected(t *testing.T) {
	init := &Expr{Shape: Identifier, Declared: Atomic("int"), Category: Lvalue}
	_, err := ForValue(init, nil, BindArrayElement)
	if code := deductionCode(t, err); code != ErrArrayDeduction {
		t.Fatalf("expected %s, got %s", ErrArrayDeduction, code)
	}
}

func TestTemplateArgumentContextRejected(t *testing.T) {
	init := &Expr{Shape: Identifier, Declared: Atomic("int"), Category: Lvalue}
	_, err := ForValue(init, nil, BindTemplateArgument)
	if code := deductionCode(t, err); code != ErrTemplateArgument {
		t.Fatalf("expected %s, got %s", ErrTemplateArgument, code)
	}
}

func TestInitializerErrorPropagates(t *testing.T) {
	init := &Expr{Shape: FunctionCall, Declared: Atomic(VoidName), Category: Prvalue}
	_, err := ForValue(init, nil, BindVariable)
	if code := deductionCode(t, err); code != ErrVoidDeduction {
		t.Fatalf("expected %s, got %s", ErrVoidDeduction, code)
	}
}

func TestPlainDeductionIsIdempotent(t *testing.T) {
	first, err := ForValue(constIntLvalue(), nil, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := ForValue(&Expr{Shape: Identifier, Declared: first, Category: Lvalue}, nil, BindVariable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Equal(first) {
		t.Fatalf("re-deduction changed the type: %s then %s", first, again)
	}
	if again.Ref != RefNone {
		t.Fatalf("re-deduction must stay unreferenced, got %s", again)
	}
}

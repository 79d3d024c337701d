package deduction

// ForValue computes the type a value-based deduction binds for a single
// declarator: the placeholder type is deduced from the initializer, then the
// declarator's decorations are applied back around it, innermost first.
func ForValue(initializer *Expr, pattern Pattern, context BindingContext) (Type, error) {
	placeholder, err := deducePlaceholder(initializer, pattern, context)
	if err != nil {
		return Type{}, err
	}
	return applyPattern(placeholder, pattern)
}

// ForBindings runs one shared deduction pass over every declarator of a
// declaration. The placeholder type comes from the first declarator's
// initializer; each subsequent initializer must deduce the same placeholder
// (base and qualifiers, decorations being per-declarator) or the whole
// declaration fails. On success the per-declarator bound types are returned
// in declaration order.
func ForBindings(bindings []Binding, context BindingContext) ([]Type, error) {
	if len(bindings) == 0 {
		return nil, newError(ErrMissingInitializer, nil, "declaration has no declarators")
	}
	var shared Type
	results := make([]Type, 0, len(bindings))
	for i, b := range bindings {
		placeholder, err := deducePlaceholder(b.Initializer, b.Pattern, context)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			shared = placeholder
		} else if !placeholder.sameValue(shared) {
			return nil, newError(ErrConflictingDeduction, b.Initializer,
				"declarator %d deduces %s, previous declarators deduced %s",
				i+1, placeholder, shared)
		}
		bound, err := applyPattern(placeholder, b.Pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, bound)
	}
	return results, nil
}

// Binding pairs one declarator's decoration pattern with its initializer.
type Binding struct {
	Pattern     Pattern
	Initializer *Expr
}

// deducePlaceholder resolves the initializer as an expression, strips
// reference-ness, discards top-level qualifiers when the placeholder binds a
// plain value, and peels the declarator's own decorations off so the result
// is the placeholder type alone.
func deducePlaceholder(initializer *Expr, pattern Pattern, context BindingContext) (Type, error) {
	if initializer == nil {
		return Type{}, newError(ErrMissingInitializer, nil,
			"value deduction requires an initializer")
	}
	t, err := ForExpression(initializer)
	if err != nil {
		return Type{}, err
	}
	t.Ref = RefNone
	if !pattern.HasIndirection() {
		t.CV = CV{}
	}
	if err := validatePattern(pattern, initializer); err != nil {
		return Type{}, err
	}
	switch context {
	case BindArrayElement:
		return Type{}, newError(ErrArrayDeduction, initializer,
			"value deduction cannot produce an array type")
	case BindTemplateArgument:
		return Type{}, newError(ErrTemplateArgument, initializer,
			"value deduction is not available for a template argument")
	}

	// Peel decorations outermost first. References bind the initializer type
	// directly; qualifier decorations account for qualifiers the pattern
	// itself contributes; a pointer decoration steps into the pointee.
	for i := len(pattern) - 1; i >= 0; i-- {
		switch pattern[i] {
		case Const:
			t.CV.Const = false
		case Volatile:
			t.CV.Volatile = false
		case Pointer:
			if p, ok := t.Base.(PointerTo); ok {
				t = p.Pointee
				t.Ref = RefNone
			}
		}
	}
	return t, nil
}

// applyPattern decorates the placeholder back outward, innermost first.
func applyPattern(placeholder Type, pattern Pattern) (Type, error) {
	t := placeholder
	for _, d := range pattern {
		switch d {
		case Const:
			t.CV.Const = true
		case Volatile:
			t.CV.Volatile = true
		case Pointer:
			t = Ptr(t)
		case LvalueReference:
			t.Ref = RefLvalue
		case RvalueReference:
			t.Ref = RefRvalue
		}
	}
	return t, nil
}

// validatePattern rejects reference decorations anywhere but the outermost
// position; a reference to a reference is not a formable type.
func validatePattern(pattern Pattern, initializer *Expr) error {
	for i, d := range pattern {
		if d.isReference() && i != len(pattern)-1 {
			return newError(ErrInvalidPattern, initializer,
				"%s decoration must be outermost in the declarator", d)
		}
	}
	return nil
}

package cppexpr

import (
	"fmt"
	"strings"

	"cxxdeduce/resolver-go/pkg/deduction"
)

// ParseType reads a C++ type spelling of the restricted form the resolver
// works with: qualifiers, a (possibly multi-word) base name, pointer levels
// with per-level qualifiers, and an optional trailing reference, e.g.
// "const int&", "char* const*", "unsigned long long", "int&&".
func ParseType(spelling string) (deduction.Type, error) {
	s := strings.TrimSpace(spelling)
	if s == "" {
		return deduction.Type{}, fmt.Errorf("empty type spelling")
	}

	ref := deduction.RefNone
	if strings.HasSuffix(s, "&&") {
		ref = deduction.RefRvalue
		s = strings.TrimSpace(strings.TrimSuffix(s, "&&"))
	} else if strings.HasSuffix(s, "&") {
		ref = deduction.RefLvalue
		s = strings.TrimSpace(strings.TrimSuffix(s, "&"))
	}
	if strings.ContainsAny(s, "&[]()") {
		return deduction.Type{}, fmt.Errorf("unsupported type spelling %q", spelling)
	}

	segments := strings.Split(s, "*")

	var cv deduction.CV
	var nameParts []string
	for _, word := range strings.Fields(segments[0]) {
		switch word {
		case "const":
			cv.Const = true
		case "volatile":
			cv.Volatile = true
		default:
			nameParts = append(nameParts, word)
		}
	}
	if len(nameParts) == 0 {
		return deduction.Type{}, fmt.Errorf("type spelling %q has no base name", spelling)
	}
	typ := deduction.Type{Base: deduction.Named{Name: strings.Join(nameParts, " ")}, CV: cv}

	for _, segment := range segments[1:] {
		typ = deduction.Ptr(typ)
		for _, word := range strings.Fields(segment) {
			switch word {
			case "const":
				typ.CV.Const = true
			case "volatile":
				typ.CV.Volatile = true
			default:
				return deduction.Type{}, fmt.Errorf("unexpected %q after pointer in %q", word, spelling)
			}
		}
	}
	typ.Ref = ref
	return typ, nil
}

package driver

import (
	"errors"
	"fmt"

	"cxxdeduce/resolver-go/pkg/cppexpr"
	"cxxdeduce/resolver-go/pkg/deduction"
)

// Result is the outcome of one case: the bound types (in declarator order),
// the error if deduction failed, and whether the case's expectation held.
type Result struct {
	Case   *Case
	Types  []deduction.Type
	Err    error
	Pass   bool
	Detail string
}

// Run evaluates every case of the scenario with the supplied parser.
func (s *Scenario) Run(parser *cppexpr.Parser) []Result {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		types, err := evaluateCase(parser, s.Scope, c)
		result := Result{Case: c, Types: types, Err: err}
		result.Pass, result.Detail = verify(c, types, err)
		results = append(results, result)
	}
	return results
}

// Failures filters a run down to the cases whose expectation did not hold.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Pass {
			failed = append(failed, r)
		}
	}
	return failed
}

func evaluateCase(parser *cppexpr.Parser, scope cppexpr.Scope, c *Case) ([]deduction.Type, error) {
	if c.Policy == PolicyExpression {
		expr, err := parser.ParseExpression(c.Bindings[0].Expression, scope)
		if err != nil {
			return nil, err
		}
		typ, err := deduction.ForExpression(expr)
		if err != nil {
			return nil, err
		}
		return []deduction.Type{typ}, nil
	}

	bindings := make([]deduction.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		expr, err := parser.ParseExpression(b.Expression, scope)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, deduction.Binding{Pattern: b.Pattern, Initializer: expr})
	}
	return deduction.ForBindings(bindings, c.Context)
}

func verify(c *Case, types []deduction.Type, err error) (bool, string) {
	if c.ExpectError != "" {
		var dErr *deduction.Error
		if !errors.As(err, &dErr) {
			return false, fmt.Sprintf("expected error %s, got %v", c.ExpectError, err)
		}
		if dErr.Code != c.ExpectError {
			return false, fmt.Sprintf("expected error %s, got %s", c.ExpectError, dErr.Code)
		}
		return true, ""
	}
	if err != nil {
		return false, fmt.Sprintf("unexpected error: %v", err)
	}
	if len(types) != len(c.Bindings) {
		return false, fmt.Sprintf("expected %d bound types, got %d", len(c.Bindings), len(types))
	}
	for i, b := range c.Bindings {
		if b.Expect == nil {
			continue
		}
		if !types[i].Equal(*b.Expect) {
			return false, fmt.Sprintf("declarator %d: expected %s, got %s", i+1, *b.Expect, types[i])
		}
	}
	return true, ""
}

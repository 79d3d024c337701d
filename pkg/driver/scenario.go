package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cxxdeduce/resolver-go/pkg/cppexpr"
	"cxxdeduce/resolver-go/pkg/deduction"
)

// Policy selects which deduction engine a case exercises.
type Policy int

const (
	PolicyExpression Policy = iota
	PolicyValue
)

func (p Policy) String() string {
	if p == PolicyValue {
		return "value"
	}
	return "expression"
}

// Scenario is a loaded scenario file.
type Scenario struct {
	Path  string
	Scope cppexpr.Scope
	Cases []*Case
}

// Case is one deduction to perform plus its expectation. Value-policy cases
// carry one binding per declarator; expression-policy cases carry exactly
// one binding with no pattern.
type Case struct {
	Name        string
	Policy      Policy
	Context     deduction.BindingContext
	Bindings    []CaseBinding
	ExpectError deduction.ErrorCode
}

// CaseBinding pairs one declarator's expression with its decoration pattern
// and, optionally, the type it is expected to bind.
type CaseBinding struct {
	Expression string
	Pattern    deduction.Pattern
	Expect     *deduction.Type
}

type scenarioDisk struct {
	Scope map[string]string `yaml:"scope"`
	Cases []caseDisk        `yaml:"cases"`
}

type caseDisk struct {
	Name       string        `yaml:"name"`
	Policy     string        `yaml:"policy"`
	Context    string        `yaml:"context"`
	Expression string        `yaml:"expression"`
	Pattern    []string      `yaml:"pattern"`
	Bindings   []bindingDisk `yaml:"bindings"`
	Expect     string        `yaml:"expect"`
	Error      string        `yaml:"error"`
}

type bindingDisk struct {
	Expression string   `yaml:"expression"`
	Pattern    []string `yaml:"pattern"`
	Expect     string   `yaml:"expect"`
}

// Load parses a scenario file from disk.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw scenarioDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", abs, err)
	}

	scope, err := cppexpr.ScopeFromSpellings(raw.Scope)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", abs, err)
	}

	scenario := &Scenario{Path: abs, Scope: scope}
	for i, rawCase := range raw.Cases {
		c, err := convertCase(rawCase)
		if err != nil {
			return nil, fmt.Errorf("scenario: %s: case %d (%s): %w", abs, i+1, rawCase.Name, err)
		}
		scenario.Cases = append(scenario.Cases, c)
	}
	return scenario, nil
}

func convertCase(raw caseDisk) (*Case, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	c := &Case{Name: raw.Name}

	switch raw.Policy {
	case "expression":
		c.Policy = PolicyExpression
	case "value":
		c.Policy = PolicyValue
	case "":
		return nil, fmt.Errorf("missing policy")
	default:
		return nil, fmt.Errorf("unknown policy %q", raw.Policy)
	}

	context, err := ParseContext(raw.Context)
	if err != nil {
		return nil, err
	}
	c.Context = context
	if c.Policy == PolicyExpression && raw.Context != "" {
		return nil, fmt.Errorf("context is only meaningful under the value policy")
	}

	if raw.Expression != "" && len(raw.Bindings) > 0 {
		return nil, fmt.Errorf("expression and bindings are mutually exclusive")
	}
	if raw.Expression != "" {
		raw.Bindings = []bindingDisk{{
			Expression: raw.Expression,
			Pattern:    raw.Pattern,
			Expect:     raw.Expect,
		}}
	} else if raw.Expect != "" || len(raw.Pattern) > 0 {
		return nil, fmt.Errorf("top-level pattern/expect require a top-level expression")
	}
	if len(raw.Bindings) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	if c.Policy == PolicyExpression && len(raw.Bindings) != 1 {
		return nil, fmt.Errorf("the expression policy takes a single expression")
	}

	for _, rawBinding := range raw.Bindings {
		binding, err := convertBinding(rawBinding, c.Policy)
		if err != nil {
			return nil, err
		}
		c.Bindings = append(c.Bindings, binding)
	}

	if raw.Error != "" {
		code, err := errorCode(raw.Error)
		if err != nil {
			return nil, err
		}
		c.ExpectError = code
	}
	return c, nil
}

func convertBinding(raw bindingDisk, policy Policy) (CaseBinding, error) {
	if raw.Expression == "" {
		return CaseBinding{}, fmt.Errorf("missing expression")
	}
	binding := CaseBinding{Expression: raw.Expression}

	if len(raw.Pattern) > 0 && policy == PolicyExpression {
		return CaseBinding{}, fmt.Errorf("patterns are only meaningful under the value policy")
	}
	pattern, err := ParsePattern(raw.Pattern)
	if err != nil {
		return CaseBinding{}, err
	}
	binding.Pattern = pattern

	if raw.Expect != "" {
		expected, err := cppexpr.ParseType(raw.Expect)
		if err != nil {
			return CaseBinding{}, err
		}
		binding.Expect = &expected
	}
	return binding, nil
}

// ParseContext reads a binding-context name; the empty string means a plain
// variable binding.
func ParseContext(name string) (deduction.BindingContext, error) {
	switch name {
	case "", "variable":
		return deduction.BindVariable, nil
	case "array-element":
		return deduction.BindArrayElement, nil
	case "template-argument":
		return deduction.BindTemplateArgument, nil
	default:
		return 0, fmt.Errorf("unknown context %q", name)
	}
}

// ParsePattern reads declarator decoration words, innermost first. Symbolic
// spellings ("*", "&", "&&") are accepted alongside the word forms.
func ParsePattern(words []string) (deduction.Pattern, error) {
	var pattern deduction.Pattern
	for _, word := range words {
		decoration, err := decorationFor(word)
		if err != nil {
			return nil, err
		}
		pattern = append(pattern, decoration)
	}
	return pattern, nil
}

func decorationFor(word string) (deduction.Decoration, error) {
	switch word {
	case "pointer", "*":
		return deduction.Pointer, nil
	case "lvalue-reference", "&":
		return deduction.LvalueReference, nil
	case "rvalue-reference", "&&":
		return deduction.RvalueReference, nil
	case "const":
		return deduction.Const, nil
	case "volatile":
		return deduction.Volatile, nil
	default:
		return 0, fmt.Errorf("unknown decoration %q", word)
	}
}

func errorCode(name string) (deduction.ErrorCode, error) {
	code := deduction.ErrorCode(name)
	switch code {
	case deduction.ErrVoidDeduction,
		deduction.ErrMissingInitializer,
		deduction.ErrInvalidPattern,
		deduction.ErrArrayDeduction,
		deduction.ErrTemplateArgument,
		deduction.ErrConflictingDeduction:
		return code, nil
	}
	return "", fmt.Errorf("unknown error code %q", name)
}

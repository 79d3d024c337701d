package cppexpr

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"cxxdeduce/resolver-go/pkg/deduction"
)

// Scope maps declared names to their declared types. Names used in call
// position map to the function's declared return type; member names share
// the same table.
type Scope map[string]deduction.Type

// ScopeFromSpellings builds a scope from C++ type spellings, e.g.
// {"n": "int", "c": "const int", "s": "char*"}.
func ScopeFromSpellings(spellings map[string]string) (Scope, error) {
	scope := make(Scope, len(spellings))
	for name, spelling := range spellings {
		typ, err := ParseType(spelling)
		if err != nil {
			return nil, fmt.Errorf("cppexpr: scope entry %q: %w", name, err)
		}
		scope[name] = typ
	}
	return scope, nil
}

// Parser wraps a tree-sitter parser configured for C++ expressions.
type Parser struct {
	parser *sitter.Parser
}

// NewParser constructs a parser with the C++ grammar loaded.
func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tree_sitter_cpp.Language())
	if lang == nil {
		return nil, fmt.Errorf("cppexpr: C++ language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("cppexpr: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// The grammar only accepts expressions in statement position, so the
// expression is parsed inside a synthetic function body and unwrapped again.
const (
	probePrefix = "void cxxdeduce_probe_() {\n"
	probeSuffix = "\n;\n}\n"
)

// ParseExpression parses a single C++ expression and resolves every name it
// mentions against scope, returning a fully classified description.
func (p *Parser) ParseExpression(expression string, scope Scope) (*deduction.Expr, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("cppexpr: nil parser")
	}
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("cppexpr: empty expression")
	}

	source := []byte(probePrefix + expression + probeSuffix)
	tree := p.parser.Parse(source, nil)
	defer tree.Close()

	node, err := probeExpressionNode(tree.RootNode())
	if err != nil {
		return nil, err
	}

	ctx := &parseContext{source: source, scope: scope}
	expr, err := ctx.convert(node)
	if err != nil {
		return nil, err
	}
	return deduction.Apply(deduction.RuleClassifier{}, expr)
}

// probeExpressionNode digs the wrapped expression back out of the synthetic
// function body.
func probeExpressionNode(root *sitter.Node) (*sitter.Node, error) {
	if root == nil || root.Kind() != "translation_unit" {
		return nil, fmt.Errorf("cppexpr: unexpected parse root")
	}
	var fn *sitter.Node
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child != nil && child.Kind() == "function_definition" {
			fn = child
			break
		}
	}
	if fn == nil {
		return nil, fmt.Errorf("cppexpr: expression is not parseable")
	}
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil, fmt.Errorf("cppexpr: expression is not parseable")
	}
	stmt := body.NamedChild(0)
	if stmt == nil || stmt.Kind() != "expression_statement" {
		return nil, errorAt(stmt, "cppexpr: not a supported expression")
	}
	expr := stmt.NamedChild(0)
	if expr == nil {
		return nil, errorAt(stmt, "cppexpr: empty expression statement")
	}
	if expr.HasError() {
		return nil, errorAt(expr, "cppexpr: syntax error in expression")
	}
	return expr, nil
}

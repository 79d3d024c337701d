// Package deduction implements the placeholder type-deduction rules for
// C++-style bindings in Go. It resolves an already-classified expression
// description to the type an expression-based deduction (decltype) or a
// value-based deduction (auto) would bind, including reference collapse,
// top-level cv discard, and declarator decoration. The package is a pure
// mapping: it holds no state between calls and performs no parsing; raw
// syntax is turned into Expr values by a front-end such as pkg/cppexpr.
package deduction

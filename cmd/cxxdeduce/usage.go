package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  cxxdeduce expr --scope <file.yml> <expression>")
	fmt.Fprintln(os.Stderr, "  cxxdeduce value --scope <file.yml> [--pattern <d,d,...>] [--context <ctx>] <expression>")
	fmt.Fprintln(os.Stderr, "  cxxdeduce check <scenario.yml> [more ...]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "expr resolves an expression under expression-based deduction (decltype);")
	fmt.Fprintln(os.Stderr, "value resolves an initializer under value-based deduction (auto).")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Scope files are yaml documents with a scope mapping of names to C++ type")
	fmt.Fprintln(os.Stderr, "spellings. Pattern decorations are innermost first: pointer, lvalue-reference,")
	fmt.Fprintln(os.Stderr, "rvalue-reference, const, volatile (or *, &, &&). Contexts: variable,")
	fmt.Fprintln(os.Stderr, "array-element, template-argument.")
}

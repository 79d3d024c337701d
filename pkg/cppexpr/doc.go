// Package cppexpr turns raw C++ expression text into the classified
// expression descriptions consumed by pkg/deduction. It parses with the
// tree-sitter C++ grammar, maps the syntax tree onto expression shapes, and
// looks entity types up in a caller-supplied scope. It is the front-end the
// resolver core deliberately does not contain.
package cppexpr

package cppexpr

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceLocation captures a span inside the expression text, 1-based.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	return e.Message
}

func errorAt(node *sitter.Node, message string) *ParseError {
	return &ParseError{Message: message, Location: locationForNode(node)}
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint(len(source)) {
		return ""
	}
	return string(source[start:end])
}

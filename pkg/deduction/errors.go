package deduction

import "fmt"

// ErrorCode names one of the terminal deduction failures. Deduction errors
// are logical, not transient: retrying the same inputs yields the same code.
type ErrorCode string

const (
	ErrVoidDeduction        ErrorCode = "VOID_DEDUCTION"
	ErrMissingInitializer   ErrorCode = "MISSING_INITIALIZER"
	ErrInvalidPattern       ErrorCode = "INVALID_PATTERN"
	ErrArrayDeduction       ErrorCode = "ARRAY_DEDUCTION"
	ErrTemplateArgument     ErrorCode = "TEMPLATE_ARGUMENT_CONTEXT"
	ErrConflictingDeduction ErrorCode = "CONFLICTING_DEDUCTION"
)

// Error is a deduction failure with a stable machine-readable code. Expr is
// the offending expression description when one exists, carried verbatim so
// callers can surface it.
type Error struct {
	Code    ErrorCode
	Message string
	Expr    *Expr
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, expr *Expr, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Expr: expr}
}

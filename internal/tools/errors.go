// In file: internal/tools/errors.go
package tools

import "fmt"

// ErrorKind classifies a failed invocation. Callers at the tool boundary only
// see the message; the kind is for logs, metrics and message composition.
type ErrorKind string

const (
	UnknownDomain     ErrorKind = "unknown_domain"
	UnknownTool       ErrorKind = "unknown_tool"
	HandlerFailure    ErrorKind = "handler_failure"
	NotFound          ErrorKind = "not_found"
	OutOfStock        ErrorKind = "out_of_stock"
	InsufficientFunds ErrorKind = "insufficient_funds"
	NotImplemented    ErrorKind = "not_implemented"
)

// ToolError is a business failure declared by a handler.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

// Errorf builds a ToolError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *ToolError {
	return &ToolError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

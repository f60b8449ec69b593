// In file: internal/tools/types.go

// Package tools implements the tool-invocation protocol of the gateway: per-domain
// registries of named tools, each described by a ToolDescriptor, and the Invoker
// that dispatches a (domain, tool, arguments) triple to a handler and normalizes
// whatever happens into a single Result envelope.
package tools

import "context"

// Canonical domain names.
const (
	DomainFood    = "food"
	DomainProduct = "product"
	DomainBanking = "banking"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamNumber  ParamType = "number"
)

// ParamSpec describes one argument of a tool. Minimum and Maximum are
// documentation for callers; handlers stay lenient and never reject a call for
// being out of range.
type ParamSpec struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
	// Default is filled in by the Invoker when the caller omits the argument.
	Default any `json:"default,omitempty"`
}

// ToolDescriptor is the static description of a tool. It is never mutated
// after registration.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
}

// Args is the weakly-typed argument bag of a tool call. Values are strings,
// integers or floats; handlers decode it with DecodeArgs.
type Args map[string]any

// Handler executes one tool. A *ToolError return is reported under its own
// kind; any other error, or a panic, is reported as HandlerFailure.
type Handler func(ctx context.Context, args Args) (any, error)

// Mode tells which implementation answered a call.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeReal Mode = "real"
)

// ModeFor maps a "mock mode enabled" flag to a Mode.
func ModeFor(mock bool) Mode {
	if mock {
		return ModeMock
	}
	return ModeReal
}

func bound(v float64) *float64 { return &v }

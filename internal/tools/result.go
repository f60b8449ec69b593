// In file: internal/tools/result.go
package tools

import (
	"encoding/json"
	"fmt"
)

// Result is the normalized outcome of every tool call: either a payload, or an
// error kind with a message. The zero Kind means success.
type Result struct {
	Payload any
	Kind    ErrorKind
	Message string
	Mode    Mode
}

func okResult(payload any, mode Mode) Result {
	return Result{Payload: payload, Mode: mode}
}

func errResult(kind ErrorKind, message string, mode Mode) Result {
	return Result{Kind: kind, Message: message, Mode: mode}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Kind == ""
}

// Err returns the failure as a *ToolError, or nil on success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ToolError{Kind: r.Kind, Message: r.Message}
}

// MarshalJSON renders the wire envelope: {"success":true, <payload fields>, "mode":...}
// or {"success":false, "error":..., "mode":...}. The payload must encode to a JSON object.
func (r Result) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if r.OK() {
		if r.Payload != nil {
			raw, err := json.Marshal(r.Payload)
			if err != nil {
				return nil, fmt.Errorf("marshal payload: %w", err)
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				return nil, fmt.Errorf("payload of type %T is not a JSON object: %w", r.Payload, err)
			}
			if out == nil {
				out = map[string]any{}
			}
		}
		out["success"] = true
	} else {
		out["success"] = false
		out["error"] = r.Message
	}
	if r.Mode != "" {
		out["mode"] = r.Mode
	}
	return json.Marshal(out)
}

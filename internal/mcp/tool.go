package mcp

import "context"

// Tool is the capability contract every gateway tool satisfies. Call must
// validate its own arguments and return a caller-safe error message rather
// than panicking; whatever it returns as the first value is wrapped verbatim
// into the JSON-RPC result.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Call(ctx context.Context, arguments []byte) (any, error)
}

// HealthChecker is the optional liveness probe a remote-backed tool may
// implement. Tools without it are assumed healthy. The probe is advisory and
// never gates normal calls.
type HealthChecker interface {
	Health(ctx context.Context) bool
}

// ToolHealth reports a tool's health, defaulting to healthy for tools that
// do not implement HealthChecker.
func ToolHealth(ctx context.Context, t Tool) bool {
	if hc, ok := t.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return true
}

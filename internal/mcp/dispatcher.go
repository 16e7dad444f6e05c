package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const (
	serverName = "irish-mcp-gateway"
)

// Dispatcher routes JSON-RPC requests to tool operations. Every code path
// yields a well-formed Response; dispatch never panics across a request
// boundary.
type Dispatcher struct {
	registry *Registry
	version  string
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, version string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		version:  version,
		logger:   logger.With("component", "dispatcher"),
	}
}

// DispatchRaw decodes one raw JSON-RPC message and dispatches it. A decode
// failure is terminal for that message and yields a parse-error response with
// a null identifier, since the ID cannot be recovered from malformed bytes.
func (d *Dispatcher) DispatchRaw(ctx context.Context, raw []byte) *Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewError(nil, ParseError, fmt.Sprintf("parse error: %s", err), nil)
	}
	return d.Dispatch(ctx, &req)
}

// Dispatch resolves the request's method and produces its response.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	d.logger.Debug("rpc_request", "method", req.Method, "id", string(req.ID))

	switch req.Method {
	case "initialize":
		return NewResult(req.ID, map[string]any{
			"serverInfo": map[string]any{
				"name":    serverName,
				"version": d.version,
			},
			"capabilities": map[string]any{},
		})

	case "shutdown":
		// Idempotent no-op; process termination is a transport concern.
		return NewResult(req.ID, json.RawMessage("null"))

	case "tools.list", "tools/list":
		return NewResult(req.ID, ListToolsResult{Tools: d.registry.List()})

	case "tools.call", "tools/call":
		return d.callTool(ctx, req)

	default:
		return NewError(req.ID, MethodNotFound, fmt.Sprintf("unknown method: %s", req.Method), nil)
	}
}

func (d *Dispatcher) callTool(ctx context.Context, req *Request) *Response {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return NewError(req.ID, InvalidParams, "invalid tools.call params", err.Error())
		}
	}
	if params.Name == "" {
		return NewError(req.ID, InvalidParams, "missing tool name", nil)
	}

	tool, ok := d.registry.Get(params.Name)
	if !ok {
		return NewError(req.ID, ServerError, fmt.Sprintf("unknown tool: %s", params.Name), nil)
	}

	result, err := d.safeCall(ctx, tool, params.Arguments)
	if err != nil {
		d.logger.Warn("tool_call_failed", "tool", params.Name, "error", err)
		return NewError(req.ID, ServerError, err.Error(), nil)
	}

	d.logger.Debug("tool_call_ok", "tool", params.Name)
	return NewResult(req.ID, result)
}

// safeCall invokes a tool and converts a panic into a plain error so a
// misbehaving tool cannot take down the transport loop.
func (d *Dispatcher) safeCall(ctx context.Context, tool Tool, arguments []byte) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool_panic", "tool", tool.Name(), "panic", r)
			result = nil
			err = fmt.Errorf("tool %s failed: %v", tool.Name(), r)
		}
	}()
	return tool.Call(ctx, arguments)
}

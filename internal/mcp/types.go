// Package mcp implements the JSON-RPC envelope, the tool capability model,
// the immutable tool registry, and the method dispatcher behind both in-core
// transports.
package mcp

import "encoding/json"

// Request represents a JSON-RPC 2.0 request. The ID is opaque raw JSON so
// string, numeric and null identifiers echo back untouched.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response. Result and Error are mutually
// exclusive; a nil ID marshals as null, which is the contract for responses
// to unparsable requests.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface for RPCError.
func (e *RPCError) Error() string {
	return e.Message
}

// Standard JSON-RPC error codes.
const (
	ParseError     = -32700 // invalid JSON
	InvalidRequest = -32600 // invalid request object
	MethodNotFound = -32601 // method does not exist
	InvalidParams  = -32602 // invalid method parameters
	InternalError  = -32603 // internal JSON-RPC error
	ServerError    = -32000 // application-level tool failure
)

// ToolInfo is the {name, description, inputSchema} triple returned by
// tools.list.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ListToolsResult is the result payload of tools.list.
type ListToolsResult struct {
	Tools []ToolInfo `json:"tools"`
}

// CallToolParams are the parameters of tools.call. Arguments defaults to
// empty when absent.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// NewResult creates a JSON-RPC success response echoing the request ID.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// NewError creates a JSON-RPC error response echoing the request ID.
func NewError(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

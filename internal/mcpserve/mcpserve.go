// Package mcpserve projects the gateway's tool registry onto the official
// MCP Go SDK. Session lifecycle, SSE framing and protocol version negotiation
// all belong to the SDK; this package only supplies the (handler, tool-table)
// pair, identically for stdio serving and streamable HTTP serving.
package mcpserve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
)

// NewServer builds an SDK server exposing every registered tool.
func NewServer(registry *mcp.Registry, version string, logger *slog.Logger) (*sdk.Server, error) {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    "irish-mcp-gateway",
		Version: version,
	}, nil)

	for _, tool := range registry.Tools() {
		schema, err := toSDKSchema(tool.InputSchema())
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name(), err)
		}
		server.AddTool(&sdk.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: schema,
		}, toolHandler(tool, logger))
	}

	return server, nil
}

// ServeStdio serves the framed MCP stdio transport until the client
// disconnects or ctx is cancelled.
func ServeStdio(ctx context.Context, registry *mcp.Registry, version string, logger *slog.Logger) error {
	server, err := NewServer(registry, version, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx, &sdk.StdioTransport{})
}

// HTTPHandler returns the streamable HTTP handler for mounting at /mcp.
func HTTPHandler(registry *mcp.Registry, version string, logger *slog.Logger) (http.Handler, error) {
	server, err := NewServer(registry, version, logger)
	if err != nil {
		return nil, err
	}
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return server
	}, nil), nil
}

func toolHandler(tool mcp.Tool, logger *slog.Logger) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		result, err := tool.Call(ctx, req.Params.Arguments)
		if err != nil {
			logger.Warn("sdk_tool_call_failed", "tool", tool.Name(), "error", err)
			return &sdk.CallToolResult{
				IsError: true,
				Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
			}, nil
		}

		text, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("serialize tool result: %w", err)
		}
		return &sdk.CallToolResult{
			Content:           []sdk.Content{&sdk.TextContent{Text: string(text)}},
			StructuredContent: result,
		}, nil
	}
}

// toSDKSchema converts the gateway's map-shaped schema into the SDK's
// representation via a JSON round-trip.
func toSDKSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(b, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return &schema, nil
}

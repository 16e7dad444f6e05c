package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubTool struct {
	name string
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "stub" }
func (t *stubTool) InputSchema() map[string]any {
	return map[string]any{"type": "object"}
}
func (t *stubTool) Call(ctx context.Context, arguments []byte) (any, error) {
	return map[string]any{"ok": true}, nil
}

func newTestHandler(tools ...mcp.Tool) *RPCHandler {
	d := mcp.NewDispatcher(mcp.NewRegistry(tools...), "0.0.0-test", discardLogger())
	return NewRPCHandler(d, discardLogger())
}

func TestRPCHandlerToolsList(t *testing.T) {
	h := newTestHandler(&stubTool{name: "a.tool"})

	req := httptest.NewRequest(http.MethodPost, "/v1/grammar/check", strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"tools.list"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	tools := body["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "a.tool", tools[0].(map[string]any)["name"])
}

func TestRPCHandlerToolsCall(t *testing.T) {
	h := newTestHandler(&stubTool{name: "a.tool"})

	req := httptest.NewRequest(http.MethodPost, "/v1/grammar/check", strings.NewReader(
		`{"jsonrpc":"2.0","id":2,"method":"tools.call","params":{"name":"a.tool","arguments":{}}}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"ok": true}, body["result"])
}

func TestRPCHandlerRPCErrorTravelsIn200(t *testing.T) {
	h := newTestHandler(&stubTool{name: "a.tool"})

	req := httptest.NewRequest(http.MethodPost, "/v1/grammar/check", strings.NewReader(
		`{"jsonrpc":"2.0","id":3,"method":"nope"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errObj := body["error"].(map[string]any)
	assert.Equal(t, float64(mcp.MethodNotFound), errObj["code"])
}

func TestRPCHandlerUndecodableBody(t *testing.T) {
	h := newTestHandler(&stubTool{name: "a.tool"})

	req := httptest.NewRequest(http.MethodPost, "/v1/grammar/check", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["id"])
	errObj := body["error"].(map[string]any)
	assert.Equal(t, float64(mcp.ParseError), errObj["code"])
}

func TestRPCHandlerRejectsNonPOST(t *testing.T) {
	h := newTestHandler(&stubTool{name: "a.tool"})

	req := httptest.NewRequest(http.MethodGet, "/v1/grammar/check", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

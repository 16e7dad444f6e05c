// Package handlers implements the chi HTTP front-end: the plain JSON-RPC
// endpoint, the health endpoint, and shared middleware.
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
)

// MaxRequestBodySize bounds one JSON-RPC request body (1MB).
const MaxRequestBodySize = 1 << 20

// RPCHandler serves one JSON-RPC dispatch per POST request. RPC-level errors
// travel in the 200 response body; only undecodable bodies short-circuit with
// HTTP 400 before reaching the dispatcher.
type RPCHandler struct {
	dispatcher *mcp.Dispatcher
	logger     *slog.Logger
}

// NewRPCHandler creates the JSON-RPC HTTP handler.
func NewRPCHandler(dispatcher *mcp.Dispatcher, logger *slog.Logger) *RPCHandler {
	return &RPCHandler{
		dispatcher: dispatcher,
		logger:     logger.With("handler", "rpc"),
	}
}

// ServeHTTP handles the request.
func (h *RPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize))
	if err != nil {
		h.logger.Warn("body_read_failed", "error", err, "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusBadRequest, mcp.NewError(nil, mcp.ParseError, "unreadable request body", nil))
		return
	}

	var req mcp.Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("body_decode_failed", "error", err, "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusBadRequest, mcp.NewError(nil, mcp.ParseError, "parse error: "+err.Error(), nil))
		return
	}

	resp := h.dispatcher.Dispatch(r.Context(), &req)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

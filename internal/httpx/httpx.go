// Package httpx builds the outbound HTTP clients and correlation headers
// shared by every remote service adapter.
package httpx

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/config"
)

const (
	connectTimeout = 2 * time.Second
	totalTimeout   = 6 * time.Second

	// HeaderRequestID carries the per-call correlation identifier so the
	// upstream can tie its logs back to ours.
	HeaderRequestID = "X-Request-Id"

	// UserAgent is the fixed client identifier sent with every outbound call.
	UserAgent = "irish-mcp-gateway/" + config.Version
)

// NewClient returns an HTTP client with fixed connect and total timeouts.
// The total timeout bounds the whole exchange including body read.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: totalTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}
}

// NewRequestID generates an opaque correlation identifier for one outbound
// call. The value is never interpreted, only logged on both sides.
func NewRequestID() string {
	return "gw-" + uuid.NewString()
}

// AddStandardHeaders attaches the correlation and client-identity headers to
// an outbound request. When requestID is empty a fresh one is generated; the
// identifier used is returned for logging.
func AddStandardHeaders(req *http.Request, requestID string) string {
	if requestID == "" {
		requestID = NewRequestID()
	}
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("User-Agent", UserAgent)
	return requestID
}

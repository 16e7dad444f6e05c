// Package gramadoir adapts the remote An Gramadóir grammar service to the
// gateway's normalized issue model.
package gramadoir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/cache"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/httpx"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/models"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/retry"
)

const checkPath = "/api/gramadoir/1.0"

// Client calls the Gramadóir HTTP API.
type Client struct {
	base    string
	http    *http.Client
	cache   *cache.Cache
	retries int
	logger  *slog.Logger
}

// New creates a client for the given base URL. resultCache may be nil.
func New(baseURL string, retries int, resultCache *cache.Cache, logger *slog.Logger) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    httpx.NewClient(),
		cache:   resultCache,
		retries: retries,
		logger:  logger.With("client", "gramadoir"),
	}
}

type checkRequest struct {
	Teacs string `json:"teacs"`
}

// issueWire is the upstream response shape. Every numeric field arrives as a
// string; field presence is inconsistent across deployments.
type issueWire struct {
	Context       string `json:"context"`
	ContextOffset string `json:"contextoffset"`
	ErrorLength   string `json:"errorlength"`
	FromX         string `json:"fromx"`
	FromY         string `json:"fromy"`
	Msg           string `json:"msg"`
	RuleID        string `json:"ruleId"`
	ToX           string `json:"tox"`
	ToY           string `json:"toy"`
}

// Check submits text and returns normalized grammar issues.
func (c *Client) Check(ctx context.Context, text string) ([]models.GrammarIssue, error) {
	key := cache.Key("gramadoir", text)
	if b, err := c.cache.Get(ctx, key); err == nil && b != nil {
		var cached []models.GrammarIssue
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	payload, err := json.Marshal(checkRequest{Teacs: text})
	if err != nil {
		return nil, fmt.Errorf("encode gramadoir request: %w", err)
	}

	wire, err := retry.Do(ctx, c.retries, func(attempt int) ([]issueWire, error) {
		return c.post(ctx, payload, attempt)
	})
	if err != nil {
		return nil, err
	}

	issues := normalize(wire)

	if b, err := json.Marshal(issues); err == nil {
		c.cache.Set(ctx, key, b)
	}

	return issues, nil
}

func (c *Client) post(ctx context.Context, payload []byte, attempt int) ([]issueWire, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+checkPath, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Permanent(err)
	}
	requestID := httpx.AddStandardHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("gramadoir_request", "request_id", requestID, "attempt", attempt)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gramadoir request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("retryable upstream status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, retry.Permanent(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	var wire []issueWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, retry.Permanent(fmt.Errorf("decode gramadoir response: %w", err))
	}
	return wire, nil
}

// Health probes the upstream with a lightweight GET. Advisory only; it never
// gates normal calls.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return false
	}
	httpx.AddStandardHeaders(req, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusMultipleChoices
}

func normalize(wire []issueWire) []models.GrammarIssue {
	issues := make([]models.GrammarIssue, 0, len(wire))
	for _, w := range wire {
		start := atoiOrZero(w.FromX)
		end, ok := atoi(w.ToX)
		if !ok {
			// Some deployments omit the end offset and supply a length.
			end = start + atoiOrZero(w.ErrorLength)
		}
		issues = append(issues, models.GrammarIssue{
			Code:        w.RuleID,
			Message:     w.Msg,
			Start:       start,
			End:         end,
			Suggestions: []string{},
		})
	}
	return issues
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func atoiOrZero(s string) int {
	n, _ := atoi(s)
	return n
}

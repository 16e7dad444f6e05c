// Package gaelspell adapts the remote GaelSpell spelling service to the
// gateway's normalized correction model.
package gaelspell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/cache"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/httpx"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/models"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/retry"
)

const checkPath = "/api/gaelspell/1.0"

// Client calls the GaelSpell HTTP API.
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
		logger:  logger.With("client", "gaelspell"),
	}
}

type checkRequest struct {
	Teacs string `json:"teacs"`
}

// tokenTuple is one upstream entry: a two-element JSON array of
// [misspelled-token, [suggestions...]].
type tokenTuple struct {
	Token       string
	Suggestions []string
}

func (t *tokenTuple) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) < 2 {
		return fmt.Errorf("expected [token, suggestions] pair, got %d elements", len(parts))
	}
	if err := json.Unmarshal(parts[0], &t.Token); err != nil {
		return err
	}
	return json.Unmarshal(parts[1], &t.Suggestions)
}

// Check submits text and returns normalized spelling corrections.
func (c *Client) Check(ctx context.Context, text string) ([]models.Correction, error) {
	key := cache.Key("gaelspell", text)
	if b, err := c.cache.Get(ctx, key); err == nil && b != nil {
		var cached []models.Correction
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	payload, err := json.Marshal(checkRequest{Teacs: text})
	if err != nil {
		return nil, fmt.Errorf("encode gaelspell request: %w", err)
	}

	wire, err := retry.Do(ctx, c.retries, func(attempt int) ([]tokenTuple, error) {
		return c.post(ctx, payload, attempt)
	})
	if err != nil {
		return nil, err
	}

	corrections := make([]models.Correction, 0, len(wire))
	for _, t := range wire {
		suggestions := t.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		corrections = append(corrections, models.Correction{
			Token:       t.Token,
			Suggestions: suggestions,
		})
	}

	if b, err := json.Marshal(corrections); err == nil {
		c.cache.Set(ctx, key, b)
	}

	return corrections, nil
}

func (c *Client) post(ctx context.Context, payload []byte, attempt int) ([]tokenTuple, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+checkPath, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Permanent(err)
	}
	requestID := httpx.AddStandardHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("gaelspell_request", "request_id", requestID, "attempt", attempt)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gaelspell request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("retryable upstream status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, retry.Permanent(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	var wire []tokenTuple
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, retry.Permanent(fmt.Errorf("decode gaelspell response: %w", err))
	}
	return wire, nil
}

// Health probes the upstream with a lightweight GET. Advisory only.
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

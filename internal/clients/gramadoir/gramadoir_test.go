package gramadoir

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const issueFixture = `[{
	"context":"Tá an peann ar an mbord",
	"contextoffset":"0",
	"errorlength":"2",
	"fromx":"0",
	"fromy":"0",
	"msg":"Agreement",
	"ruleId":"AGR",
	"tox":"2",
	"toy":"0"
}]`

func TestCheckMapsWireIssues(t *testing.T) {
	var gotBody map[string]string
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, checkPath, r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, issueFixture)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, discardLogger())
	issues, err := c.Check(context.Background(), "Tá an peann ar an mbord")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"teacs": "Tá an peann ar an mbord"}, gotBody)
	assert.NotEmpty(t, gotRequestID)

	require.Len(t, issues, 1)
	assert.Equal(t, "AGR", issues[0].Code)
	assert.Equal(t, "Agreement", issues[0].Message)
	assert.Equal(t, 0, issues[0].Start)
	assert.Equal(t, 2, issues[0].End)
	assert.Empty(t, issues[0].Suggestions)
}

func TestCheckDerivesEndFromLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"fromx":"3","errorlength":"4","msg":"Spelling","ruleId":"SPELL"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, discardLogger())
	issues, err := c.Check(context.Background(), "focal")
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Start)
	assert.Equal(t, 7, issues[0].End)
}

func TestCheckDefaultsUnparsableNumbersToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"fromx":"junk","tox":"","errorlength":"??","msg":"m","ruleId":"R"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, discardLogger())
	issues, err := c.Check(context.Background(), "focal")
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, 0, issues[0].Start)
	assert.Equal(t, 0, issues[0].End)
}

func TestCheckRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, issueFixture)
	}))
	defer srv.Close()

	c := New(srv.URL, 2, nil, discardLogger())
	issues, err := c.Check(context.Background(), "Tá an peann ar an mbord")
	require.NoError(t, err)

	assert.Equal(t, int32(2), attempts.Load())
	require.Len(t, issues, 1)
	assert.Equal(t, "AGR", issues[0].Code)
}

func TestCheckDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, 3, nil, discardLogger())
	_, err := c.Check(context.Background(), "focal")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream status 404")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestCheckSurfacesLastErrorWhenExhausted(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 1, nil, discardLogger())
	_, err := c.Check(context.Background(), "focal")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retryable upstream status 502")
	assert.Equal(t, int32(2), attempts.Load())
}

func TestHealthProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, discardLogger())
	assert.True(t, c.Health(context.Background()))

	srv.Close()
	assert.False(t, c.Health(context.Background()))
}

package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNilCacheIsPassthrough(t *testing.T) {
	var c *Cache

	b, err := c.Get(context.Background(), Key("gramadoir", "abc"))
	require.NoError(t, err)
	assert.Nil(t, b)

	// Set and Close must also be safe on a nil cache.
	c.Set(context.Background(), "k", []byte("v"))
	assert.NoError(t, c.Close())
}

func TestKeyIsDeterministicPerServiceAndText(t *testing.T) {
	assert.Equal(t, Key("gramadoir", "abc"), Key("gramadoir", "abc"))
	assert.NotEqual(t, Key("gramadoir", "abc"), Key("gaelspell", "abc"))
	assert.NotEqual(t, Key("gramadoir", "abc"), Key("gramadoir", "abd"))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not-a-redis-url", "", 0, discardLogger())
	assert.Error(t, err)
}

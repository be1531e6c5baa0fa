package cache

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newCache(enabled bool, ttl string) Cache {
	cfg := config.GetDefaultConfig()
	cfg.Cache = config.CacheConfig{Enabled: enabled, TTL: ttl}
	return NewInMemoryCache(cfg, logger.NewNoop())
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "budgetpdf:v1:abc", GenerateKey(PrefixBudgetPDF, "abc"))
	assert.Equal(t, "budgetpdf:v1:7:a4", GenerateKey(PrefixBudgetPDF, 7, "a4"))
	assert.Equal(t, "plain:x", GenerateKey("plain", "x"))
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := newCache(true, "1m")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", []byte("pdf"), 0)
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("pdf"), v)

	c.Delete(ctx, "k")
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)
	c.Flush(ctx)
	_, ok = c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := newCache(true, "not-a-duration")

	c.Set(ctx, "short", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := newCache(false, "1m")

	c.Set(ctx, "k", "v", 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestSpansWithoutHub(t *testing.T) {
	span := StartCacheSpan(context.Background(), "get", "k")
	assert.Nil(t, span)
	FinishSpan(span, true)
}

package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheWithoutRedisAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*Cache{nil, NewCache(nil)} {
		c.SetJSON(ctx, "k", []string{"x"}, time.Minute)
		var out []string
		assert.False(t, c.GetJSON(ctx, "k", &out))
		c.InvalidateByPrefix(ctx, "k")
	}
}

func TestTokenRevokerMemoryFallback(t *testing.T) {
	ctx := context.Background()
	r := NewTokenRevoker(nil)

	r.Revoke(ctx, "live", time.Now().Add(time.Hour))
	r.Revoke(ctx, "already-expired", time.Now().Add(-time.Second))

	assert.True(t, r.IsRevoked(ctx, "live"))
	assert.False(t, r.IsRevoked(ctx, "already-expired"))
	assert.False(t, r.IsRevoked(ctx, "never-seen"))
}

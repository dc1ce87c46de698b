package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker remembers logged-out tokens until they would have expired anyway.
// It prefers Redis so every instance sees the revocation and falls back to process memory.
type TokenRevoker struct {
	rc *redis.Client

	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewTokenRevoker builds a revoker; rc may be nil.
func NewTokenRevoker(rc *redis.Client) *TokenRevoker {
	return &TokenRevoker{rc: rc, revoked: map[string]time.Time{}}
}

// Revoke stores token until expiresAt.
func (r *TokenRevoker) Revoke(ctx context.Context, token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if r.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := r.rc.Set(ctx, "jwt:blacklist:"+token, "1", ttl).Err(); err == nil {
			return
		}
	}
	r.mu.Lock()
	r.revoked[token] = expiresAt
	r.mu.Unlock()
}

// IsRevoked reports whether token was revoked and has not expired yet.
func (r *TokenRevoker) IsRevoked(ctx context.Context, token string) bool {
	if r.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		n, err := r.rc.Exists(ctx, "jwt:blacklist:"+token).Result()
		if err == nil && n > 0 {
			return true
		}
		// fail-open on Redis errors; the memory fallback below still applies
	}
	r.mu.RLock()
	expiresAt, ok := r.revoked[token]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		r.mu.Lock()
		delete(r.revoked, token)
		r.mu.Unlock()
		return false
	}
	return true
}

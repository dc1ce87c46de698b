package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, issuer string) *TokenProvider {
	t.Helper()
	key, err := GenerateSigningKey()
	require.NoError(t, err)
	return NewTokenProvider(key, issuer, time.Hour)
}

func TestTokenProviderRoundTrip(t *testing.T) {
	p := newTestProvider(t, "conduit")

	token, err := p.Issue("user-1")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "conduit", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokenProviderRejectsForeignKey(t *testing.T) {
	issuer := newTestProvider(t, "conduit")
	other := newTestProvider(t, "conduit")

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenProviderRejectsWrongIssuer(t *testing.T) {
	p := newTestProvider(t, "someone-else")
	token, err := p.Issue("user-1")
	require.NoError(t, err)

	verifier := NewTokenProvider(p.key, "conduit", time.Hour)
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenProviderRejectsExpired(t *testing.T) {
	p := newTestProvider(t, "conduit")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := p.Issue("user-1")
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestTokenProviderRejectsGarbage(t *testing.T) {
	p := newTestProvider(t, "conduit")
	_, err := p.Verify("not-a-token")
	assert.Error(t, err)
}

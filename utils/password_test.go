package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}

	salt, err := h.NewSalt()
	require.NoError(t, err)
	assert.Len(t, salt, 32)

	digest, err := h.Hash("s3cret", salt)
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	assert.True(t, h.Verify("s3cret", digest, salt))
	assert.False(t, h.Verify("wrong", digest, salt))

	otherSalt, err := h.NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, otherSalt)
	assert.False(t, h.Verify("s3cret", digest, otherSalt))
}

func TestPasswordHasherIsDeterministicPerSalt(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}
	salt, err := h.NewSalt()
	require.NoError(t, err)

	a, err := h.Hash("pw", salt)
	require.NoError(t, err)
	b, err := h.Hash("pw", salt)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPasswordHasherRejectsBadSalt(t *testing.T) {
	h := &PasswordHasher{Iterations: 1000}
	_, err := h.Hash("pw", "not-hex")
	assert.Error(t, err)
	assert.False(t, h.Verify("pw", "whatever", "not-hex"))
}

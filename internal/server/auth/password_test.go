package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := h.Compare("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("battery staple", hash)
	require.NoError(t, err, "mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptHasher_FreshSaltPerHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Compare("pw", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_Cost(t *testing.T) {
	hash, err := NewBcryptHasher(DefaultBcryptCost).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

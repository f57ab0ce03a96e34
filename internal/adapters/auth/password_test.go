package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // low cost for test speed

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := h.Hash(salt, "s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, h.Compare(hash, salt, "s3cret-password"))
	assert.Error(t, h.Compare(hash, salt, "wrong-password"))
	assert.Error(t, h.Compare(hash, "wrong-salt", "s3cret-password"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	h := NewBcryptHasher(4)
	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, b.ComparePassword(hash, "secret123"))
	assert.Error(t, b.ComparePassword(hash, "wrong-password"))
}

func TestHashPassword_Salted(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	first, err := b.HashPassword("secret123")
	require.NoError(t, err)

	second, err := b.HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

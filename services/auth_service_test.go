package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	as := &AuthService{}

	hash, err := as.HashPassword("correct horse battery staple", DefaultParams)
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$")

	valid, err := as.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = as.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	as := &AuthService{}

	first, err := as.HashPassword("same password", DefaultParams)
	require.NoError(t, err)
	second, err := as.HashPassword("same password", DefaultParams)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	as := &AuthService{}

	_, err := as.VerifyPassword("whatever", "not-a-hash")
	assert.Error(t, err)
}

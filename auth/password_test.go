package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("segredo123")
	require.NoError(t, err)

	assert.NotEqual(t, "segredo123", hashed)
	assert.Len(t, hashed, 60)
	assert.True(t, CheckPassword("segredo123", hashed))
	assert.False(t, CheckPassword("outra", hashed))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("mesma")
	require.NoError(t, err)
	b, err := HashPassword("mesma")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", hash)

	require.True(t, VerifyPassword(hash, "correct-horse"))
	require.False(t, VerifyPassword(hash, "wrong-pass"))
	require.False(t, VerifyPassword("not-a-hash", "correct-horse"))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHashCostFallback(t *testing.T) {
	hash, err := HashPasswordWithCost("correct-horse", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultBcryptCost, cost)
}

func TestGenerateSecret(t *testing.T) {
	first, err := GenerateSecret(32)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := GenerateSecret(32)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

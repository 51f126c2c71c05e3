package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.NoError(t, CheckPassword(hash, "hunter2hunter2"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestGenerateToken(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(raw, "sk_"))
	assert.Len(t, hash, 64) // hex sha256
	assert.Equal(t, hash, HashToken(raw))

	raw2, hash2, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}

func TestHashTokenDeterministic(t *testing.T) {
	assert.Equal(t, HashToken("sk_abc"), HashToken("sk_abc"))
	assert.NotEqual(t, HashToken("sk_abc"), HashToken("sk_abd"))
}

package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		again, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, again, "tokens should be unique")
	}
}

func TestGenerateTokenInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := GenerateToken(size)
		require.Error(t, err)
	}
}

func TestFingerprintToken(t *testing.T) {
	token, err := GenerateToken(TokenSize256)
	require.NoError(t, err)

	fp := FingerprintToken(token)
	require.NotEqual(t, token, fp)
	require.Equal(t, fp, FingerprintToken(token), "fingerprint must be deterministic")
	require.Len(t, fp, 43, "base64url SHA-256 without padding")
}

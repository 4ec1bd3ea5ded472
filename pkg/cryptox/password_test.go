package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.NotContains(t, hash, "pw123456")

	require.NoError(t, VerifyPassword("pw123456", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b, "each hash must use a fresh salt")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!$aGFzaA",
	} {
		err := VerifyPassword("pw", h)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrPasswordMismatch)
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43)

	other, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = GenerateToken(0)
	require.Error(t, err)
}

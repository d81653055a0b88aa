package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)

	ok, err := VerifyPassword("password2", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plainly not a hash",
		"$argon2id$v=19$m=65536,t=1,p=4$onlyonesegment",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=what,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
	}

	for _, encoded := range cases {
		_, err := VerifyPassword("anything", encoded)
		require.ErrorIs(t, err, ErrMalformedHash, "hash: %q", encoded)
	}
}

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", digest)

	require.True(t, hasher.Verify("correct horse battery", digest))
	require.False(t, hasher.Verify("wrong password", digest))
}

func TestPasswordHashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, hasher.Verify("secret123", first))
	require.True(t, hasher.Verify("secret123", second))
}

func TestPasswordVerifyMalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher()
	require.False(t, hasher.Verify("secret123", "not-a-bcrypt-digest"))
	require.False(t, hasher.Verify("secret123", ""))
}

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecretRoundTrip(t *testing.T) {
	hash, err := HashSecret("Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd!", hash)

	require.True(t, CheckSecret("Passw0rd!", hash))
	require.False(t, CheckSecret("passw0rd!", hash))
	require.False(t, CheckSecret("", hash))
}

func TestCheckSecretMalformedHash(t *testing.T) {
	require.False(t, CheckSecret("anything", "not-a-bcrypt-hash"))
	require.False(t, CheckSecret("anything", ""))
}

func TestHashSecretSalted(t *testing.T) {
	first, err := HashSecret("same-password")
	require.NoError(t, err)
	second, err := HashSecret("same-password")
	require.NoError(t, err)

	// Different salts, different hashes, both verify.
	require.NotEqual(t, first, second)
	require.True(t, CheckSecret("same-password", first))
	require.True(t, CheckSecret("same-password", second))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := h.Hash(salt, "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, h.Compare(hash, salt, "correct horse battery staple"))
	require.Error(t, h.Compare(hash, salt, "wrong password"))
	require.Error(t, h.Compare(hash, "other-salt", "correct horse battery staple"))
}

func TestBcryptHasher_SaltsDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")

	raw, err := SignAccessToken(42, "admin", secret)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Parse(raw, secret)
	require.NoError(t, err)

	userID, role, err := Identity(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "admin", role)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	raw, err := SignAccessToken(1, "user", []byte("right"))
	require.NoError(t, err)

	_, err = Parse(raw, []byte("wrong"))
	require.Error(t, err)
}

func TestRefreshTokenHasType(t *testing.T) {
	t.Parallel()

	secret := []byte("refresh-secret")
	raw, err := SignRefreshToken(7, "user", secret)
	require.NoError(t, err)

	claims, err := Parse(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["typ"])
}

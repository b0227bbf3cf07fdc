package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY", "1h")

	util := NewJWTUtil()

	token, err := util.GenerateToken("user-1", "driver@fleetops.local", "driver", "org-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "driver@fleetops.local", claims.Email)
	assert.Equal(t, "driver", claims.Role)
	assert.Equal(t, "org-1", claims.OrganisationID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := NewJWTUtil().GenerateToken("user-1", "a@b.c", "manager", "org-1")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = NewJWTUtil().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := NewJWTUtil().ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshToken_KeepsFreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY", "24h")

	util := NewJWTUtil()
	token, err := util.GenerateToken("user-1", "a@b.c", "owner", "org-1")
	require.NoError(t, err)

	// A token with more than an hour left comes back unchanged.
	refreshed, err := util.RefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, token, refreshed)
}

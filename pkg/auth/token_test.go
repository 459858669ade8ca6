package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_MintParse(t *testing.T) {
	m, err := NewTokenManager("secret", "smc-salon", time.Hour)
	require.NoError(t, err)

	tenantID := "t1"
	token, expiresAt, err := m.Mint(time.Now(), "u1", "owner", &tenantID)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "owner", claims.Role)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, "t1", *claims.TenantID)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m, err := NewTokenManager("secret", "smc-salon", time.Minute)
	require.NoError(t, err)

	token, _, err := m.Mint(time.Now().Add(-time.Hour), "u1", "customer", nil)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", "smc-salon", time.Hour)
	verifier, _ := NewTokenManager("secret-b", "smc-salon", time.Hour)

	token, _, err := issuer.Mint(time.Now(), "u1", "customer", nil)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_InvalidConfig(t *testing.T) {
	_, err := NewTokenManager("", "smc-salon", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "diamondlab",
		ExpirationMinutes: 60,
	}
}

func TestTokenManager_MintAndParse(t *testing.T) {
	mgr := NewTokenManager(testJWTConfig())
	adminID := uuid.New()

	raw, err := mgr.Mint(adminID, "admin@example.com", true)
	require.NoError(t, err)

	claims, err := mgr.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "diamondlab", claims.Issuer)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	mgr := NewTokenManager(testJWTConfig())
	raw, err := mgr.Mint(uuid.New(), "admin@example.com", true)
	require.NoError(t, err)

	other := NewTokenManager(config.JWTConfig{Secret: "different", Issuer: "diamondlab", ExpirationMinutes: 60})
	_, err = other.Parse(raw)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongIssuer(t *testing.T) {
	foreign := NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else", ExpirationMinutes: 60})
	raw, err := foreign.Mint(uuid.New(), "admin@example.com", true)
	require.NoError(t, err)

	mgr := NewTokenManager(testJWTConfig())
	_, err = mgr.Parse(raw)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	mgr := NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "diamondlab", ExpirationMinutes: -1})
	raw, err := mgr.Mint(uuid.New(), "admin@example.com", true)
	require.NoError(t, err)

	_, err = mgr.Parse(raw)
	assert.Error(t, err)
}

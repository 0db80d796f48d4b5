package auth

import (
	"testing"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/cfg"
	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundtrip(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, hasher.Verify("s3cret", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}

func TestJWTManagerRoundtrip(t *testing.T) {
	manager := NewJWTManager(&cfg.AuthCfg{
		Secret:   "test-secret",
		Issuer:   "catalog-backend",
		TokenTTL: time.Hour,
	})

	token, err := manager.Generate(&domain.Admin{ID: 7, Username: "admin"})
	require.NoError(t, err)

	adminID, ttl, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), adminID)
	assert.Greater(t, ttl, 55*time.Minute)
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager(&cfg.AuthCfg{Secret: "secret-a", TokenTTL: time.Hour})
	verifier := NewJWTManager(&cfg.AuthCfg{Secret: "secret-b", TokenTTL: time.Hour})

	token, err := issuer.Generate(&domain.Admin{ID: 1})
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager(&cfg.AuthCfg{Secret: "test-secret", TokenTTL: -time.Minute})

	token, err := manager.Generate(&domain.Admin{ID: 1})
	require.NoError(t, err)

	_, _, err = manager.Verify(token)
	require.Error(t, err)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(&cfg.AuthCfg{Secret: "test-secret", TokenTTL: time.Hour})

	_, _, err := manager.Verify("not-a-token")
	require.Error(t, err)
}

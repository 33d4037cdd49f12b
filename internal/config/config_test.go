package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.Server.Addr)
	assert.Equal(t, "data/auth.db", cfg.Database.Path)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTH_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("AUTH_AUTH_JWTSECRET", "supersecret")
	t.Setenv("AUTH_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.True(t, cfg.IsProduction())
}

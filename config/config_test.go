package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTokenConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_AUDIENCE", "")
	t.Setenv("ACCESS_TOKEN_LIFETIME_IN_SECONDS", "")
	t.Setenv("REFRESH_TOKEN_LIFETIME_IN_DAYS", "")

	cfg := LoadTokenConfig()
	assert.Equal(t, "k", cfg.Key)
	assert.Equal(t, "TodoApi", cfg.Issuer)
	assert.Equal(t, "TodoApi", cfg.Audience)
	assert.Equal(t, 3600*time.Second, cfg.AccessTokenLifetime)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenLifetime)
}

func TestLoadTokenConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("JWT_ISSUER", "MyIssuer")
	t.Setenv("JWT_AUDIENCE", "MyAudience")
	t.Setenv("ACCESS_TOKEN_LIFETIME_IN_SECONDS", "120")
	t.Setenv("REFRESH_TOKEN_LIFETIME_IN_DAYS", "14")

	cfg := LoadTokenConfig()
	assert.Equal(t, "secret", cfg.Key)
	assert.Equal(t, "MyIssuer", cfg.Issuer)
	assert.Equal(t, "MyAudience", cfg.Audience)
	assert.Equal(t, 120*time.Second, cfg.AccessTokenLifetime)
	assert.Equal(t, 14*24*time.Hour, cfg.RefreshTokenLifetime)
}

func TestLoadTokenConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("ACCESS_TOKEN_LIFETIME_IN_SECONDS", "nope")
	t.Setenv("REFRESH_TOKEN_LIFETIME_IN_DAYS", "-3")

	cfg := LoadTokenConfig()
	assert.Equal(t, 3600*time.Second, cfg.AccessTokenLifetime)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenLifetime)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , https://b.example.com ,")

	cfg := Load()
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "ALLOWED_ORIGINS", "TRUST_PROXY",
		"KEEPALIVE_INTERVAL", "NAME_STRATEGY", "REDIS_HOST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 30*time.Second, cfg.KeepaliveInterval)
	assert.Equal(t, "deterministic", cfg.NameStrategy)
	assert.False(t, cfg.Redis.Enabled)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("KEEPALIVE_INTERVAL", "10s")
	t.Setenv("ALLOWED_ORIGINS", "https://drop.example.com")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("NAME_STRATEGY", "random")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 10*time.Second, cfg.KeepaliveInterval)
	assert.Equal(t, []string{"https://drop.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "random", cfg.NameStrategy)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TRUST_PROXY", "definitely")
	t.Setenv("KEEPALIVE_INTERVAL", "-5s")

	cfg := Load()

	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 30*time.Second, cfg.KeepaliveInterval)
}

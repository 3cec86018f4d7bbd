package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "")
	t.Setenv("CHAT_HISTORY_LIMIT", "")

	cfg := LoadConfig()

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, DefaultHistoryLimit, cfg.ChatHistoryLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("BCRYPT_COST", "4")

	cfg := LoadConfig()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiration)
	assert.True(t, cfg.Production)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestValidate(t *testing.T) {
	base := Config{
		JWTSecret:        "x",
		StoreBackend:     "mongo",
		StorageBackend:   "local",
		ChatHistoryLimit: 50,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"bad store", func(c *Config) { c.StoreBackend = "redis" }, true},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = "s3" }, true},
		{"s3 with bucket", func(c *Config) { c.StorageBackend = "s3"; c.S3Bucket = "covers" }, false},
		{"bad storage", func(c *Config) { c.StorageBackend = "ftp" }, true},
		{"zero history", func(c *Config) { c.ChatHistoryLimit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

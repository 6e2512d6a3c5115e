package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "foodgram.db", cfg.SQLitePath)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "supersecret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "supersecret", cfg.JWTSecret)
}

func TestValidateConfigPostgres(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg := &Config{
		DBDriver: "postgres",
		DBHost:   "localhost",
		DBUser:   "foodgram",
		DBName:   "foodgram",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	cfg.DBPassword = "hunter2"
	cfg.JWTSecret = "supersecret"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfigUnknownDriver(t *testing.T) {
	t.Setenv("ENV", "test")

	err := ValidateConfig(&Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

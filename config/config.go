package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. Empty RedisAddr disables redis-backed features
	// (token revocation, rate limiting).
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Image storage: S3 when a bucket is set, local MediaDir otherwise
	S3Bucket string
	MediaDir string
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		// A missing .env is fine, plain env vars still apply.
		_ = godotenv.Load()
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		redisDB = n
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8000"),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "foodgram"),
		DBName:        getEnv("DB_NAME", "foodgram"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "foodgram.db"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       redisDB,
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		MediaDir:      getEnv("MEDIA_DIR", "media"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	// In production sensitive values come from Docker secrets, not env vars.
	if env == Production {
		cfg.DBPassword = readSecret("db_password")
		cfg.RedisPassword = readSecret("redis_password")
		cfg.JWTSecret = readSecret("jwt_secret")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or the fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

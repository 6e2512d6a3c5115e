package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. Postgres deployments need full connection credentials; the
// sqlite driver only needs a file path. The JWT secret is always required
// outside of tests.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			errors = append(errors, "DB_HOST is required for the postgres driver")
		}
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required for the postgres driver")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required for the postgres driver")
		}
		if cfg.DBPassword == "" && !IsTest() {
			errors = append(errors, "database password is not set (DB_PASSWORD or db_password secret)")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required for the sqlite driver")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown DB_DRIVER %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" && !IsTest() {
		errors = append(errors, "JWT secret is not set (JWT_SECRET or jwt_secret secret)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

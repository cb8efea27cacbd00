package config

import (
	"fmt"
	"strconv"
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

// ValidateConfig checks that the loaded configuration is usable for the
// current environment.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	} else if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("server port %q is not a number", cfg.ServerPort))
	}

	if cfg.DBHost == "" {
		errors = append(errors, "database host is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is required")
	}
	if cfg.DBUser == "" {
		errors = append(errors, "database user is required")
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required")
	}
	// Refuse the development fallback secret outside development
	if IsProduction() && cfg.JWTSecret == "your-secret-key" {
		errors = append(errors, "jwt_secret secret is required in production")
	}
	if IsProduction() && cfg.DBPassword == "" {
		errors = append(errors, "db_password secret is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

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

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Development and test fall back to defaults, so only
// the fields with no sane default are checked there.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	required := map[string]string{
		"server port": cfg.ServerPort,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db name":     cfg.DBName,
		"jwt secret":  cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	// Sensitive values never have defaults outside development
	if env == Production || env == CI {
		if cfg.DBPassword == "" {
			errors = append(errors, "db password is required")
		}
		if cfg.DBSSLMode == "" {
			errors = append(errors, "db ssl mode is required")
		}
		if cfg.RedisHost == "" && cfg.RedisURL == "" {
			errors = append(errors, "redis host or redis url is required")
		}
	}
	if env == Production && cfg.JWTSecret == "dev-only-secret" {
		errors = append(errors, "jwt secret must not be the development default")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

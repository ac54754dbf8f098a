// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// Validate performs comprehensive validation of configuration values.
func (c *Config) Validate() error {
	var validationErrors []string

	// Validate numeric ranges
	if c.Database.MaxConnections < 0 {
		validationErrors = append(validationErrors, "database.max_connections must be non-negative")
	}
	if c.Database.MaxIdleTime < 0 {
		validationErrors = append(validationErrors, "database.max_idle_time must be non-negative")
	}
	if c.Database.QueryTimeout < 0 {
		validationErrors = append(validationErrors, "database.query_timeout must be non-negative")
	}

	// Validate the default decision
	switch c.Permissions.DefaultDecision {
	case "ask", "allow", "block":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("permissions.default_decision must be one of: ask, allow, block (got: %s)", c.Permissions.DefaultDecision))
	}

	if c.Permissions.SaveDelay < 0 {
		validationErrors = append(validationErrors, "permissions.save_delay must be non-negative")
	}

	if c.Notifications.MaxBodyLength < 0 {
		validationErrors = append(validationErrors, "notifications.max_body_length must be non-negative")
	}

	// Validate logging values
	switch c.Logging.Format {
	case "", "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be 'console' or 'json' (got: %s)", c.Logging.Format))
	}

	// If there are validation errors, return them
	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

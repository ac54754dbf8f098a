// Package config provides default configuration values for siteperm.
package config

import (
	"time"
)

// Default configuration constants
const (
	// Database defaults
	defaultMaxIdleTimeMin  = 5  // minutes
	defaultQueryTimeoutSec = 30 // seconds

	// Permission defaults
	defaultSaveDelayMs = 500 // milliseconds

	// Notification defaults
	defaultMaxBodyLength = 256 // runes
)

// DefaultConfig returns the default configuration values for siteperm.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxConnections: 1,
			MaxIdleTime:    time.Minute * defaultMaxIdleTimeMin,
			QueryTimeout:   time.Second * defaultQueryTimeoutSec,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // console or json
		},
		Permissions: PermissionsConfig{
			DefaultDecision: "ask",
			SaveDelay:       time.Millisecond * defaultSaveDelayMs,
			Labels:          map[string]string{},
		},
		Notifications: NotificationsConfig{
			MaxBodyLength: defaultMaxBodyLength,
		},
	}
}

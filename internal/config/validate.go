package config

import (
	"errors"
	"fmt"
	"slices"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks cross-field constraints that tag-level validation cannot
// express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns %d exceeds max_conns %d",
			c.Database.MinConns, c.Database.MaxConns))
	}

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 bytes"))
	}

	if c.Catalog.TransferWindowDays < 0 {
		errs = append(errs, fmt.Errorf("catalog.transfer_window_days %d is negative",
			c.Catalog.TransferWindowDays))
	}

	if c.Cache.Size <= 0 {
		errs = append(errs, fmt.Errorf("cache.size %d must be positive", c.Cache.Size))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl %s must be positive", c.Cache.TTL))
	}

	if !slices.Contains(validLogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of %v", c.Log.Level, validLogLevels))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format %q must be json or text", c.Log.Format))
	}

	return errors.Join(errs...)
}

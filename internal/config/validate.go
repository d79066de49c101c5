package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.SnapshotPath == "" {
		return errors.New("paths.snapshot_path must be set")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	columns := map[string]string{
		"import.identifier_column": c.Import.IdentifierColumn,
		"import.status_column":     c.Import.StatusColumn,
	}
	for key, value := range columns {
		if value == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

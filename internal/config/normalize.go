package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeImport()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SnapshotPath) == "" {
		c.Paths.SnapshotPath = defaultSnapshotPath
	}
	if value, ok := os.LookupEnv("BINDERY_SNAPSHOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SnapshotPath = strings.TrimSpace(value)
	}
	if c.Paths.SnapshotPath, err = ExpandPath(c.Paths.SnapshotPath); err != nil {
		return fmt.Errorf("paths.snapshot_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeImport() {
	trim := func(value, fallback string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return fallback
		}
		return value
	}
	c.Import.IdentifierColumn = trim(c.Import.IdentifierColumn, defaultIdentifierColumn)
	c.Import.TitleColumn = trim(c.Import.TitleColumn, defaultTitleColumn)
	c.Import.StatusColumn = trim(c.Import.StatusColumn, defaultStatusColumn)
	c.Import.PublisherColumn = trim(c.Import.PublisherColumn, defaultPublisherColumn)
	c.Import.FormatColumn = trim(c.Import.FormatColumn, defaultFormatColumn)
	c.Import.DefaultPublisher = strings.TrimSpace(c.Import.DefaultPublisher)
}

package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bindery/internal/config"
	"bindery/internal/ledger"
	"bindery/internal/logging"
)

type commandContext struct {
	configFlag   *string
	snapshotFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, snapshotFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		snapshotFlag: snapshotFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.snapshotFlag != nil && strings.TrimSpace(*c.snapshotFlag) != "" {
			expanded, err := config.ExpandPath(strings.TrimSpace(*c.snapshotFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve snapshot path: %w", err)
				return
			}
			cfg.Paths.SnapshotPath = expanded
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// withStore opens the ledger for the duration of one command. The snapshot
// lock is held until fn returns.
func (c *commandContext) withStore(fn func(*ledger.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ledger.Open(cfg, c.logger())
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(store)
}

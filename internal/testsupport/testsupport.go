// Package testsupport provides shared helpers for constructing isolated
// configs and stores in tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"bindery/internal/config"
	"bindery/internal/ledger"
	"bindery/internal/logging"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SnapshotPath = filepath.Join(base, "ledger.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDefaultPublisher sets the import default publisher on the test config.
func WithDefaultPublisher(id string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.DefaultPublisher = id
	}
}

// MustOpenStore opens a ledger store for the config and closes it when the
// test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

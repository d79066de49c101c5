package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"bindery/internal/config"
	"bindery/internal/isbn"
)

const snapshotVersion = "1"

// Store manages blocks and assignment records persisted as a JSON snapshot.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu      sync.RWMutex
	blocks  []Block
	records map[isbn.ISBN]*Record

	now func() time.Time
}

// snapshot is the on-disk document. Records are written sorted by identifier
// so consecutive snapshots diff cleanly.
type snapshot struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Blocks  []Block   `json:"blocks"`
	Records []Record  `json:"records"`
}

// Open initializes a store from the configured snapshot path.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("ledger requires a config")
	}
	return OpenPath(cfg.Paths.SnapshotPath, logger)
}

// OpenPath initializes a store backed by the snapshot file at path. A missing
// file is a normal cold start with empty state; a present but unparseable
// file is a fatal error and is never overwritten.
func OpenPath(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("ledger requires a snapshot path")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure snapshot directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire snapshot lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("snapshot %s is locked by another process", path)
	}

	store := &Store{
		path:    path,
		lock:    lock,
		logger:  logger,
		records: make(map[isbn.ISBN]*Record),
		now:     time.Now,
	}
	if err := store.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the snapshot lock. State is already durable because every
// mutation flushes before returning.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no snapshot found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) == 0 {
		// save never produces an empty file; only outside interference can.
		return fmt.Errorf("parse snapshot %s: file is empty", s.path)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}

	blocks := make([]Block, 0, len(snap.Blocks))
	for _, block := range snap.Blocks {
		if block.RangeEnd < block.RangeStart {
			return fmt.Errorf("parse snapshot %s: block %s has inverted range", s.path, block.ID)
		}
		blocks = append(blocks, block)
	}
	records := make(map[isbn.ISBN]*Record, len(snap.Records))
	for i := range snap.Records {
		rec := snap.Records[i]
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("parse snapshot %s: %w", s.path, err)
		}
		if _, dup := records[rec.Identifier]; dup {
			return fmt.Errorf("parse snapshot %s: duplicate record for %s", s.path, rec.Identifier)
		}
		records[rec.Identifier] = rec.clone()
	}

	s.blocks = blocks
	s.records = records
	s.logger.Debug("snapshot loaded",
		"path", s.path,
		"blocks", len(blocks),
		"records", len(records))
	return nil
}

// save writes the full state to a temporary file and atomically replaces the
// snapshot. Callers hold the write lock and roll back on failure.
func (s *Store) save() error {
	snap := snapshot{
		Version: snapshotVersion,
		SavedAt: s.now().UTC(),
		Blocks:  append([]Block(nil), s.blocks...),
		Records: make([]Record, 0, len(s.records)),
	}
	for _, rec := range s.records {
		snap.Records = append(snap.Records, *rec.clone())
	}
	sort.Slice(snap.Records, func(i, j int) bool {
		return snap.Records[i].Identifier < snap.Records[j].Identifier
	})

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// commit flushes the snapshot and runs rollback when the flush fails so
// memory and disk never diverge.
func (s *Store) commit(rollback func()) error {
	if err := s.save(); err != nil {
		rollback()
		return err
	}
	return nil
}

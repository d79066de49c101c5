package ledger

import (
	"fmt"

	"bindery/internal/isbn"
)

// NextAvailable finds the next unused identifier. Blocks are visited in
// registration order, oldest first, restricted to publisherID when it is
// non-empty; within each block candidate sequences ascend from range start.
// This ordering is a contract: callers and reports may rely on it.
func (s *Store) NextAvailable(publisherID string) (isbn.ISBN, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextAvailableLocked(publisherID)
}

func (s *Store) nextAvailableLocked(publisherID string) (isbn.ISBN, error) {
	for _, block := range s.blocks {
		if publisherID != "" && block.PublisherID != publisherID {
			continue
		}
		for seq := block.RangeStart; seq <= block.RangeEnd; seq++ {
			id, err := isbn.Synthesize(block.Prefix, seq)
			if err != nil {
				// Boundaries were validated at registration, so any failure
				// here means the snapshot was edited by hand.
				return "", fmt.Errorf("synthesize candidate %d in block %s: %w", seq, block.ID, err)
			}
			if _, taken := s.records[id]; !taken {
				return id, nil
			}
		}
	}
	if publisherID != "" {
		return "", fmt.Errorf("%w for publisher %s", ErrExhausted, publisherID)
	}
	return "", ErrExhausted
}

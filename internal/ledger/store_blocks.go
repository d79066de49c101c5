package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bindery/internal/isbn"
)

// AddBlock registers a new immutable block and returns it. Both range
// boundaries must synthesize checksum-valid identifiers under the prefix, and
// the numeric range must not intersect any existing block with the same
// prefix. Registration order is the allocation order.
func (s *Store) AddBlock(prefix, publisherID, imprintCode string, rangeStart, rangeEnd int64) (Block, error) {
	prefix = strings.TrimSpace(prefix)
	publisherID = strings.TrimSpace(publisherID)
	imprintCode = strings.TrimSpace(imprintCode)

	if rangeEnd < rangeStart {
		return Block{}, fmt.Errorf("%w: range end %d precedes start %d", isbn.ErrInvalid, rangeEnd, rangeStart)
	}
	if _, err := isbn.Synthesize(prefix, rangeStart); err != nil {
		return Block{}, err
	}
	if _, err := isbn.Synthesize(prefix, rangeEnd); err != nil {
		return Block{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.blocks {
		if existing.Prefix != prefix {
			continue
		}
		if rangeStart <= existing.RangeEnd && rangeEnd >= existing.RangeStart {
			return Block{}, fmt.Errorf("%w: range %d-%d intersects block %s (%d-%d) under prefix %s",
				ErrBlockOverlap, rangeStart, rangeEnd, existing.ID, existing.RangeStart, existing.RangeEnd, prefix)
		}
	}

	block := Block{
		ID:          uuid.New().String(),
		Prefix:      prefix,
		PublisherID: publisherID,
		ImprintCode: imprintCode,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
	}
	s.blocks = append(s.blocks, block)
	if err := s.commit(func() { s.blocks = s.blocks[:len(s.blocks)-1] }); err != nil {
		return Block{}, err
	}

	s.logger.Info("block registered",
		"block_id", block.ID,
		"prefix", block.Prefix,
		"publisher", block.PublisherID,
		"capacity", block.Capacity())
	return block, nil
}

// Blocks returns the registered blocks in registration order.
func (s *Store) Blocks() []Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Block(nil), s.blocks...)
}

// TotalCapacity sums the capacity of every registered block.
func (s *Store) TotalCapacity() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, block := range s.blocks {
		total += block.Capacity()
	}
	return total
}

// blockFor returns the first registered block covering the identifier.
// Callers hold at least the read lock.
func (s *Store) blockFor(id isbn.ISBN) (Block, bool) {
	for _, block := range s.blocks {
		if block.Covers(id) {
			return block, true
		}
	}
	return Block{}, false
}

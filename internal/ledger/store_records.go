package ledger

import (
	"fmt"
	"sort"
	"time"

	"bindery/internal/isbn"
)

// Reserve holds an available or scheduled identifier without a publication
// date. Reserving a scheduled identifier pulls it off the schedule and keeps
// it held.
func (s *Store) Reserve(id isbn.ISBN, notes string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[id]; ok {
		if existing.Status != StatusScheduled {
			return nil, fmt.Errorf("%w: %s is already %s", ErrInvalidTransition, id, existing.Status)
		}
		prior := existing.clone()
		existing.Status = StatusReserved
		existing.Schedule = nil
		existing.Notes = notes
		existing.UpdatedAt = s.now()
		if err := s.commit(func() { s.records[id] = prior }); err != nil {
			return nil, err
		}
		s.logger.Info("identifier reserved", "identifier", id)
		return existing.clone(), nil
	}
	block, ok := s.blockFor(id)
	if !ok {
		return nil, fmt.Errorf("%w: no block covers %s", ErrUnknownIdentifier, id)
	}

	now := s.now()
	rec := &Record{
		Identifier:  id,
		PublisherID: block.PublisherID,
		Notes:       notes,
		Status:      StatusReserved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records[id] = rec
	if err := s.commit(func() { delete(s.records, id) }); err != nil {
		return nil, err
	}
	s.logger.Info("identifier reserved", "identifier", id)
	return rec.clone(), nil
}

// Schedule draws the next available identifier and commits it to a future
// title. Lower priority numbers are more urgent.
func (s *Store) Schedule(bookTitle, bookID string, date time.Time, priority int, publisherID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !date.After(now) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, date.Format("2006-01-02"))
	}
	id, err := s.nextAvailableLocked(publisherID)
	if err != nil {
		return nil, err
	}
	block, _ := s.blockFor(id)

	rec := &Record{
		Identifier:  id,
		PublisherID: block.PublisherID,
		Status:      StatusScheduled,
		Schedule: &Schedule{
			BookTitle:     bookTitle,
			BookID:        bookID,
			ScheduledDate: date,
			Priority:      priority,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.records[id] = rec
	if err := s.commit(func() { delete(s.records, id) }); err != nil {
		return nil, err
	}
	s.logger.Info("identifier scheduled",
		"identifier", id,
		"title", bookTitle,
		"date", date.Format("2006-01-02"),
		"priority", priority)
	return rec.clone(), nil
}

// AssignNow moves an available or scheduled identifier into active use,
// stamping the assignment date. Scheduled records keep their title and book
// reference.
func (s *Store) AssignNow(id isbn.ISBN) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.records[id]; ok {
		if existing.Status != StatusScheduled {
			return nil, fmt.Errorf("%w: %s is already %s", ErrInvalidTransition, id, existing.Status)
		}
		prior := existing.clone()
		existing.Status = StatusAssigned
		existing.Assignment = &Assignment{
			BookTitle:    existing.Schedule.BookTitle,
			BookID:       existing.Schedule.BookID,
			AssignedDate: now,
		}
		existing.Schedule = nil
		existing.UpdatedAt = now
		if err := s.commit(func() { s.records[id] = prior }); err != nil {
			return nil, err
		}
		s.logger.Info("identifier assigned", "identifier", id, "title", existing.Title())
		return existing.clone(), nil
	}

	block, ok := s.blockFor(id)
	if !ok {
		return nil, fmt.Errorf("%w: no block covers %s", ErrUnknownIdentifier, id)
	}
	rec := &Record{
		Identifier:  id,
		PublisherID: block.PublisherID,
		Status:      StatusAssigned,
		Assignment:  &Assignment{AssignedDate: now},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records[id] = rec
	if err := s.commit(func() { delete(s.records, id) }); err != nil {
		return nil, err
	}
	s.logger.Info("identifier assigned", "identifier", id)
	return rec.clone(), nil
}

// MarkPublished promotes an assigned identifier to the terminal published
// status, stamping the publication date.
func (s *Store) MarkPublished(id isbn.ISBN) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		if _, covered := s.blockFor(id); !covered {
			return nil, fmt.Errorf("%w: no block covers %s", ErrUnknownIdentifier, id)
		}
		return nil, fmt.Errorf("%w: %s is available, not assigned", ErrInvalidTransition, id)
	}
	if existing.Status != StatusAssigned {
		return nil, fmt.Errorf("%w: %s is %s, not assigned", ErrInvalidTransition, id, existing.Status)
	}

	now := s.now()
	prior := existing.clone()
	pub := now
	existing.Status = StatusPublished
	existing.Assignment.PublicationDate = &pub
	existing.UpdatedAt = now
	if err := s.commit(func() { s.records[id] = prior }); err != nil {
		return nil, err
	}
	s.logger.Info("identifier published", "identifier", id, "title", existing.Title())
	return existing.clone(), nil
}

// Release returns a reserved or assigned identifier to the available pool by
// deleting its record. Published identifiers are permanent.
func (s *Store) Release(id isbn.ISBN) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		if _, covered := s.blockFor(id); !covered {
			return fmt.Errorf("%w: no block covers %s", ErrUnknownIdentifier, id)
		}
		return fmt.Errorf("%w: %s is already available", ErrInvalidTransition, id)
	}
	switch existing.Status {
	case StatusReserved, StatusAssigned:
	default:
		return fmt.Errorf("%w: cannot release %s identifier %s", ErrInvalidTransition, existing.Status, id)
	}

	delete(s.records, id)
	if err := s.commit(func() { s.records[id] = existing }); err != nil {
		return err
	}
	s.logger.Info("identifier released", "identifier", id)
	return nil
}

// MetadataUpdate mutates non-status fields of an existing record. Nil fields
// are left untouched.
type MetadataUpdate struct {
	BookTitle *string
	Notes     *string
}

// UpdateMetadata edits title and notes without changing status.
func (s *Store) UpdateMetadata(id isbn.ISBN, update MetadataUpdate) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: no record for %s", ErrUnknownIdentifier, id)
	}

	prior := existing.clone()
	if update.BookTitle != nil {
		switch {
		case existing.Schedule != nil:
			existing.Schedule.BookTitle = *update.BookTitle
		case existing.Assignment != nil:
			existing.Assignment.BookTitle = *update.BookTitle
		}
	}
	if update.Notes != nil {
		existing.Notes = *update.Notes
	}
	existing.UpdatedAt = s.now()
	if err := s.commit(func() { s.records[id] = prior }); err != nil {
		return nil, err
	}
	return existing.clone(), nil
}

// StatusOf reports the identifier's current status. Identifiers covered by a
// block but not recorded are implicitly available; identifiers outside every
// block with no record are unknown.
func (s *Store) StatusOf(id isbn.ISBN) (Status, *Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.records[id]; ok {
		return rec.Status, rec.clone(), nil
	}
	if _, ok := s.blockFor(id); ok {
		return StatusAvailable, nil, nil
	}
	return "", nil, fmt.Errorf("%w: no block covers %s", ErrUnknownIdentifier, id)
}

// Records returns copies of every stored record ordered by identifier.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

// Seed folds externally assigned records into the store in one flush, used by
// bulk imports. Records whose identifier is already tracked are returned as
// skipped rather than overwritten. The whole batch commits with a single
// snapshot write.
func (s *Store) Seed(recs []Record) (added int, skipped []isbn.ISBN, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted []isbn.ISBN
	for i := range recs {
		rec := recs[i]
		if err := rec.Validate(); err != nil {
			s.rollbackSeed(inserted)
			return 0, nil, err
		}
		if _, exists := s.records[rec.Identifier]; exists {
			skipped = append(skipped, rec.Identifier)
			continue
		}
		s.records[rec.Identifier] = rec.clone()
		inserted = append(inserted, rec.Identifier)
	}
	if len(inserted) == 0 {
		return 0, skipped, nil
	}
	if err := s.commit(func() { s.rollbackSeed(inserted) }); err != nil {
		return 0, nil, err
	}
	s.logger.Info("records seeded", "added", len(inserted), "skipped", len(skipped))
	return len(inserted), skipped, nil
}

func (s *Store) rollbackSeed(inserted []isbn.ISBN) {
	for _, id := range inserted {
		delete(s.records, id)
	}
}

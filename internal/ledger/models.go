package ledger

import (
	"fmt"
	"strings"
	"time"

	"bindery/internal/isbn"
)

// Status represents the lifecycle of a tracked identifier.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusScheduled Status = "scheduled"
	StatusAssigned  Status = "assigned"
	StatusPublished Status = "published"
)

var allStatuses = []Status{
	StatusAvailable,
	StatusReserved,
	StatusScheduled,
	StatusAssigned,
	StatusPublished,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := statusSet[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// Block is an immutable contiguous numeric range of identifiers under one
// registration prefix. Blocks are created once and never mutated.
type Block struct {
	ID          string `json:"id"`
	Prefix      string `json:"prefix"`
	PublisherID string `json:"publisher_id"`
	ImprintCode string `json:"imprint_code,omitempty"`
	RangeStart  int64  `json:"range_start"`
	RangeEnd    int64  `json:"range_end"`
}

// Capacity returns the number of identifiers the block can issue.
func (b Block) Capacity() int64 {
	return b.RangeEnd - b.RangeStart + 1
}

// Covers reports whether the identifier falls inside the block's range.
func (b Block) Covers(id isbn.ISBN) bool {
	seq, ok := id.Sequence(b.Prefix)
	if !ok {
		return false
	}
	return seq >= b.RangeStart && seq <= b.RangeEnd
}

// Schedule is the payload of a StatusScheduled record: the identifier is
// committed to a future title but not yet drawn into active use.
type Schedule struct {
	BookTitle     string    `json:"book_title"`
	BookID        string    `json:"book_id,omitempty"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Priority      int       `json:"priority"`
}

// Assignment is the payload of StatusAssigned and StatusPublished records.
// PublicationDate is set only once the record reaches StatusPublished.
type Assignment struct {
	BookTitle       string     `json:"book_title,omitempty"`
	BookID          string     `json:"book_id,omitempty"`
	AssignedDate    time.Time  `json:"assigned_date"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

// Record tracks one identifier's current status and status-specific payload.
// Identifiers without a record are implicitly available when a block covers
// them.
type Record struct {
	Identifier  isbn.ISBN   `json:"identifier"`
	PublisherID string      `json:"publisher_id,omitempty"`
	Format      string      `json:"format,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Status      Status      `json:"status"`
	Schedule    *Schedule   `json:"schedule,omitempty"`
	Assignment  *Assignment `json:"assignment,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Title returns the book title carried by the record's payload, if any.
func (r Record) Title() string {
	switch {
	case r.Schedule != nil:
		return r.Schedule.BookTitle
	case r.Assignment != nil:
		return r.Assignment.BookTitle
	default:
		return ""
	}
}

// Validate checks the status/payload pairing. Stored records always carry a
// non-available status with exactly the payload that status requires.
func (r Record) Validate() error {
	if _, err := isbn.Parse(string(r.Identifier)); err != nil {
		return err
	}
	switch r.Status {
	case StatusReserved:
		if r.Schedule != nil || r.Assignment != nil {
			return fmt.Errorf("reserved record %s carries a stray payload", r.Identifier)
		}
	case StatusScheduled:
		if r.Schedule == nil {
			return fmt.Errorf("scheduled record %s lacks a schedule", r.Identifier)
		}
		if r.Assignment != nil {
			return fmt.Errorf("scheduled record %s carries an assignment", r.Identifier)
		}
	case StatusAssigned:
		if r.Assignment == nil {
			return fmt.Errorf("assigned record %s lacks an assignment", r.Identifier)
		}
		if r.Schedule != nil {
			return fmt.Errorf("assigned record %s carries a schedule", r.Identifier)
		}
		if r.Assignment.PublicationDate != nil {
			return fmt.Errorf("assigned record %s carries a publication date", r.Identifier)
		}
	case StatusPublished:
		if r.Assignment == nil || r.Assignment.PublicationDate == nil {
			return fmt.Errorf("published record %s lacks a publication date", r.Identifier)
		}
		if r.Schedule != nil {
			return fmt.Errorf("published record %s carries a schedule", r.Identifier)
		}
	case StatusAvailable:
		return fmt.Errorf("record %s stored with implicit status %q", r.Identifier, r.Status)
	default:
		return fmt.Errorf("record %s has unknown status %q", r.Identifier, r.Status)
	}
	return nil
}

func (r *Record) clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Schedule != nil {
		sched := *r.Schedule
		cp.Schedule = &sched
	}
	if r.Assignment != nil {
		assign := *r.Assignment
		if r.Assignment.PublicationDate != nil {
			pub := *r.Assignment.PublicationDate
			assign.PublicationDate = &pub
		}
		cp.Assignment = &assign
	}
	return &cp
}

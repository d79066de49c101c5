package planner

import (
	"sort"
	"time"

	"bindery/internal/ledger"
)

// Upcoming returns scheduled records whose date falls within withinDays from
// now, ordered by scheduled date ascending with ties broken by priority
// ascending (lower number = more urgent).
func Upcoming(store *ledger.Store, withinDays int) []ledger.Record {
	now := time.Now()
	cutoff := now.AddDate(0, 0, withinDays)

	var entries []ledger.Record
	for _, rec := range store.Records() {
		if rec.Status != ledger.StatusScheduled || rec.Schedule == nil {
			continue
		}
		date := rec.Schedule.ScheduledDate
		if date.Before(now) || date.After(cutoff) {
			continue
		}
		entries = append(entries, rec)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di := dayOf(entries[i].Schedule.ScheduledDate)
		dj := dayOf(entries[j].Schedule.ScheduledDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return entries[i].Schedule.Priority < entries[j].Schedule.Priority
	})
	return entries
}

// dayOf strips the time of day. Schedule dates are calendar dates, so two
// entries on the same day must tie and fall through to priority.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Report aggregates capacity and lifecycle statistics across the whole store.
type Report struct {
	TotalBlocks          int                   `json:"total_blocks"`
	TotalIdentifiers     int64                 `json:"total_identifiers"`
	UsedIdentifiers      int64                 `json:"used_identifiers"`
	AvailableIdentifiers int64                 `json:"available_identifiers"`
	ByStatus             map[ledger.Status]int `json:"by_status"`
	ByPublisher          map[string]int        `json:"by_publisher"`
	ByFormat             map[string]int        `json:"by_format"`
}

// Availability computes the current capacity report in one pass over blocks
// and records; registered ranges are never rescanned.
func Availability(store *ledger.Store) Report {
	blocks := store.Blocks()
	records := store.Records()

	report := Report{
		TotalBlocks: len(blocks),
		ByStatus:    make(map[ledger.Status]int),
		ByPublisher: make(map[string]int),
		ByFormat:    make(map[string]int),
	}
	for _, block := range blocks {
		report.TotalIdentifiers += block.Capacity()
	}
	for _, rec := range records {
		report.ByStatus[rec.Status]++
		if rec.PublisherID != "" {
			report.ByPublisher[rec.PublisherID]++
		}
		if rec.Format != "" {
			report.ByFormat[rec.Format]++
		}
	}
	report.UsedIdentifiers = int64(len(records))
	report.AvailableIdentifiers = report.TotalIdentifiers - report.UsedIdentifiers
	return report
}

package registrar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bindery/internal/config"
	"bindery/internal/isbn"
	"bindery/internal/ledger"
)

// statusLabels is the exhaustive mapping from registrar export labels to
// ledger statuses. "Privately assigned" means claimed but unpublished;
// "publicly assigned" means in print.
var statusLabels = map[string]ledger.Status{
	"available":          ledger.StatusAvailable,
	"privately assigned": ledger.StatusAssigned,
	"publicly assigned":  ledger.StatusPublished,
}

// RowError records why a single import row was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result aggregates the outcome of one bulk import.
type Result struct {
	Total     int        `json:"total"`
	Imported  int        `json:"imported"`
	Skipped   int        `json:"skipped"`
	Available int        `json:"available"`
	Assigned  int        `json:"assigned"`
	Published int        `json:"published"`
	Errors    []RowError `json:"errors,omitempty"`
}

// Importer parses registrar CSV exports and seeds the ledger.
type Importer struct {
	store   *ledger.Store
	mapping config.Import
	logger  *slog.Logger
	caser   cases.Caser
	now     func() time.Time
}

// New constructs an importer using the config's column mapping.
func New(store *ledger.Store, cfg *config.Config, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Importer{
		store:   store,
		mapping: cfg.Import,
		logger:  logger,
		caser:   cases.Title(language.English),
		now:     time.Now,
	}
}

type columnIndexes struct {
	identifier int
	title      int
	status     int
	publisher  int
	format     int
}

// Import reads one CSV export and folds its rows into the store. Rows with
// status "available" are counted but create no record; the implicit-available
// model keeps the store minimal. The whole batch commits with a single
// snapshot flush.
func (im *Importer) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read import header: %w", err)
	}
	cols, err := im.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	importTime := im.now()

	type pendingRow struct {
		line   int
		status ledger.Status
	}
	seen := make(map[isbn.ISBN]int)
	pending := make(map[isbn.ISBN]pendingRow)
	var records []ledger.Record

	line := 1
	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Total++
				result.Skipped++
				result.Errors = append(result.Errors, RowError{Line: line, Reason: err.Error()})
				continue
			}
			return nil, fmt.Errorf("read import row: %w", err)
		}
		result.Total++

		id, err := isbn.Parse(field(row, cols.identifier))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		if firstLine, dup := seen[id]; dup {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{
				Line:   line,
				Reason: fmt.Sprintf("duplicate of line %d for %s", firstLine, id),
			})
			continue
		}
		seen[id] = line

		label := strings.ToLower(strings.TrimSpace(field(row, cols.status)))
		status, ok := statusLabels[label]
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{
				Line:   line,
				Reason: fmt.Sprintf("unknown status label %q", field(row, cols.status)),
			})
			continue
		}

		if status == ledger.StatusAvailable {
			result.Available++
			continue
		}

		rec := ledger.Record{
			Identifier:  id,
			PublisherID: im.publisherFor(row, cols),
			Format:      strings.TrimSpace(field(row, cols.format)),
			Status:      status,
			Assignment: &ledger.Assignment{
				BookTitle: strings.TrimSpace(field(row, cols.title)),
				// The export carries no dates; stamp the import time.
				AssignedDate: importTime,
			},
			CreatedAt: importTime,
			UpdatedAt: importTime,
		}
		if status == ledger.StatusPublished {
			pub := importTime
			rec.Assignment.PublicationDate = &pub
		}
		records = append(records, rec)
		pending[id] = pendingRow{line: line, status: status}
	}

	added, skippedExisting, err := im.store.Seed(records)
	if err != nil {
		return nil, err
	}
	result.Imported = added

	skippedSet := make(map[isbn.ISBN]struct{}, len(skippedExisting))
	for _, id := range skippedExisting {
		skippedSet[id] = struct{}{}
		result.Skipped++
		result.Errors = append(result.Errors, RowError{
			Line:   pending[id].line,
			Reason: fmt.Sprintf("%s is already tracked", id),
		})
	}
	for id, row := range pending {
		if _, skipped := skippedSet[id]; skipped {
			continue
		}
		switch row.status {
		case ledger.StatusAssigned:
			result.Assigned++
		case ledger.StatusPublished:
			result.Published++
		}
	}

	im.logger.Info("import complete",
		"total", result.Total,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"available", result.Available,
		"assigned", result.Assigned,
		"published", result.Published)
	return result, nil
}

func (im *Importer) resolveColumns(header []string) (columnIndexes, error) {
	find := func(name string) int {
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i
			}
		}
		return -1
	}
	cols := columnIndexes{
		identifier: find(im.mapping.IdentifierColumn),
		title:      find(im.mapping.TitleColumn),
		status:     find(im.mapping.StatusColumn),
		publisher:  find(im.mapping.PublisherColumn),
		format:     find(im.mapping.FormatColumn),
	}
	if cols.identifier < 0 {
		return cols, fmt.Errorf("import header lacks identifier column %q", im.mapping.IdentifierColumn)
	}
	if cols.status < 0 {
		return cols, fmt.Errorf("import header lacks status column %q", im.mapping.StatusColumn)
	}
	return cols, nil
}

func (im *Importer) publisherFor(row []string, cols columnIndexes) string {
	publisher := strings.TrimSpace(field(row, cols.publisher))
	if publisher == "" {
		return im.mapping.DefaultPublisher
	}
	// Normalize display casing so one publisher does not split into several
	// report buckets.
	return im.caser.String(publisher)
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

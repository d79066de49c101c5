package ledger_test

import (
	"testing"
	"time"

	"bindery/internal/isbn"
	"bindery/internal/ledger"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  ledger.Status
		ok    bool
	}{
		{"available", ledger.StatusAvailable, true},
		{" Reserved ", ledger.StatusReserved, true},
		{"SCHEDULED", ledger.StatusScheduled, true},
		{"assigned", ledger.StatusAssigned, true},
		{"published", ledger.StatusPublished, true},
		{"", "", false},
		{"pending", "", false},
	}
	for _, tc := range cases {
		got, ok := ledger.ParseStatus(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBlockCovers(t *testing.T) {
	block := ledger.Block{Prefix: "978", RangeStart: 1000, RangeEnd: 1099}

	inside, err := isbn.Synthesize("978", 1050)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !block.Covers(inside) {
		t.Fatalf("expected block to cover %s", inside)
	}

	below, _ := isbn.Synthesize("978", 999)
	above, _ := isbn.Synthesize("978", 1100)
	otherPrefix, _ := isbn.Synthesize("979", 1050)
	for _, id := range []isbn.ISBN{below, above, otherPrefix} {
		if block.Covers(id) {
			t.Fatalf("block should not cover %s", id)
		}
	}
}

func TestRecordValidateRejectsPayloadMismatch(t *testing.T) {
	id, err := isbn.Synthesize("978", 1000)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	now := time.Now()
	pub := now

	cases := []struct {
		name string
		rec  ledger.Record
		ok   bool
	}{
		{
			"valid reserved",
			ledger.Record{Identifier: id, Status: ledger.StatusReserved},
			true,
		},
		{
			"valid scheduled",
			ledger.Record{Identifier: id, Status: ledger.StatusScheduled, Schedule: &ledger.Schedule{BookTitle: "T", ScheduledDate: now}},
			true,
		},
		{
			"valid assigned",
			ledger.Record{Identifier: id, Status: ledger.StatusAssigned, Assignment: &ledger.Assignment{AssignedDate: now}},
			true,
		},
		{
			"valid published",
			ledger.Record{Identifier: id, Status: ledger.StatusPublished, Assignment: &ledger.Assignment{AssignedDate: now, PublicationDate: &pub}},
			true,
		},
		{
			"scheduled without schedule",
			ledger.Record{Identifier: id, Status: ledger.StatusScheduled},
			false,
		},
		{
			"assigned with publication date",
			ledger.Record{Identifier: id, Status: ledger.StatusAssigned, Assignment: &ledger.Assignment{AssignedDate: now, PublicationDate: &pub}},
			false,
		},
		{
			"published without publication date",
			ledger.Record{Identifier: id, Status: ledger.StatusPublished, Assignment: &ledger.Assignment{AssignedDate: now}},
			false,
		},
		{
			"reserved with stray assignment",
			ledger.Record{Identifier: id, Status: ledger.StatusReserved, Assignment: &ledger.Assignment{AssignedDate: now}},
			false,
		},
		{
			"stored available",
			ledger.Record{Identifier: id, Status: ledger.StatusAvailable},
			false,
		},
		{
			"bad identifier",
			ledger.Record{Identifier: "1234", Status: ledger.StatusReserved},
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

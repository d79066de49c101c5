// Package ledger owns ISBN blocks, assignment records, and the status state
// machine, persisting the full state as a JSON snapshot.
//
// The Store is the single source of truth for identifier lifecycle semantics:
// it registers immutable blocks, allocates the next unused identifier in
// strict registration-then-ascending order, and drives records through the
// available/reserved/scheduled/assigned/published transitions. Every
// successful mutation flushes the snapshot synchronously via a temp-file
// rename so a crash never loses an acknowledged change, and a failed flush
// rolls the in-memory state back.
//
// The snapshot assumes a single writer; an advisory file lock held for the
// Store's lifetime catches accidental concurrent use but is not a
// multi-process protocol. When you add new statuses or record fields, update
// the transition table here and bump snapshotVersion.
package ledger

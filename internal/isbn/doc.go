// Package isbn validates and constructs 13-digit ISBN identifiers.
//
// Identifiers are immutable once parsed: Parse strips common separators,
// requires exactly thirteen digits, and verifies the check digit without
// ever correcting it. Synthesize is the inverse direction used by block
// allocation, deriving the full identifier for a numeric sequence position
// under a registration prefix.
//
// The package has no dependencies on the rest of the system so callers can
// validate user input before touching the ledger.
package isbn

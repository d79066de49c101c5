// Package registrar folds bulk identifier exports from an ISBN registrar into
// the ledger.
//
// Imports are partial-failure tolerant: every row that cannot be used (bad
// identifier, unrecognized status label, duplicate within the file, already
// tracked in the store) is recorded in the result and skipped while the rest
// of the batch continues. Status labels map through an exhaustive table; an
// unknown label is always an error, never a silent default.
package registrar

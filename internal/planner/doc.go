// Package planner builds reporting views on top of the ledger: upcoming
// scheduled assignments and aggregate availability statistics.
//
// It never mutates the store; everything here is derived from one pass over
// blocks and records so reports stay cheap no matter how large the registered
// ranges are.
package planner

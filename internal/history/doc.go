// Package history keeps an optional SQLite ledger of fetch runs.
//
// Each run records the resolved channel, output path, counts, outcome and
// timing. The ledger is write-mostly: it backs the `history` command and is
// never consulted to decide what to fetch.
package history

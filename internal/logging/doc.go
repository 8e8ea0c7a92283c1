// Package logging assembles structured slog loggers and formatting helpers used
// across ytcatalog.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the field names (run_id, channel_id, playlist_id) that
// tie the lines of one fetch run together. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Logs go to stderr by default so stdout stays reserved for command output.
package logging

// Package textutil provides small text helpers shared by the catalog and
// channel packages: Unicode case folding for title comparison and
// filesystem-safe tokens for lock and temp file names.
package textutil

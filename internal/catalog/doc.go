// Package catalog assembles the grouped video catalog for one channel and
// persists it as JSON for static-site consumption.
//
// A catalog holds one category per non-empty playlist. Videos inside a
// category are newest first; categories are ordered by title. Writes are
// atomic and serialized across processes with an advisory file lock.
package catalog

// Package channel turns the user's channel reference (id, handle, page URL or
// display name) into a YouTube channel id.
//
// Explicit ids win, then names that already look like ids, then handle and
// URL page scraping, and finally a Data API search by name that prefers an
// exact title match.
package channel

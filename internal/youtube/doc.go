// Package youtube wraps the generated YouTube Data API v3 client with the
// three read-only calls ytcatalog needs: channel search, channel playlists,
// and playlist items.
//
// Every list call follows nextPageToken until the API stops returning one.
// Requests are spaced by a fixed interval through a token-bucket limiter;
// there is no retry or backoff. Non-2xx responses surface as *APIError.
package youtube

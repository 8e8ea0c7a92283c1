// Package config loads, normalizes, and validates ytcatalog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, applies a local .env file, and honours the
// YT_API_KEY environment fallback. The Config type centralizes every knob the
// CLI needs so the API client, channel resolver, catalog writer and run
// history receive sanitized values from one place.
//
// Always obtain settings through this package so downstream code receives
// clamped page sizes, canonical log formats, and clear validation errors.
package config

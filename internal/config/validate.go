package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no key was configured.
var ErrMissingAPIKey = errors.New("missing API key")

// Validate ensures the configuration is usable. The API key is deliberately not
// checked here so that commands that never call the API work without one; see
// RequireAPIKey.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateChannel(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey when the YouTube API key is unset.
func (c *Config) RequireAPIKey() error {
	if !c.HasAPIKey() {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.TimeoutSeconds <= 0 {
		return errors.New("youtube.timeout_seconds must be positive")
	}
	if c.YouTube.RequestIntervalMS < 0 {
		return errors.New("youtube.request_interval_ms must be >= 0")
	}
	if c.YouTube.PlaylistIntervalMS < 0 {
		return errors.New("youtube.playlist_interval_ms must be >= 0")
	}
	if !strings.HasPrefix(c.YouTube.BaseURL, "http://") && !strings.HasPrefix(c.YouTube.BaseURL, "https://") {
		return fmt.Errorf("youtube.base_url must be an http(s) URL, got %q", c.YouTube.BaseURL)
	}
	return nil
}

func (c *Config) validateChannel() error {
	if c.Channel.Name == "" && c.Channel.ID == "" && c.Channel.Handle == "" && c.Channel.URL == "" {
		return errors.New("channel.name must be set (or one of channel.id, channel.handle, channel.url)")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Path == "" {
		return errors.New("output.path must be set")
	}
	if c.Output.Indent > 8 {
		return errors.New("output.indent must be between 0 and 8")
	}
	return nil
}

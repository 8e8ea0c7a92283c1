package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeYouTube()
	c.normalizeChannel()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YT_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.BaseURL = strings.TrimSpace(c.YouTube.BaseURL)
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultBaseURL
	}
	if !strings.HasSuffix(c.YouTube.BaseURL, "/") {
		c.YouTube.BaseURL += "/"
	}
	c.YouTube.UserAgent = strings.TrimSpace(c.YouTube.UserAgent)
	if c.YouTube.UserAgent == "" {
		c.YouTube.UserAgent = defaultUserAgent
	}
	if c.YouTube.TimeoutSeconds == 0 {
		c.YouTube.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.YouTube.PageSize = clamp(c.YouTube.PageSize, defaultPageSize)
	c.YouTube.SearchResults = clamp(c.YouTube.SearchResults, defaultSearchResults)
}

// clamp keeps API page sizes within the 1..50 range the Data API accepts.
func clamp(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	if value > maxPageSize {
		return maxPageSize
	}
	return value
}

func (c *Config) normalizeChannel() {
	c.Channel.Name = strings.TrimSpace(c.Channel.Name)
	c.Channel.ID = strings.TrimSpace(c.Channel.ID)
	c.Channel.Handle = strings.TrimSpace(c.Channel.Handle)
	c.Channel.URL = strings.TrimSpace(c.Channel.URL)
}

func (c *Config) normalizeOutput() error {
	// The output path stays relative so the catalog lands inside the site
	// checkout the command runs from.
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	if c.Output.Path == "" {
		c.Output.Path = defaultOutputPath
	}
	if strings.HasPrefix(c.Output.Path, "~") {
		expanded, err := expandPath(c.Output.Path)
		if err != nil {
			return fmt.Errorf("output.path: %w", err)
		}
		c.Output.Path = expanded
	}
	if c.Output.Indent < 0 {
		c.Output.Indent = 0
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

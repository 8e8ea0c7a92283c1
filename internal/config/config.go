package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// YouTube contains YouTube Data API connection settings.
type YouTube struct {
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
	UserAgent          string `toml:"user_agent"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	PageSize           int    `toml:"page_size"`
	SearchResults      int    `toml:"search_results"`
	RequestIntervalMS  int    `toml:"request_interval_ms"`
	PlaylistIntervalMS int    `toml:"playlist_interval_ms"`
}

// Channel identifies the channel to catalog. Only Name is required; ID, Handle
// and URL short-circuit the API search when present.
type Channel struct {
	Name   string `toml:"name"`
	ID     string `toml:"id"`
	Handle string `toml:"handle"`
	URL    string `toml:"url"`
}

// Output contains configuration for the written catalog file.
type Output struct {
	Path   string `toml:"path"`
	Indent int    `toml:"indent"`
}

// History contains configuration for the optional run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log line.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for ytcatalog.
//
// Configuration sections by subsystem:
//   - YouTube: API key, endpoint, paging and request pacing
//   - Channel: which channel to resolve
//   - Output: catalog file location and formatting
//   - History: sqlite run ledger
//   - Logging: log format, level and optional log file
type Config struct {
	YouTube YouTube `toml:"youtube"`
	Channel Channel `toml:"channel"`
	Output  Output  `toml:"output"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A .env file in the
// working directory is applied to the process environment first; variables that
// are already set are left untouched.
func Load(path string) (*Config, string, bool, error) {
	loadDotEnv(dotEnvFile)

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv is best effort: a missing or malformed file leaves the
// environment as it was.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a fetch run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Output.Path)}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HasAPIKey reports whether a YouTube API key was configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.YouTube.APIKey) != ""
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.YouTube.TimeoutSeconds) * time.Second
}

// RequestInterval returns the minimum spacing between API requests.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.YouTube.RequestIntervalMS) * time.Millisecond
}

// PlaylistInterval returns the pause taken after each non-empty playlist.
func (c *Config) PlaylistInterval() time.Duration {
	return time.Duration(c.YouTube.PlaylistIntervalMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

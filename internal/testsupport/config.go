package testsupport

import (
	"path/filepath"
	"testing"

	"ytcatalog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test. Pacing
// is disabled so tests do not sleep between requests.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.YouTube.APIKey = "test"
	cfgVal.YouTube.RequestIntervalMS = 0
	cfgVal.YouTube.PlaylistIntervalMS = 0
	cfgVal.Output.Path = filepath.Join(base, "public", "videos.json")
	cfgVal.History.Path = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the YouTube API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.APIKey = key
	}
}

// WithFakeYouTube points the config at a fake API server and adopts its key.
func WithFakeYouTube(fake *FakeYouTube) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.BaseURL = fake.URL()
		b.cfg.YouTube.APIKey = fake.APIKey
	}
}

// WithChannelID skips channel search by pinning the channel id.
func WithChannelID(id string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Channel.ID = id
	}
}

// WithHistory enables the run history database.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Output.Path))
}

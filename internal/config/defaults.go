package config

const (
	defaultConfigPath         = "~/.config/ytcatalog/config.toml"
	projectConfigFile         = "ytcatalog.toml"
	dotEnvFile                = ".env"
	defaultBaseURL            = "https://youtube.googleapis.com/"
	defaultUserAgent          = "ytcatalog/dev"
	defaultTimeoutSeconds     = 15
	defaultPageSize           = 50
	maxPageSize               = 50
	defaultSearchResults      = 5
	defaultRequestIntervalMS  = 100
	defaultPlaylistIntervalMS = 150
	defaultChannelName        = "Knowledge Boat"
	defaultOutputPath         = "public/videos.json"
	defaultOutputIndent       = 2
	defaultHistoryPath        = "~/.local/share/ytcatalog/history.db"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		YouTube: YouTube{
			BaseURL:            defaultBaseURL,
			UserAgent:          defaultUserAgent,
			TimeoutSeconds:     defaultTimeoutSeconds,
			PageSize:           defaultPageSize,
			SearchResults:      defaultSearchResults,
			RequestIntervalMS:  defaultRequestIntervalMS,
			PlaylistIntervalMS: defaultPlaylistIntervalMS,
		},
		Channel: Channel{
			Name: defaultChannelName,
		},
		Output: Output{
			Path:   defaultOutputPath,
			Indent: defaultOutputIndent,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

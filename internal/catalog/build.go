package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ytcatalog/internal/channel"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

// Progress receives one call per playlist processed. index is 1-based.
type Progress func(index, total int, playlist youtube.Playlist, videos int)

type buildOptions struct {
	playlistPause time.Duration
	now           func() time.Time
	logger        *slog.Logger
	progress      Progress
}

// Option configures Build.
type Option func(*buildOptions)

// WithPlaylistPause sets the pause taken after each non-empty playlist.
func WithPlaylistPause(d time.Duration) Option {
	return func(o *buildOptions) {
		if d >= 0 {
			o.playlistPause = d
		}
	}
}

// WithClock overrides the generatedAt time source.
func WithClock(now func() time.Time) Option {
	return func(o *buildOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithProgress registers a per-playlist callback.
func WithProgress(fn Progress) Option {
	return func(o *buildOptions) {
		o.progress = fn
	}
}

// Build lists every playlist of ref, collects its videos, drops empty
// playlists, and returns the sorted catalog.
func Build(ctx context.Context, source youtube.Source, ref channel.Ref, opts ...Option) (*Catalog, error) {
	options := buildOptions{
		playlistPause: 150 * time.Millisecond,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	logger := logging.NewComponentLogger(logging.WithContext(ctx, options.logger), "catalog").
		With(logging.String(logging.FieldChannelID, ref.ID))

	if strings.TrimSpace(ref.ID) == "" {
		return nil, errors.New("channel id required")
	}

	playlists, err := source.ListPlaylists(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	logger.Info("playlists listed", logging.Int("count", len(playlists)))

	categories := make([]Category, 0, len(playlists))
	for i, pl := range playlists {
		videos, err := source.ListPlaylistVideos(ctx, pl.ID)
		if err != nil {
			return nil, fmt.Errorf("list videos in playlist %s (%s): %w", pl.ID, pl.Title, err)
		}
		if options.progress != nil {
			options.progress(i+1, len(playlists), pl, len(videos))
		}
		if len(videos) == 0 {
			logger.Debug("skipping empty playlist",
				logging.String(logging.FieldPlaylistID, pl.ID),
				logging.String("title", pl.Title),
			)
			continue
		}

		SortVideos(videos)
		categories = append(categories, Category{ID: pl.ID, Title: pl.Title, Videos: videos})
		logger.Debug("playlist collected",
			logging.String(logging.FieldPlaylistID, pl.ID),
			logging.String("title", pl.Title),
			logging.Int("videos", len(videos)),
		)

		if err := source.Pause(ctx, options.playlistPause); err != nil {
			return nil, err
		}
	}

	SortCategories(categories)

	cat := &Catalog{
		Channel:     ref,
		Categories:  categories,
		GeneratedAt: options.now().UTC().Format(TimeLayout),
	}
	logger.Info("catalog assembled",
		logging.Int("categories", len(cat.Categories)),
		logging.Int("videos", cat.VideoCount()),
	)
	return cat, nil
}

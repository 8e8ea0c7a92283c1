package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/logging"
)

const (
	maxPageSize          = 50
	defaultSearchResults = 5
)

// Source is the read surface the catalog builder depends on.
type Source interface {
	ListPlaylists(ctx context.Context, channelID string) ([]Playlist, error)
	ListPlaylistVideos(ctx context.Context, playlistID string) ([]Video, error)
	Pause(ctx context.Context, d time.Duration) error
}

// Searcher finds channels by free-text query.
type Searcher interface {
	SearchChannels(ctx context.Context, query string) ([]ChannelHit, error)
}

// Client provides paged access to the YouTube Data API.
type Client struct {
	apiKey        string
	baseURL       string
	userAgent     string
	pageSize      int64
	searchResults int64
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger
	svc           *ytapi.Service
}

var (
	_ Source   = (*Client)(nil)
	_ Searcher = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPageSize sets maxResults for paged list calls (1-50).
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.pageSize = int64(n)
		}
	}
}

// WithSearchResults sets how many candidates a channel search requests.
func WithSearchResults(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.searchResults = int64(n)
		}
	}
}

// WithRequestInterval spaces successive API requests by at least d.
// Zero disables pacing.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		c.limiter = newLimiter(d)
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for per-page debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "youtube")
	}
}

// New creates a YouTube client that authenticates every call with apiKey.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("youtube base url required")
	}
	client := &Client{
		apiKey:        apiKey,
		baseURL:       baseURL,
		pageSize:      maxPageSize,
		searchResults: defaultSearchResults,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		limiter:       newLimiter(0),
		logger:        logging.NewComponentLogger(nil, "youtube"),
	}
	for _, opt := range opts {
		opt(client)
	}

	// The key travels as a query parameter on each call; a custom HTTP client
	// disables the library's own credential handling.
	svcOpts := []option.ClientOption{
		option.WithHTTPClient(client.httpClient),
		option.WithEndpoint(client.baseURL),
	}
	if client.userAgent != "" {
		svcOpts = append(svcOpts, option.WithUserAgent(client.userAgent))
	}
	svc, err := ytapi.NewService(context.Background(), svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	client.svc = svc
	return client, nil
}

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

func (c *Client) keyParam() googleapi.CallOption {
	return googleapi.QueryParameter("key", c.apiKey)
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}
	return nil
}

// Pause blocks for d or until ctx is cancelled.
func (c *Client) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SearchChannels returns up to the configured number of channels matching query.
func (c *Client) SearchChannels(ctx context.Context, query string) ([]ChannelHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(c.searchResults).
		Context(ctx).
		Do(c.keyParam())
	if err != nil {
		return nil, wrapError("search", err)
	}
	c.logger.Debug("channel search complete",
		logging.String("query", query),
		logging.Int("results", len(resp.Items)),
		logging.Duration("latency", time.Since(start)),
	)

	hits := make([]ChannelHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		var hit ChannelHit
		if item.Snippet != nil {
			hit.ID = item.Snippet.ChannelId
			hit.Title = item.Snippet.Title
			hit.Description = item.Snippet.Description
		}
		if hit.ID == "" && item.Id != nil {
			hit.ID = item.Id.ChannelId
		}
		if hit.ID == "" {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// ListPlaylists returns every playlist owned by channelID, following pagination.
func (c *Client) ListPlaylists(ctx context.Context, channelID string) ([]Playlist, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, errors.New("channel id must not be empty")
	}

	var playlists []Playlist
	err := c.paginate(ctx, "playlists", func(pageToken string) (string, error) {
		call := c.svc.Playlists.List([]string{"snippet", "contentDetails"}).
			ChannelId(channelID).
			MaxResults(c.pageSize)
		if pageToken != "" {
			call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do(c.keyParam())
		if err != nil {
			return "", err
		}
		for _, item := range resp.Items {
			if item == nil || item.Id == "" {
				continue
			}
			pl := Playlist{ID: item.Id}
			if item.Snippet != nil {
				pl.Title = item.Snippet.Title
				pl.Description = item.Snippet.Description
			}
			if item.ContentDetails != nil {
				pl.ItemCount = item.ContentDetails.ItemCount
			}
			playlists = append(playlists, pl)
		}
		c.logger.Debug("playlists page",
			logging.String(logging.FieldChannelID, channelID),
			logging.Int("items", len(resp.Items)),
		)
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// ListPlaylistVideos returns the videos in playlistID in API order, following
// pagination. Items without a video id (deleted or private) are skipped.
func (c *Client) ListPlaylistVideos(ctx context.Context, playlistID string) ([]Video, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}

	var videos []Video
	err := c.paginate(ctx, "playlistItems", func(pageToken string) (string, error) {
		call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(c.pageSize)
		if pageToken != "" {
			call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do(c.keyParam())
		if err != nil {
			return "", err
		}
		for _, item := range resp.Items {
			if video, ok := videoFromItem(item); ok {
				videos = append(videos, video)
			}
		}
		c.logger.Debug("playlist items page",
			logging.String(logging.FieldPlaylistID, playlistID),
			logging.Int("items", len(resp.Items)),
		)
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// paginate calls fetch with successive page tokens until it returns an empty
// one. A token seen twice aborts the loop.
func (c *Client) paginate(ctx context.Context, op string, fetch func(pageToken string) (string, error)) error {
	seen := map[string]struct{}{}
	token := ""
	for {
		if err := c.wait(ctx); err != nil {
			return err
		}
		next, err := fetch(token)
		if err != nil {
			return wrapError(op, err)
		}
		if next == "" {
			return nil
		}
		if _, dup := seen[next]; dup {
			return fmt.Errorf("youtube %s: page token %q repeated", op, next)
		}
		seen[next] = struct{}{}
		token = next
	}
}

func videoFromItem(item *ytapi.PlaylistItem) (Video, bool) {
	if item == nil || item.ContentDetails == nil {
		return Video{}, false
	}
	videoID := strings.TrimSpace(item.ContentDetails.VideoId)
	if videoID == "" {
		return Video{}, false
	}

	video := Video{ID: videoID}
	var thumbs *ytapi.ThumbnailDetails
	if snippet := item.Snippet; snippet != nil {
		video.Title = snippet.Title
		video.Description = snippet.Description
		if snippet.PublishedAt != "" {
			published := snippet.PublishedAt
			video.PublishedAt = &published
		}
		position := snippet.Position
		video.Position = &position
		thumbs = snippet.Thumbnails
	}
	video.Thumbnail = pickThumbnail(thumbs, videoID)
	return video, true
}

// pickThumbnail prefers the largest rendition: maxres, standard, high,
// medium, default, then the static hqdefault URL.
func pickThumbnail(thumbs *ytapi.ThumbnailDetails, videoID string) string {
	if thumbs != nil {
		for _, t := range []*ytapi.Thumbnail{thumbs.Maxres, thumbs.Standard, thumbs.High, thumbs.Medium, thumbs.Default} {
			if t != nil && t.Url != "" {
				return t.Url
			}
		}
	}
	return FallbackThumbnail(videoID)
}

package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ytcatalog/internal/logging"
	"ytcatalog/internal/textutil"
	"ytcatalog/internal/youtube"
)

const (
	defaultPageBaseURL = "https://www.youtube.com"
	maxPageBytes       = 4 << 20
)

var (
	// ErrNoResults reports that a name search returned no channels.
	ErrNoResults = errors.New("no channel results")
	// ErrNotResolved reports that a handle or URL page carried no channel id.
	ErrNotResolved = errors.New("channel id not found")
)

// Query is the user's description of the channel to catalog.
type Query struct {
	Name   string
	ID     string
	Handle string
	URL    string
}

// Ref is a resolved channel as written to the catalog header.
type Ref struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Resolver resolves a Query to a channel id.
type Resolver struct {
	searcher    youtube.Searcher
	httpClient  *http.Client
	pageBaseURL string
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient overrides the client used to fetch youtube.com pages.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithPageBaseURL overrides https://www.youtube.com for handle lookups.
func WithPageBaseURL(base string) Option {
	return func(r *Resolver) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			r.pageBaseURL = base
		}
	}
}

// WithUserAgent sets the User-Agent used for page fetches.
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		r.userAgent = strings.TrimSpace(ua)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.NewComponentLogger(logger, "channel")
	}
}

// NewResolver creates a resolver that falls back to searcher for name lookups.
func NewResolver(searcher youtube.Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		searcher:    searcher,
		httpClient:  NewPageClient(15 * time.Second),
		pageBaseURL: defaultPageBaseURL,
		logger:      logging.NewComponentLogger(nil, "channel"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the channel reference for q. The reference name is the
// configured display name; when none is configured the handle or the matched
// search title is used instead.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Ref, error) {
	q = Query{
		Name:   strings.TrimSpace(q.Name),
		ID:     strings.TrimSpace(q.ID),
		Handle: strings.TrimSpace(q.Handle),
		URL:    strings.TrimSpace(q.URL),
	}
	ref := Ref{Name: q.Name}

	switch {
	case q.ID != "":
		ref.ID = q.ID
		r.logger.Debug("using configured channel id", logging.String(logging.FieldChannelID, ref.ID))
	case LooksLikeID(q.Name):
		ref.ID = q.Name
		r.logger.Debug("channel name is an id", logging.String(logging.FieldChannelID, ref.ID))
	case q.Handle != "":
		id, err := r.fromHandle(ctx, q.Handle)
		if err != nil {
			return Ref{}, err
		}
		ref.ID = id
		if ref.Name == "" {
			ref.Name = normalizeHandle(q.Handle)
		}
	case q.URL != "":
		id, err := r.fromURL(ctx, q.URL)
		if err != nil {
			return Ref{}, err
		}
		ref.ID = id
	default:
		hit, err := r.search(ctx, q.Name)
		if err != nil {
			return Ref{}, err
		}
		ref.ID = hit.ID
		if ref.Name == "" {
			ref.Name = hit.Title
		}
	}

	r.logger.Info("channel resolved",
		logging.String("name", ref.Name),
		logging.String(logging.FieldChannelID, ref.ID),
	)
	return ref, nil
}

func (r *Resolver) search(ctx context.Context, name string) (youtube.ChannelHit, error) {
	if name == "" {
		return youtube.ChannelHit{}, errors.New("channel name required for search")
	}
	if r.searcher == nil {
		return youtube.ChannelHit{}, errors.New("channel search unavailable")
	}
	hits, err := r.searcher.SearchChannels(ctx, name)
	if err != nil {
		return youtube.ChannelHit{}, fmt.Errorf("search channel %q: %w", name, err)
	}
	return pickHit(name, hits)
}

// pickHit prefers the first hit whose title equals name ignoring case and
// surrounding space, else the first hit.
func pickHit(name string, hits []youtube.ChannelHit) (youtube.ChannelHit, error) {
	if len(hits) == 0 {
		return youtube.ChannelHit{}, fmt.Errorf("%w for query: %s", ErrNoResults, name)
	}
	for _, hit := range hits {
		if textutil.EqualFold(hit.Title, name) {
			return hit, nil
		}
	}
	return hits[0], nil
}

func normalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

func (r *Resolver) fromHandle(ctx context.Context, handle string) (string, error) {
	clean := normalizeHandle(handle)
	base := r.pageBaseURL + "/" + url.PathEscape(clean)
	for _, page := range []string{base, base + "/about"} {
		id, err := r.fetchID(ctx, page)
		if err != nil {
			r.logger.Debug("handle page fetch failed",
				logging.String("url", page),
				logging.Error(err),
			)
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w from handle %s", ErrNotResolved, clean)
}

func (r *Resolver) fromURL(ctx context.Context, raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid channel url %q", raw)
	}
	// Channel URLs of the form /channel/UC... carry the id already.
	if id := extractFromText(parsed.Path); id != "" {
		return id, nil
	}
	id, err := r.fetchID(ctx, parsed.String())
	if err != nil {
		return "", fmt.Errorf("fetch channel page %s: %w", raw, err)
	}
	if id == "" {
		return "", fmt.Errorf("%w from url %s", ErrNotResolved, raw)
	}
	return id, nil
}

func (r *Resolver) fetchID(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	// Skip the EU consent interstitial, which carries no channel metadata.
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+1"})

	requestStart := time.Now()
	resp, err := r.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return "", fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page %s returned %d (latency=%v)", pageURL, resp.StatusCode, latency)
	}
	return ExtractID(io.LimitReader(resp.Body, maxPageBytes)), nil
}

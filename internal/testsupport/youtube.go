package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Resource is one raw API resource as the Data API would return it.
type Resource = map[string]any

// FakeYouTube serves canned Data API v3 responses for search, playlists and
// playlistItems. Pages are addressed with tokens of the form "page-N".
type FakeYouTube struct {
	Server *httptest.Server
	APIKey string

	mu            sync.Mutex
	search        []Resource
	playlists     map[string][][]Resource
	playlistItems map[string][][]Resource
	failures      map[string]failure
	requests      []*url.URL
}

type failure struct {
	status  int
	message string
}

// NewFakeYouTube starts a fake API server that requires apiKey on every call.
func NewFakeYouTube(t testing.TB, apiKey string) *FakeYouTube {
	t.Helper()

	fake := &FakeYouTube{
		APIKey:        apiKey,
		playlists:     map[string][][]Resource{},
		playlistItems: map[string][][]Resource{},
		failures:      map[string]failure{},
	}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Server.Close)
	return fake
}

// URL returns the API root to configure clients with.
func (f *FakeYouTube) URL() string {
	return f.Server.URL + "/"
}

// SetSearch sets the items returned by search.list.
func (f *FakeYouTube) SetSearch(items ...Resource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search = items
}

// SetPlaylists sets the pages of playlists.list for channelID.
func (f *FakeYouTube) SetPlaylists(channelID string, pages ...[]Resource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists[channelID] = pages
}

// SetPlaylistItems sets the pages of playlistItems.list for playlistID.
func (f *FakeYouTube) SetPlaylistItems(playlistID string, pages ...[]Resource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlistItems[playlistID] = pages
}

// Fail makes every call to endpoint ("search", "playlists", "playlistItems")
// return status with a Data API style error body.
func (f *FakeYouTube) Fail(endpoint string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[endpoint] = failure{status: status, message: message}
}

// Requests returns the request URLs received so far, optionally filtered by endpoint.
func (f *FakeYouTube) Requests(endpoint string) []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*url.URL
	for _, u := range f.requests {
		if endpoint == "" || path.Base(u.Path) == endpoint {
			out = append(out, u)
		}
	}
	return out
}

func (f *FakeYouTube) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.URL)
	query := r.URL.Query()
	endpoint := path.Base(r.URL.Path)

	if !strings.HasPrefix(r.URL.Path, "/youtube/v3/") {
		writeAPIError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}
	if query.Get("key") != f.APIKey {
		writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.")
		return
	}
	if fail, ok := f.failures[endpoint]; ok {
		writeAPIError(w, fail.status, fail.message)
		return
	}

	switch endpoint {
	case "search":
		writeJSON(w, Resource{"kind": "youtube#searchListResponse", "items": f.search})
	case "playlists":
		writePage(w, "youtube#playlistListResponse", f.playlists[query.Get("channelId")], query.Get("pageToken"))
	case "playlistItems":
		writePage(w, "youtube#playlistItemListResponse", f.playlistItems[query.Get("playlistId")], query.Get("pageToken"))
	default:
		writeAPIError(w, http.StatusNotFound, "unknown endpoint "+endpoint)
	}
}

func writePage(w http.ResponseWriter, kind string, pages [][]Resource, token string) {
	index := 0
	if token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, "page-"))
		if err != nil || n < 1 || n >= len(pages) {
			writeAPIError(w, http.StatusBadRequest, "invalid page token "+token)
			return
		}
		index = n
	}
	body := Resource{"kind": kind, "items": []Resource{}}
	if index < len(pages) {
		body["items"] = pages[index]
	}
	if index+1 < len(pages) {
		body["nextPageToken"] = "page-" + strconv.Itoa(index+1)
	}
	writeJSON(w, body)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Resource{
		"error": Resource{"code": status, "message": message},
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// SearchResult builds a search.list channel item.
func SearchResult(channelID, title string) Resource {
	return Resource{
		"kind": "youtube#searchResult",
		"id":   Resource{"kind": "youtube#channel", "channelId": channelID},
		"snippet": Resource{
			"channelId": channelID,
			"title":     title,
		},
	}
}

// PlaylistResource builds a playlists.list item.
func PlaylistResource(id, title string, itemCount int) Resource {
	return Resource{
		"kind":           "youtube#playlist",
		"id":             id,
		"snippet":        Resource{"title": title, "description": title + " lessons"},
		"contentDetails": Resource{"itemCount": itemCount},
	}
}

// PlaylistItemResource builds a playlistItems.list item. An empty videoID
// omits contentDetails.videoId; an empty publishedAt omits the field.
// thumbs maps size names (maxres, standard, high, medium, default) to URLs.
func PlaylistItemResource(videoID, title, publishedAt string, position int, thumbs map[string]string) Resource {
	snippet := Resource{
		"title":       title,
		"description": "About " + title,
		"position":    position,
	}
	if publishedAt != "" {
		snippet["publishedAt"] = publishedAt
	}
	if len(thumbs) > 0 {
		details := Resource{}
		for size, u := range thumbs {
			details[size] = Resource{"url": u}
		}
		snippet["thumbnails"] = details
	}
	content := Resource{}
	if videoID != "" {
		content["videoId"] = videoID
	}
	return Resource{
		"kind":           "youtube#playlistItem",
		"snippet":        snippet,
		"contentDetails": content,
	}
}

package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/channel"
	"ytcatalog/internal/testsupport"
	"ytcatalog/internal/youtube"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

type stubSource struct {
	playlists []youtube.Playlist
	videos    map[string][]youtube.Video
	errs      map[string]error
	pauses    []time.Duration
}

func (s *stubSource) ListPlaylists(context.Context, string) ([]youtube.Playlist, error) {
	if err := s.errs["playlists"]; err != nil {
		return nil, err
	}
	return s.playlists, nil
}

func (s *stubSource) ListPlaylistVideos(_ context.Context, id string) ([]youtube.Video, error) {
	if err := s.errs[id]; err != nil {
		return nil, err
	}
	return s.videos[id], nil
}

func (s *stubSource) Pause(_ context.Context, d time.Duration) error {
	s.pauses = append(s.pauses, d)
	return nil
}

func ids(videos []youtube.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.ID)
	}
	return out
}

func TestSortVideosNewestFirstThenPlaylistOrder(t *testing.T) {
	videos := []youtube.Video{
		{ID: "old", PublishedAt: strPtr("2023-05-01T00:00:00Z"), Position: intPtr(0)},
		{ID: "none", Position: intPtr(1)},
		{ID: "new-b", PublishedAt: strPtr("2024-01-01T00:00:00Z"), Position: intPtr(5)},
		{ID: "new-a", PublishedAt: strPtr("2024-01-01T00:00:00Z"), Position: intPtr(2)},
		{ID: "new-nopos", PublishedAt: strPtr("2024-01-01T00:00:00Z")},
		{ID: "none-first", Position: intPtr(0)},
	}
	catalog.SortVideos(videos)
	assert.Equal(t, []string{"new-nopos", "new-a", "new-b", "old", "none-first", "none"}, ids(videos))
}

func TestSortCategoriesCaseInsensitive(t *testing.T) {
	cats := []catalog.Category{
		{ID: "3", Title: "physics"},
		{ID: "1", Title: "Biology"},
		{ID: "2", Title: "chemistry"},
		{ID: "5", Title: "Äpfel"},
		{ID: "4", Title: "biology"},
	}
	catalog.SortCategories(cats)

	var titles []string
	for _, c := range cats {
		titles = append(titles, c.ID+":"+c.Title)
	}
	assert.Equal(t, []string{"5:Äpfel", "1:Biology", "4:biology", "2:chemistry", "3:physics"}, titles)
}

func TestBuildSkipsEmptyPlaylistsAndPausesAfterEachCategory(t *testing.T) {
	source := &stubSource{
		playlists: []youtube.Playlist{
			{ID: "PLz", Title: "Zoology"},
			{ID: "PLempty", Title: "Empty"},
			{ID: "PLa", Title: "astronomy"},
		},
		videos: map[string][]youtube.Video{
			"PLz": {
				{ID: "z1", PublishedAt: strPtr("2022-01-01T00:00:00Z"), Position: intPtr(0)},
				{ID: "z2", PublishedAt: strPtr("2024-01-01T00:00:00Z"), Position: intPtr(1)},
			},
			"PLa": {{ID: "a1", Position: intPtr(0)}},
		},
	}
	var progress []string
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 890, time.FixedZone("IST", 19800))

	cat, err := catalog.Build(context.Background(), source, channel.Ref{Name: "Knowledge Boat", ID: "UCx"},
		catalog.WithPlaylistPause(42*time.Millisecond),
		catalog.WithClock(func() time.Time { return fixed }),
		catalog.WithProgress(func(i, total int, pl youtube.Playlist, videos int) {
			progress = append(progress, pl.ID)
		}),
	)
	require.NoError(t, err)

	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "astronomy", cat.Categories[0].Title)
	assert.Equal(t, "Zoology", cat.Categories[1].Title)
	assert.Equal(t, []string{"z2", "z1"}, ids(cat.Categories[1].Videos))
	assert.Equal(t, "2025-03-03T23:36:07Z", cat.GeneratedAt)
	assert.Equal(t, channel.Ref{Name: "Knowledge Boat", ID: "UCx"}, cat.Channel)
	assert.Equal(t, []time.Duration{42 * time.Millisecond, 42 * time.Millisecond}, source.pauses)
	assert.Equal(t, []string{"PLz", "PLempty", "PLa"}, progress)
	assert.Equal(t, 3, cat.VideoCount())
}

func TestBuildWrapsSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	source := &stubSource{
		playlists: []youtube.Playlist{{ID: "PL1", Title: "One"}},
		errs:      map[string]error{"PL1": boom},
	}
	_, err := catalog.Build(context.Background(), source, channel.Ref{ID: "UCx"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "PL1")

	_, err = catalog.Build(context.Background(), &stubSource{errs: map[string]error{"playlists": boom}}, channel.Ref{ID: "UCx"})
	require.ErrorIs(t, err, boom)

	_, err = catalog.Build(context.Background(), &stubSource{}, channel.Ref{})
	assert.Error(t, err)
}

func TestBuildAndWriteAgainstFakeAPI(t *testing.T) {
	fake := testsupport.NewFakeYouTube(t, "key")
	fake.SetPlaylists("UCchan",
		[]testsupport.Resource{testsupport.PlaylistResource("PLp", "Physics", 2)},
		[]testsupport.Resource{testsupport.PlaylistResource("PLe", "empty", 0)},
	)
	fake.SetPlaylistItems("PLp",
		[]testsupport.Resource{
			testsupport.PlaylistItemResource("v1", "Motion", "2024-01-01T00:00:00Z", 0, map[string]string{"high": "https://img/v1.jpg"}),
		},
		[]testsupport.Resource{
			testsupport.PlaylistItemResource("v2", "Force & <Laws>", "2024-06-01T00:00:00Z", 1, nil),
			testsupport.PlaylistItemResource("", "Private video", "", 2, nil),
		},
	)
	client, err := youtube.New("key", fake.URL())
	require.NoError(t, err)

	cat, err := catalog.Build(context.Background(), client, channel.Ref{Name: "Knowledge Boat", ID: "UCchan"},
		catalog.WithPlaylistPause(0),
		catalog.WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "public", "videos.json")
	require.NoError(t, catalog.Write(out, cat, 2))

	want := `{
  "channel": {
    "name": "Knowledge Boat",
    "id": "UCchan"
  },
  "categories": [
    {
      "id": "PLp",
      "title": "Physics",
      "videos": [
        {
          "id": "v2",
          "title": "Force & <Laws>",
          "description": "About Force & <Laws>",
          "publishedAt": "2024-06-01T00:00:00Z",
          "thumbnail": "https://i.ytimg.com/vi/v2/hqdefault.jpg",
          "position": 1
        },
        {
          "id": "v1",
          "title": "Motion",
          "description": "About Motion",
          "publishedAt": "2024-01-01T00:00:00Z",
          "thumbnail": "https://img/v1.jpg",
          "position": 0
        }
      ]
    }
  ],
  "generatedAt": "2025-01-02T03:04:05Z"
}`
	assert.Equal(t, want, testsupport.ReadFile(t, out))
	assert.Equal(t, "Wrote "+out+" with 2 videos across 1 categories.", catalog.CompletionMessage(out, cat))
}

func TestMarshalKeepsNonASCIIAndNullFields(t *testing.T) {
	cat := &catalog.Catalog{
		Channel: channel.Ref{Name: "ज्ञान नाव", ID: "UCx"},
		Categories: []catalog.Category{{
			ID:     "PL1",
			Title:  "Class 10 – Physics",
			Videos: []youtube.Video{{ID: "v1", Title: "Ohm’s law", Thumbnail: "t"}},
		}},
		GeneratedAt: "2025-01-01T00:00:00Z",
	}
	data, err := catalog.Marshal(cat, 0)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `"name":"ज्ञान नाव"`)
	assert.Contains(t, body, `"title":"Class 10 – Physics"`)
	assert.Contains(t, body, `"publishedAt":null`)
	assert.Contains(t, body, `"position":null`)
	assert.False(t, strings.HasSuffix(body, "\n"))

	empty, err := catalog.Marshal(&catalog.Catalog{}, 2)
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"categories": []`)
}

func TestWriteFailsWhileLocked(t *testing.T) {
	out := filepath.Join(t.TempDir(), "videos.json")
	held := flock.New(catalog.LockPath(out))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = held.Unlock() })

	err = catalog.Write(out, &catalog.Catalog{}, 2)
	require.ErrorIs(t, err, catalog.ErrLocked)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadRoundTripAndSummarize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "videos.json")
	cat := &catalog.Catalog{
		Channel: channel.Ref{Name: "KB", ID: "UCx"},
		Categories: []catalog.Category{
			{ID: "PL1", Title: "One", Videos: []youtube.Video{
				{ID: "a", PublishedAt: strPtr("2024-01-01T00:00:00Z")},
				{ID: "b", PublishedAt: strPtr("2024-05-01T00:00:00Z")},
			}},
			{ID: "PL2", Title: "Two", Videos: []youtube.Video{{ID: "c"}}},
		},
		GeneratedAt: "2025-01-01T00:00:00Z",
	}
	require.NoError(t, catalog.Write(out, cat, 2))

	loaded, err := catalog.Read(out)
	require.NoError(t, err)
	assert.Equal(t, cat, loaded)

	summary := catalog.Summarize(loaded)
	assert.Equal(t, 3, summary.Videos)
	assert.Equal(t, 2, summary.Categories)
	assert.Equal(t, "2024-05-01T00:00:00Z", summary.PerCategory[0].Newest)
	assert.Empty(t, summary.PerCategory[1].Newest)

	_, err = catalog.Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

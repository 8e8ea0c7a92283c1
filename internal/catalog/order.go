package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ytcatalog/internal/textutil"
	"ytcatalog/internal/youtube"
)

// SortVideos orders videos newest first by publishedAt. Videos without a
// publish time sort last. Equal timestamps keep playlist order (lower
// position first; a missing position counts as 0).
func SortVideos(videos []youtube.Video) {
	slices.SortStableFunc(videos, func(a, b youtube.Video) int {
		if c := strings.Compare(published(b), published(a)); c != 0 {
			return c
		}
		return cmp.Compare(position(a), position(b))
	})
}

// SortCategories orders categories by lowercased title using root-locale
// collation, falling back to the raw title and then the playlist id.
func SortCategories(categories []Category) {
	coll := collate.New(language.Und)
	slices.SortStableFunc(categories, func(a, b Category) int {
		if c := coll.CompareString(textutil.Lower(a.Title), textutil.Lower(b.Title)); c != 0 {
			return c
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func published(v youtube.Video) string {
	if v.PublishedAt == nil {
		return ""
	}
	return *v.PublishedAt
}

func position(v youtube.Video) int64 {
	if v.Position == nil {
		return 0
	}
	return *v.Position
}

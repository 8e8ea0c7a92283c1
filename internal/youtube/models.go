package youtube

import "fmt"

// ChannelHit is one channel returned by a search.
type ChannelHit struct {
	ID          string
	Title       string
	Description string
}

// Playlist is a channel playlist. It is not serialized into the catalog.
type Playlist struct {
	ID          string
	Title       string
	Description string
	ItemCount   int64
}

// Video is a playlist entry as published in the catalog file.
type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PublishedAt *string `json:"publishedAt"`
	Thumbnail   string  `json:"thumbnail"`
	Position    *int64  `json:"position"`
}

// FallbackThumbnail is used when an item carries no thumbnail of any size.
func FallbackThumbnail(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

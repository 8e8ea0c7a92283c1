package catalog

import (
	"ytcatalog/internal/channel"
	"ytcatalog/internal/youtube"
)

// TimeLayout is the generatedAt format: UTC with whole seconds.
const TimeLayout = "2006-01-02T15:04:05Z"

// Catalog is the document written to the output file.
type Catalog struct {
	Channel     channel.Ref `json:"channel"`
	Categories  []Category  `json:"categories"`
	GeneratedAt string      `json:"generatedAt"`
}

// Category is one playlist and its videos.
type Category struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Videos []youtube.Video `json:"videos"`
}

// VideoCount returns the number of videos across all categories.
func (c *Catalog) VideoCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Videos)
	}
	return total
}

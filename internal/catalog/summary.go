package catalog

import "fmt"

// Summary condenses a catalog for display.
type Summary struct {
	ChannelName string            `json:"channel_name"`
	ChannelID   string            `json:"channel_id"`
	GeneratedAt string            `json:"generated_at"`
	Videos      int               `json:"videos"`
	Categories  int               `json:"categories"`
	PerCategory []CategorySummary `json:"per_category"`
}

// CategorySummary describes one category of a Summary.
type CategorySummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Videos int    `json:"videos"`
	Newest string `json:"newest,omitempty"`
}

// Summarize counts videos and categories and records each category's newest
// upload.
func Summarize(c *Catalog) Summary {
	if c == nil {
		return Summary{PerCategory: []CategorySummary{}}
	}
	s := Summary{
		ChannelName: c.Channel.Name,
		ChannelID:   c.Channel.ID,
		GeneratedAt: c.GeneratedAt,
		Videos:      c.VideoCount(),
		Categories:  len(c.Categories),
		PerCategory: make([]CategorySummary, 0, len(c.Categories)),
	}
	for _, cat := range c.Categories {
		entry := CategorySummary{ID: cat.ID, Title: cat.Title, Videos: len(cat.Videos)}
		for _, v := range cat.Videos {
			if p := published(v); p > entry.Newest {
				entry.Newest = p
			}
		}
		s.PerCategory = append(s.PerCategory, entry)
	}
	return s
}

// CompletionMessage is the line printed after a successful write.
func CompletionMessage(path string, c *Catalog) string {
	return fmt.Sprintf("Wrote %s with %d videos across %d categories.", path, c.VideoCount(), len(c.Categories))
}

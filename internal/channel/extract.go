package channel

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	idPattern = regexp.MustCompile(`^UC[0-9A-Za-z_-]{20,}$`)

	embeddedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"channelId":"(UC[0-9A-Za-z_-]{20,})"`),
		regexp.MustCompile(`"externalId":"(UC[0-9A-Za-z_-]{20,})"`),
		regexp.MustCompile(`/[cC]hannel/(UC[0-9A-Za-z_-]{20,})`),
	}
)

// LooksLikeID reports whether value has the shape of a channel id.
func LooksLikeID(value string) bool {
	return idPattern.MatchString(strings.TrimSpace(value))
}

// ExtractID finds a channel id in a youtube.com page. Structured markup is
// consulted first; the embedded player JSON and channel links are the fallback.
func ExtractID(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	if id := extractFromMarkup(string(body)); id != "" {
		return id
	}
	return extractFromText(string(body))
}

func extractFromMarkup(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var id string
	doc.Find("meta[itemprop=channelId], meta[itemprop=identifier]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if content, ok := s.Attr("content"); ok && LooksLikeID(content) {
			id = strings.TrimSpace(content)
			return false
		}
		return true
	})
	if id != "" {
		return id
	}

	doc.Find("link[rel=canonical], meta[property='og:url']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		ref, ok := s.Attr("href")
		if !ok {
			ref, ok = s.Attr("content")
		}
		if ok {
			id = extractFromText(ref)
		}
		return id == ""
	})
	return id
}

func extractFromText(body string) string {
	for _, re := range embeddedPatterns {
		if m := re.FindStringSubmatch(body); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

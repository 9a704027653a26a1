package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// rss2jsonResponse is the envelope returned by rss2json-style proxies
type rss2jsonResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Feed    struct {
		Title string `json:"title"`
	} `json:"feed"`
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
		Description string `json:"description"`
		Content     string `json:"content"`
	} `json:"items"`
}

// pubDateLayouts are tried in order for dates that came as plain strings
var pubDateLayouts = []string{
	"2006-01-02 15:04:05", // rss2json, UTC
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// parseRSS decodes RSS/Atom document with gofeed
func parseRSS(body io.Reader) ([]domain.RawItem, error) {
	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := domain.RawItem{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.Published,
			Description: item.Description,
			Content:     item.Content,
			FeedTitle:   feed.Title,
		}
		switch {
		case item.PublishedParsed != nil:
			raw.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			raw.Published = *item.UpdatedParsed
			raw.PubDate = item.Updated
		}
		items = append(items, raw)
	}
	return items, nil
}

// parseRSS2JSON decodes the JSON proxy envelope
func parseRSS2JSON(body io.Reader) ([]domain.RawItem, error) {
	var resp rss2jsonResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode rss2json: %w", err)
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, fmt.Errorf("rss2json status %q: %s", resp.Status, resp.Message)
	}

	items := make([]domain.RawItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, domain.RawItem{
			Title:       it.Title,
			Link:        it.Link,
			PubDate:     it.PubDate,
			Published:   ParseDate(it.PubDate),
			Description: it.Description,
			Content:     it.Content,
			FeedTitle:   resp.Feed.Title,
		})
	}
	return items, nil
}

// ParseDate parses publication date in one of the common feed formats, zero time if none fits
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Package normalize maps heterogeneous source items into the common item shape.
// It strips markup, bounds summaries and maps source-specific importance vocabularies
// onto the unified low/medium/high levels.
package normalize

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// DefaultSummaryLen is the summary budget used when none is configured
const DefaultSummaryLen = 120

const ellipsis = "..."

var strictPolicy = bluemonday.StrictPolicy()

// Normalize converts a raw source item into an Item. Returns false if the item has no usable headline.
func Normalize(raw domain.RawItem, src domain.Source, summaryLen int) (domain.Item, bool) {
	headline := Text(raw.Title)
	if headline == "" {
		return domain.Item{}, false
	}
	if summaryLen <= 0 {
		summaryLen = DefaultSummaryLen
	}

	desc := raw.Description
	if strings.TrimSpace(desc) == "" {
		desc = raw.Content
	}

	return domain.Item{
		Headline:  headline,
		Link:      strings.TrimSpace(raw.Link),
		Published: raw.Published,
		PubDate:   raw.PubDate,
		Summary:   Truncate(Text(desc), summaryLen),
		Source:    src.DisplayName(raw.FeedTitle),
	}, true
}

// Text strips markup, decodes entities and collapses whitespace
func Text(s string) string {
	if s == "" {
		return ""
	}
	// sanitizer escapes text nodes, decode them back to plain text
	plain := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(plain), " ")
}

// Truncate cuts s to n runes and appends an ellipsis if anything was cut
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), " ") + ellipsis
}

// TimeAgo formats elapsed time since published in the short dashboard form, empty for unknown time
func TimeAgo(now, published time.Time) string {
	if published.IsZero() {
		return ""
	}
	minutes := int(now.Sub(published).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hr ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

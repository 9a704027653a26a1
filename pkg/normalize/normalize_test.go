package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

func TestNormalize(t *testing.T) {
	pub := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	src := domain.Source{URL: "https://example.com/rss", Name: "CNBC"}

	t.Run("valid item", func(t *testing.T) {
		raw := domain.RawItem{
			Title:       "  Fed <b>holds</b> rates  ",
			Link:        " https://example.com/a ",
			PubDate:     "Sun, 18 Oct 2026 10:00:00 GMT",
			Published:   pub,
			Description: "<p>Markets &amp; bonds&nbsp;rally</p>",
		}
		item, ok := Normalize(raw, src, 120)
		require.True(t, ok)
		assert.Equal(t, "Fed holds rates", item.Headline)
		assert.Equal(t, "https://example.com/a", item.Link)
		assert.Equal(t, "Markets & bonds rally", item.Summary)
		assert.Equal(t, "CNBC", item.Source)
		assert.Equal(t, pub, item.Published)
		assert.Equal(t, "Sun, 18 Oct 2026 10:00:00 GMT", item.PubDate)
	})

	t.Run("empty headline dropped", func(t *testing.T) {
		_, ok := Normalize(domain.RawItem{Title: "  <br/> "}, src, 120)
		assert.False(t, ok)
	})

	t.Run("summary falls back to content and is truncated", func(t *testing.T) {
		raw := domain.RawItem{Title: "title", Content: strings.Repeat("a", 300)}
		item, ok := Normalize(raw, src, 200)
		require.True(t, ok)
		assert.Equal(t, strings.Repeat("a", 200)+"...", item.Summary)
	})

	t.Run("source name from feed title", func(t *testing.T) {
		item, ok := Normalize(domain.RawItem{Title: "title", FeedTitle: "BBC Business"}, domain.Source{URL: "u"}, 0)
		require.True(t, ok)
		assert.Equal(t, "BBC Business", item.Source)
	})

	t.Run("unknown source", func(t *testing.T) {
		item, ok := Normalize(domain.RawItem{Title: "title"}, domain.Source{URL: "u"}, 0)
		require.True(t, ok)
		assert.Equal(t, "Unknown", item.Source)
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello..."},
		{"runes", "привет мир", 6, "привет..."},
		{"zero limit", "hello", 0, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{5 * time.Minute, "5 min ago"},
		{59 * time.Minute, "59 min ago"},
		{2 * time.Hour, "2 hr ago"},
		{23*time.Hour + 59*time.Minute, "23 hr ago"},
		{25 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
		{-time.Hour, "0 min ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now, now.Add(-tt.ago)), "ago %v", tt.ago)
	}
	assert.Empty(t, TimeAgo(now, time.Time{}))
}

func TestImportance(t *testing.T) {
	tests := []struct {
		vocab, raw string
		want       domain.Importance
	}{
		{VocabFCS, "3", domain.ImportanceHigh},
		{VocabFCS, "2", domain.ImportanceMedium},
		{VocabFCS, "1", domain.ImportanceMedium},
		{VocabFCS, "0", domain.ImportanceLow},
		{VocabFCS, "", domain.ImportanceLow},
		{VocabForexFactory, "3", domain.ImportanceHigh},
		{VocabForexFactory, "4", domain.ImportanceHigh},
		{VocabForexFactory, "2", domain.ImportanceMedium},
		{VocabForexFactory, "1", domain.ImportanceLow},
		{VocabText, "HIGH", domain.ImportanceHigh},
		{VocabText, " Medium ", domain.ImportanceMedium},
		{VocabText, "low", domain.ImportanceLow},
		{VocabText, "2", domain.ImportanceMedium},
		{VocabText, "bogus", domain.ImportanceLow},
		{"unknown-vocab", "high", domain.ImportanceHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Importance(tt.vocab, tt.raw), "%s/%q", tt.vocab, tt.raw)
	}
}

func TestRules_Merge(t *testing.T) {
	rules := DefaultRules().Merge(Rules{VocabFCS: {High: 2, Medium: 1}})
	assert.Equal(t, domain.ImportanceHigh, rules.Importance(VocabFCS, "2"))
	assert.Equal(t, domain.ImportanceHigh, rules.Importance(VocabForexFactory, "3"))

	// defaults untouched
	assert.Equal(t, domain.ImportanceMedium, Importance(VocabFCS, "2"))
}

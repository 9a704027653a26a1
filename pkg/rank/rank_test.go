package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

func scored(headline string, composite float64) domain.ScoredItem {
	return domain.ScoredItem{Item: domain.Item{Headline: headline}, Composite: composite}
}

func headlines(items []domain.ScoredItem) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, it.Headline)
	}
	return res
}

func TestRank_ByScore(t *testing.T) {
	items := []domain.ScoredItem{
		scored("b", 5), scored("a", 8), scored("c", 5), scored("d", 9), scored("e", 2),
	}
	res := Rank(items, Options{})
	assert.Equal(t, []string{"d", "a", "b", "c", "e"}, headlines(res), "ties keep input order")

	res = Rank(items, Options{Limit: 2})
	assert.Equal(t, []string{"d", "a"}, headlines(res))

	res = Rank(items, Options{MinScore: 5})
	assert.Equal(t, []string{"d", "a", "b", "c"}, headlines(res))
}

func TestRank_ByDate(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	items := []domain.ScoredItem{
		{Item: domain.Item{Headline: "unknown"}},
		{Item: domain.Item{Headline: "old", Published: now.Add(-5 * time.Hour)}},
		{Item: domain.Item{Headline: "new", Published: now.Add(-time.Hour)}},
		{Item: domain.Item{Headline: "unknown2"}},
	}
	res := Rank(items, Options{ByDate: true})
	assert.Equal(t, []string{"new", "old", "unknown", "unknown2"}, headlines(res))
}

func TestRank_Dedupe(t *testing.T) {
	items := []domain.ScoredItem{
		scored("Fed Raises Rates By 0.25% In Surprise Move Amid Inflation Fears", 6),
		scored("FED RAISES RATES BY 0.25% IN SURPRISE MOVE AMID INFLATION FEARS, again", 7),
		scored("Stocks rally", 4),
	}
	res := Rank(items, Options{})
	require.Len(t, res, 2)
	assert.Equal(t, "FED RAISES RATES BY 0.25% IN SURPRISE MOVE AMID INFLATION FEARS, again", res[0].Headline,
		"first in ranked order survives")
	assert.Equal(t, "Stocks rally", res[1].Headline)
}

func TestRank_DedupeShortHeadlines(t *testing.T) {
	items := []domain.ScoredItem{
		scored("Fed Raises Rates By 0.25%", 5),
		scored("Fed Raises Rates By 0.25% Again", 5),
		scored("Stocks", 4),
		scored("Stocks rally on earnings", 3),
	}
	res := Rank(items, Options{})
	assert.Equal(t, []string{"Fed Raises Rates By 0.25%", "Stocks", "Stocks rally on earnings"}, headlines(res),
		"short headline prefix of a longer one is a duplicate, too short prefixes are not")

	// reversed order, the longer one comes first and wins
	res = Rank([]domain.ScoredItem{items[1], items[0]}, Options{})
	require.Len(t, res, 1)
	assert.Equal(t, "Fed Raises Rates By 0.25% Again", res[0].Headline)

	// kept headline longer than the prefix, later short headline starting it is still a duplicate
	long := scored("Fed Raises Rates By 0.25% Again As Inflation Persists Across Global Markets", 9)
	shorter := scored("Fed Raises Rates By 0.25% Again As Inflation", 2)
	res = Rank([]domain.ScoredItem{long, shorter}, Options{})
	assert.Equal(t, []string{long.Headline}, headlines(res), "long first")
	res = Rank([]domain.ScoredItem{shorter, long}, Options{ByDate: true})
	assert.Equal(t, []string{shorter.Headline}, headlines(res), "short first")
}

func TestHeadlineKey(t *testing.T) {
	assert.Equal(t, "abc", HeadlineKey("  ABC ", 0))
	assert.Equal(t, "ab", HeadlineKey("ABC", 2))
	assert.Len(t, []rune(HeadlineKey(string(make([]rune, 100)), 0)), 50)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, Options{Limit: 10}))
}

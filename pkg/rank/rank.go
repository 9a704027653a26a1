// Package rank filters, orders, deduplicates and truncates scored items.
package rank

import (
	"sort"
	"strings"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// DefaultPrefixLen is the headline prefix length used for duplicate detection
const DefaultPrefixLen = 50

// Options controls ranking
type Options struct {
	Limit     int     // max items returned, 0 means unlimited
	MinScore  float64 // items with lower composite score are dropped, 0 disables
	ByDate    bool    // order by publication time instead of composite score
	PrefixLen int     // headline prefix length for dedupe, defaults to DefaultPrefixLen
}

// Rank filters by minimum score, sorts (stable, ties keep input order), removes near-duplicate
// headlines keeping the first in ranked order and truncates to the limit.
func Rank(items []domain.ScoredItem, opts Options) []domain.ScoredItem {
	res := make([]domain.ScoredItem, 0, len(items))
	for _, it := range items {
		if opts.MinScore > 0 && it.Composite < opts.MinScore {
			continue
		}
		res = append(res, it)
	}

	if opts.ByDate {
		sort.SliceStable(res, func(i, j int) bool { return newer(res[i].Item, res[j].Item) })
	} else {
		sort.SliceStable(res, func(i, j int) bool { return res[i].Composite > res[j].Composite })
	}

	res = Dedupe(res, opts.PrefixLen)

	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}
	return res
}

// Dedupe removes items whose headline matches an earlier one. Headlines match when their keys are
// equal, or when the shorter key (at least half of the prefix long) starts the other one, whichever comes first.
func Dedupe(items []domain.ScoredItem, prefixLen int) []domain.ScoredItem {
	if prefixLen <= 0 {
		prefixLen = DefaultPrefixLen
	}
	seen := make(map[string]struct{}, len(items))
	var kept []string
	res := items[:0:0]
	for _, it := range items {
		key := HeadlineKey(it.Headline, prefixLen)
		if _, ok := seen[key]; ok || matchesPrefix(key, kept, prefixLen) {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, key)
		res = append(res, it)
	}
	return res
}

// matchesPrefix checks key against kept keys in both directions
func matchesPrefix(key string, kept []string, prefixLen int) bool {
	minLen := prefixLen / 2
	keyLen := len([]rune(key))
	for _, k := range kept {
		kLen := len([]rune(k))
		switch {
		case kLen >= minLen && kLen < keyLen && strings.HasPrefix(key, k):
			return true
		case keyLen >= minLen && keyLen < kLen && strings.HasPrefix(k, key):
			return true
		}
	}
	return false
}

// HeadlineKey returns the case-insensitive headline prefix used to detect duplicates
func HeadlineKey(headline string, prefixLen int) string {
	if prefixLen <= 0 {
		prefixLen = DefaultPrefixLen
	}
	runes := []rune(strings.ToLower(strings.TrimSpace(headline)))
	if len(runes) > prefixLen {
		runes = runes[:prefixLen]
	}
	return string(runes)
}

// newer reports whether a sorts before b by date, unknown dates last
func newer(a, b domain.Item) bool {
	switch {
	case a.Published.IsZero():
		return false
	case b.Published.IsZero():
		return true
	default:
		return a.Published.After(b.Published)
	}
}

package domain

import "time"

// RawItem represents an item as returned by a source, before normalization
type RawItem struct {
	Title       string
	Link        string
	PubDate     string    // publication date as provided by the source
	Published   time.Time // parsed publication time, zero if unknown
	Description string
	Content     string
	FeedTitle   string // title reported by the feed itself
}

// Item represents a normalized news article
type Item struct {
	Headline  string
	Link      string
	Published time.Time // zero means unknown, sorts last
	PubDate   string    // original publication date string
	Summary   string
	Source    string
}

// ScoredItem represents an item with its score breakdown
type ScoredItem struct {
	Item
	Recency    float64
	Reputation float64
	Relevance  float64
	Composite  float64
}

// Importance is the unified importance level of calendar events
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Rank returns numeric order of importance, higher is more important
func (i Importance) Rank() int {
	switch i {
	case ImportanceHigh:
		return 3
	case ImportanceMedium:
		return 2
	case ImportanceLow:
		return 1
	}
	return 0
}

// ParseImportance converts a configured level name to Importance, defaults to low
func ParseImportance(s string) Importance {
	switch Importance(s) {
	case ImportanceHigh, ImportanceMedium:
		return Importance(s)
	}
	return ImportanceLow
}

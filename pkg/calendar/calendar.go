// Package calendar fetches economic calendar events from FCS API and Forex Factory.
package calendar

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// DefaultTimeout is the calendar request timeout
const DefaultTimeout = 10 * time.Second

const (
	timeTBD    = "TBD"
	timeAllDay = "All Day"
)

var (
	// ErrNoAPIKey returned when the provider requires a key and none configured
	ErrNoAPIKey = errors.New("api key not configured")
	// ErrRateLimited returned when the provider reports exhausted quota
	ErrRateLimited = errors.New("api limit reached")
	// ErrEmpty returned when nothing survived filtering
	ErrEmpty = errors.New("no events")
)

// timedEvent keeps the instant next to the formatted event for sorting
type timedEvent struct {
	at    time.Time
	event domain.Event
}

// sortEvents orders events by time, unknown times go last, and applies the limit
func sortEvents(events []timedEvent, limit int) []domain.Event {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].at, events[j].at
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		}
		return a.Before(b)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	res := make([]domain.Event, 0, len(events))
	for _, e := range events {
		res = append(res, e.event)
	}
	return res
}

// passes reports whether the event importance is at or above the minimum level
func passes(imp, minImportance domain.Importance) bool {
	return imp.Rank() >= minImportance.Rank()
}

func orClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{}
}

func orTimeout(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return DefaultTimeout
}

package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/normalize"
)

const (
	fcsDateLayout = "2006-01-02 15:04:05"
	dayLayout     = "2006-01-02"
	fcsLimitCode  = "211"
)

// FCS fetches today's economic events from fcsapi.com economy calendar
type FCS struct {
	FCSParams
	now func() time.Time
}

// FCSParams defines FCS provider parameters
type FCSParams struct {
	BaseURL       string
	APIKey        string
	Location      *time.Location // event times are formatted in this zone
	MinImportance domain.Importance
	Rules         normalize.Rules
	Limit         int
	Timeout       time.Duration
	Client        *http.Client
}

type fcsResponse struct {
	Status   bool       `json:"status"`
	Code     flexString `json:"code"`
	Msg      string     `json:"msg"`
	Response []fcsEvent `json:"response"`
}

type fcsEvent struct {
	Date       string     `json:"date"`
	Title      string     `json:"title"`
	Currency   string     `json:"currency"`
	Importance flexString `json:"importance"`
	Actual     flexString `json:"actual"`
	Forecast   flexString `json:"forecast"`
	Previous   flexString `json:"previous"`
}

// flexString accepts both JSON strings and numbers, FCS mixes them freely
type flexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexString(str)
		return nil
	}
	*f = flexString(s)
	return nil
}

// NewFCS makes FCS provider with defaults applied
func NewFCS(p FCSParams) *FCS {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.Rules == nil {
		p.Rules = normalize.DefaultRules()
	}
	if p.MinImportance == "" {
		p.MinImportance = domain.ImportanceMedium
	}
	p.Timeout = orTimeout(p.Timeout)
	p.Client = orClient(p.Client)
	return &FCS{FCSParams: p, now: time.Now}
}

// Day returns the current calendar day the provider reports on
func (f *FCS) Day() string {
	return f.now().UTC().Format(dayLayout)
}

// Events returns today's events at or above the minimum importance, sorted by time
func (f *FCS) Events(ctx context.Context) ([]domain.Event, error) {
	if f.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	now := f.now().UTC()
	today := now.Format(dayLayout)

	q := url.Values{}
	q.Set("access_key", f.APIKey)
	q.Set("from", today)
	q.Set("to", now.AddDate(0, 0, 2).Format(dayLayout))

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fcs calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fcs calendar: unexpected status code: %d", resp.StatusCode)
	}

	var data fcsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("fcs calendar: decode response: %w", err)
	}
	if !data.Status || string(data.Code) == fcsLimitCode {
		lgr.Printf("[WARN] fcs calendar refused request, code %s: %s", data.Code, data.Msg)
		return nil, ErrRateLimited
	}

	events := make([]timedEvent, 0, len(data.Response))
	for _, e := range data.Response {
		if !strings.HasPrefix(strings.TrimSpace(e.Date), today) {
			continue
		}
		imp := f.Rules.Importance(normalize.VocabFCS, string(e.Importance))
		if !passes(imp, f.MinImportance) {
			continue
		}
		at, formatted := f.formatTime(e.Date)
		title := normalize.Text(e.Title)
		if title == "" {
			title = "Economic Event"
		}
		events = append(events, timedEvent{at: at, event: domain.Event{
			Time:       formatted,
			Title:      title,
			Currency:   strings.TrimSpace(e.Currency),
			Importance: imp,
			Actual:     strings.TrimSpace(string(e.Actual)),
			Forecast:   strings.TrimSpace(string(e.Forecast)),
			Previous:   strings.TrimSpace(string(e.Previous)),
		}})
	}
	if len(events) == 0 {
		return nil, ErrEmpty
	}
	return sortEvents(events, f.Limit), nil
}

// formatTime parses FCS UTC timestamp and formats it like "8:30 AM" in provider location
func (f *FCS) formatTime(s string) (time.Time, string) {
	t, err := time.ParseInLocation(fcsDateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, timeTBD
	}
	return t, t.In(f.Location).Format("3:04 PM")
}

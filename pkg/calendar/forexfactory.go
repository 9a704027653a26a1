package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html"

	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/normalize"
)

const (
	maxPageSize  = 5 * 1024 * 1024
	impactPrefix = "icon--ff-impact-"
)

// impactColors maps single coloured impact icon to the icon count it stands for
var impactColors = map[string]int{"red": 3, "ora": 2, "yel": 1, "gra": 0}

var ffTimeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(am|pm)$`)

// ForexFactory scrapes this week's calendar page from forexfactory.com
type ForexFactory struct {
	ForexFactoryParams
}

// ForexFactoryParams defines scraper parameters
type ForexFactoryParams struct {
	URL           string
	MinImportance domain.Importance
	Rules         normalize.Rules
	Limit         int
	Timeout       time.Duration
	Client        *http.Client
}

// NewForexFactory makes scraper with defaults applied
func NewForexFactory(p ForexFactoryParams) *ForexFactory {
	if p.Rules == nil {
		p.Rules = normalize.DefaultRules()
	}
	if p.MinImportance == "" {
		p.MinImportance = domain.ImportanceMedium
	}
	p.Timeout = orTimeout(p.Timeout)
	p.Client = orClient(p.Client)
	return &ForexFactory{ForexFactoryParams: p}
}

// Events downloads and parses the calendar page
func (f *ForexFactory) Events(ctx context.Context) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, referer(f.URL))

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forex factory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("forex factory: unexpected status code: %d", resp.StatusCode)
	}

	events, err := f.Parse(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("forex factory: %w", err)
	}
	lgr.Printf("[DEBUG] parsed %d events from forex factory", len(events))
	if len(events) == 0 {
		return nil, ErrEmpty
	}
	return events, nil
}

// Parse extracts events from calendar page html
func (f *ForexFactory) Parse(r io.Reader) ([]domain.Event, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var events []domain.Event
	lastTime := ""
	for _, row := range findAll(doc, func(n *html.Node) bool { return n.Data == "tr" && hasClassPrefix(n, "calendar__row") }) {
		if hasClassPrefix(row, "calendar__row--day-breaker") || hasClassPrefix(row, "newday") {
			continue
		}

		if cell := findFirst(row, classPrefix("calendar__time")); cell != nil {
			if t := strings.TrimSpace(textOf(cell)); t != "" {
				lastTime = t
			}
		}

		title := ""
		if cell := findFirst(row, classPrefix("calendar__event-title")); cell != nil {
			title = normalize.Text(textOf(cell))
		}
		if title == "" {
			continue
		}

		imp := f.Rules.Importance(normalize.VocabForexFactory, strconv.Itoa(impactLevel(row)))
		if !passes(imp, f.MinImportance) {
			continue
		}

		currency := "USD"
		if cell := findFirst(row, classPrefix("calendar__currency")); cell != nil {
			if c := strings.TrimSpace(textOf(cell)); c != "" {
				currency = c
			}
		}

		events = append(events, domain.Event{
			Time:       formatFFTime(lastTime),
			Title:      title,
			Currency:   currency,
			Importance: imp,
			Forecast:   cellText(row, "calendar__forecast"),
			Previous:   cellText(row, "calendar__previous"),
			Actual:     cellText(row, "calendar__actual"),
		})
		if f.Limit > 0 && len(events) >= f.Limit {
			break
		}
	}
	return events, nil
}

// impactLevel counts impact icons in the row, a single coloured icon maps by its colour
func impactLevel(row *html.Node) int {
	var suffixes []string
	for _, n := range findAll(row, classPrefix(impactPrefix)) {
		for _, c := range classes(n) {
			if strings.HasPrefix(c, impactPrefix) {
				suffixes = append(suffixes, strings.TrimPrefix(c, impactPrefix))
				break
			}
		}
	}
	if len(suffixes) == 1 {
		if lvl, ok := impactColors[suffixes[0]]; ok {
			return lvl
		}
	}
	return len(suffixes)
}

// formatFFTime converts "12:30am" to "12:30 AM", empty and tentative times become "All Day"
func formatFFTime(s string) string {
	cleaned := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch cleaned {
	case "", "allday", "tentative":
		return timeAllDay
	}
	if m := ffTimeRe.FindStringSubmatch(cleaned); m != nil {
		return m[1] + ":" + m[2] + " " + strings.ToUpper(m[3])
	}
	return strings.TrimSpace(s)
}

func referer(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}

func cellText(row *html.Node, class string) string {
	if cell := findFirst(row, classPrefix(class)); cell != nil {
		return strings.TrimSpace(textOf(cell))
	}
	return ""
}

func classes(n *html.Node) []string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}

func hasClassPrefix(n *html.Node, prefix string) bool {
	for _, c := range classes(n) {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func classPrefix(prefix string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && hasClassPrefix(n, prefix) }
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var res []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			res = append(res, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return res
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if n := findFirst(c, match); n != nil {
			return n
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

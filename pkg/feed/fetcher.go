// Package feed fetches news sources concurrently. A failing source never fails the batch,
// it just contributes no items.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// DefaultTimeout is the per-source fetch timeout
const DefaultTimeout = 10 * time.Second

// maxBodySize limits how much of a feed response is read
const maxBodySize = 10 * 1024 * 1024

// Fetcher retrieves and decodes news sources
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	apiKey    string // rss2json api key, optional
}

// Params defines fetcher parameters
type Params struct {
	Timeout     time.Duration
	UserAgent   string
	RSS2JSONKey string
	Client      *http.Client
}

// Result is the outcome of fetching a single source
type Result struct {
	Source domain.Source
	Items  []domain.RawItem
	Err    error
}

// NewFetcher makes a fetcher with defaults for empty params
func NewFetcher(p Params) *Fetcher {
	res := &Fetcher{client: p.Client, timeout: p.Timeout, userAgent: p.UserAgent, apiKey: p.RSS2JSONKey}
	if res.timeout <= 0 {
		res.timeout = DefaultTimeout
	}
	if res.userAgent == "" {
		res.userAgent = DefaultUserAgent
	}
	if res.client == nil {
		res.client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return res
}

// Fetch returns items of a single source. Any failure is logged and results in empty list.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) []domain.RawItem {
	items, err := f.fetch(ctx, src)
	if err != nil {
		lgr.Printf("[WARN] can't fetch %s: %v", sourceLabel(src), err)
		return []domain.RawItem{}
	}
	return items
}

// FetchAll fetches all sources concurrently and waits for every one of them.
// Results are in the same order as sources.
func (f *Fetcher) FetchAll(ctx context.Context, sources []domain.Source) []Result {
	results := make([]Result, len(sources))
	var g errgroup.Group // no fail-fast, errors are kept per source
	for i, src := range sources {
		g.Go(func() error {
			items, err := f.fetch(ctx, src)
			if err != nil {
				lgr.Printf("[WARN] can't fetch %s: %v", sourceLabel(src), err)
			}
			results[i] = Result{Source: src, Items: items, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Successes returns items of successful results, in source order
func Successes(results []Result) []domain.RawItem {
	var res []domain.RawItem
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		res = append(res, r.Items...)
	}
	return res
}

func (f *Fetcher) fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	reqURL, kind := src.URL, "xml"
	if src.Kind == domain.SourceRSS2JSON {
		kind = "json"
		if f.apiKey != "" {
			u, err := url.Parse(src.URL)
			if err != nil {
				return nil, fmt.Errorf("parse url: %w", err)
			}
			q := u.Query()
			q.Set("api_key", f.apiKey)
			u.RawQuery = q.Encode()
			reqURL = u.String()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req, kind)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxBodySize)
	if src.Kind == domain.SourceRSS2JSON {
		return parseRSS2JSON(body)
	}
	return parseRSS(body)
}

// sourceLabel names the source in logs without leaking query strings
func sourceLabel(src domain.Source) string {
	if src.Name != "" {
		return src.Name
	}
	if u, err := url.Parse(src.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return src.ID
}

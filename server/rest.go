package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/tickerwire/tickerwire/pkg/aggregator"
	"github.com/tickerwire/tickerwire/pkg/cache"
	"github.com/tickerwire/tickerwire/pkg/calendar"
	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/normalize"
	"github.com/tickerwire/tickerwire/pkg/rank"
	"github.com/tickerwire/tickerwire/pkg/scheduler"
)

// cache keys, calendar key gets the reported day appended
const (
	keyNews         = "news"
	keyWorld        = "world"
	keyStocks       = "stocks"
	keyCrypto       = "crypto"
	keyCalendarPref = "calendar:"
	keyForexFactory = "forex-factory"
)

var errAllSourcesFailed = errors.New("all news sources failed")

// article is the news item as returned to the dashboard
type article struct {
	Headline  string     `json:"headline"`
	Summary   string     `json:"summary"`
	Source    string     `json:"source"`
	Link      string     `json:"link"`
	PubDate   string     `json:"pubDate,omitempty"`
	TimeAgo   string     `json:"timeAgo"`
	Score     float64    `json:"score,omitempty"`
	Breakdown *breakdown `json:"breakdown,omitempty"`
}

type breakdown struct {
	Recency    float64 `json:"recency"`
	Relevance  float64 `json:"relevance"`
	Reputation float64 `json:"reputation"`
}

// newsPayload is the cached part of the news response, articles are rendered at refresh time
type newsPayload struct {
	Articles []article `json:"articles"`
	Total    int       `json:"total"`
	Sources  int       `json:"sources"`
}

// worldPayload keeps all world articles newest first, the country filter is applied per request
type worldPayload struct {
	Articles []article `json:"articles"`
}

type newsResponse struct {
	Articles []article `json:"articles"`
	Total    int       `json:"total"`
	Sources  int       `json:"sources"`
	Cached   bool      `json:"cached,omitempty"`
	Stale    bool      `json:"stale,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type worldNewsResponse struct {
	Country  string    `json:"country"`
	Articles []article `json:"articles"`
	Count    int       `json:"count"`
	Cached   bool      `json:"cached,omitempty"`
	Stale    bool      `json:"stale,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type quotesResponse struct {
	Data     []domain.Quote `json:"data"`
	Cached   bool           `json:"cached,omitempty"`
	Stale    bool           `json:"stale,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type calendarResponse struct {
	Events   []domain.Event `json:"events"`
	Date     string         `json:"date"`
	Cached   bool           `json:"cached,omitempty"`
	Stale    bool           `json:"stale,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`
	Note     string         `json:"note,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type forexFactoryResponse struct {
	Events    []domain.Event `json:"events"`
	Cached    bool           `json:"cached"`
	Stale     bool           `json:"stale,omitempty"`
	Source    string         `json:"source"`
	FetchedAt string         `json:"fetchedAt,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    s.now().UTC(),
	}
	rest.RenderJSON(w, status)
}

// newsHandler returns scored and ranked articles from all configured news sources
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetNewsConfig()
	ctx := context.WithoutCancel(r.Context())

	res := cache.GetOrRefresh(ctx, s.cache, keyNews, cfg.TTL, s.refreshNews, func() newsPayload {
		return newsPayload{Articles: []article{}, Sources: len(cfg.Sources)}
	})

	resp := newsResponse{
		Articles: res.Value.Articles,
		Total:    res.Value.Total,
		Sources:  res.Value.Sources,
		Cached:   res.Cached,
		Stale:    res.Stale,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	setCacheControl(w, 5*time.Minute, 10*time.Minute)
	rest.RenderJSON(w, resp)
}

func (s *Server) refreshNews(ctx context.Context) (newsPayload, error) {
	cfg := s.config.GetNewsConfig()
	resp := s.news.Run(ctx, aggregator.Request{
		Sources:    cfg.Sources,
		SummaryLen: cfg.SummaryLen,
		Score:      true,
		Rank:       rank.Options{Limit: cfg.Limit, MinScore: cfg.MinScore},
	})
	if resp.Sources > 0 && resp.Failed == resp.Sources {
		return newsPayload{}, errAllSourcesFailed
	}
	return newsPayload{Articles: s.articles(resp.Items, true), Total: resp.Total, Sources: resp.Sources}, nil
}

// worldNewsHandler returns the latest articles mentioning the requested country
func (s *Server) worldNewsHandler(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, errors.New("missing country"), "country parameter is required")
		return
	}

	cfg := s.config.GetWorldConfig()
	ctx := context.WithoutCancel(r.Context())
	match := aggregator.CountryMatcher(country, aggregator.MergeAliases(aggregator.DefaultCountryAliases, cfg.Aliases))

	res := cache.GetOrRefresh(ctx, s.cache, keyWorld, cfg.TTL, s.refreshWorld, nil)

	articles := make([]article, 0, cfg.Limit)
	for _, a := range res.Value.Articles {
		if cfg.Limit > 0 && len(articles) >= cfg.Limit {
			break
		}
		if match(domain.Item{Headline: a.Headline, Summary: a.Summary}) {
			articles = append(articles, a)
		}
	}

	resp := worldNewsResponse{Country: country, Articles: articles, Count: len(articles), Cached: res.Cached, Stale: res.Stale}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	setCacheControl(w, 5*time.Minute, 10*time.Minute)
	rest.RenderJSON(w, resp)
}

// refreshWorld fetches all world sources once for every country, newest first
func (s *Server) refreshWorld(ctx context.Context) (worldPayload, error) {
	cfg := s.config.GetWorldConfig()
	resp := s.news.Run(ctx, aggregator.Request{
		Sources:    cfg.Sources,
		SummaryLen: cfg.SummaryLen,
		Rank:       rank.Options{ByDate: true},
	})
	if resp.Sources > 0 && resp.Failed == resp.Sources {
		return worldPayload{}, errAllSourcesFailed
	}
	return worldPayload{Articles: s.articles(resp.Items, false)}, nil
}

// headlinesHandler returns the latest headlines of a single source with paraphrased summaries.
// This is the only news endpoint failing hard, there is nothing to fall back to.
func (s *Server) headlinesHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetHeadlinesConfig()
	ctx := context.WithoutCancel(r.Context())

	resp := s.news.Run(ctx, aggregator.Request{
		Sources:    []domain.Source{cfg.Source},
		SummaryLen: cfg.SummaryLen,
		Rank:       rank.Options{Limit: cfg.Limit, ByDate: true},
	})
	if resp.Failed == resp.Sources {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError,
			fmt.Errorf("headlines source %s failed", cfg.Source.URL), "failed to fetch news")
		return
	}

	items := s.news.Paraphrase(ctx, resp.Items, cfg.FallbackLen)
	rest.RenderJSON(w, rest.JSON{"articles": s.articles(items, false)})
}

// stocksHandler returns stock index and ticker quotes
func (s *Server) stocksHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetQuotesConfig()
	s.renderQuotes(w, r, keyStocks, cfg.StocksTTL, s.stocks, cfg.StocksFallback)
}

// cryptoHandler returns crypto prices in configured order
func (s *Server) cryptoHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetQuotesConfig()
	s.renderQuotes(w, r, keyCrypto, cfg.CryptoTTL, s.crypto, cfg.CryptoFallback)
}

func (s *Server) renderQuotes(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration,
	provider QuoteProvider, fallback []domain.Quote) {
	ctx := context.WithoutCancel(r.Context())
	res := cache.GetOrRefresh(ctx, s.cache, key, ttl, provider.Quotes, func() []domain.Quote { return fallback })

	resp := quotesResponse{Data: res.Value, Cached: res.Cached, Stale: res.Stale, Fallback: res.Fallback}
	if resp.Data == nil {
		resp.Data = []domain.Quote{}
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	setCacheControl(w, time.Minute, 5*time.Minute)
	rest.RenderJSON(w, resp)
}

// economicCalendarHandler returns today's events from FCS, cached per day
func (s *Server) economicCalendarHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetCalendarConfig()
	ctx := context.WithoutCancel(r.Context())
	day := s.calendar.Day()

	res := cache.GetOrRefresh(ctx, s.cache, keyCalendarPref+day, cfg.FCS.TTL, s.calendar.Events,
		func() []domain.Event { return cfg.FCS.Fallback })

	resp := calendarResponse{Events: res.Value, Date: day, Cached: res.Cached, Stale: res.Stale, Fallback: res.Fallback}
	switch {
	case res.Err == nil:
	case errors.Is(res.Err, calendar.ErrNoAPIKey):
		resp.Note = "using fallback, api key not configured"
	case errors.Is(res.Err, calendar.ErrRateLimited):
		resp.Note = "api limit reached, using cached events"
	case errors.Is(res.Err, calendar.ErrEmpty):
		resp.Note = "no events reported for today"
	default:
		resp.Error = res.Err.Error()
	}
	if resp.Events == nil {
		resp.Events = []domain.Event{}
	}
	setCacheControl(w, time.Hour, 2*time.Hour)
	rest.RenderJSON(w, resp)
}

// forexFactoryHandler returns this week's important events scraped from Forex Factory
func (s *Server) forexFactoryHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.GetCalendarConfig()
	ctx := context.WithoutCancel(r.Context())

	res := cache.GetOrRefresh(ctx, s.cache, keyForexFactory, cfg.ForexFactory.TTL, s.forexFactory.Events,
		func() []domain.Event { return cfg.ForexFactory.Fallback })

	resp := forexFactoryResponse{Events: res.Value, Cached: res.Cached, Stale: res.Stale, Source: "forex-factory"}
	if res.Fallback {
		resp.Source = "fallback"
	}
	if !res.FetchedAt.IsZero() {
		resp.FetchedAt = res.FetchedAt.UTC().Format(time.RFC3339)
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if resp.Events == nil {
		resp.Events = []domain.Event{}
	}
	setCacheControl(w, time.Hour, 2*time.Hour)
	rest.RenderJSON(w, resp)
}

// RefreshJobs returns cache refresh jobs for background warming
func (s *Server) RefreshJobs() []scheduler.Job {
	jobs := []scheduler.Job{
		{Name: keyNews, Run: func(ctx context.Context) error { return cache.Warm(ctx, s.cache, keyNews, s.refreshNews) }},
		{Name: keyWorld, Run: func(ctx context.Context) error { return cache.Warm(ctx, s.cache, keyWorld, s.refreshWorld) }},
		{Name: keyStocks, Run: func(ctx context.Context) error { return cache.Warm(ctx, s.cache, keyStocks, s.stocks.Quotes) }},
		{Name: keyCrypto, Run: func(ctx context.Context) error { return cache.Warm(ctx, s.cache, keyCrypto, s.crypto.Quotes) }},
		{Name: keyForexFactory, Run: func(ctx context.Context) error {
			return cache.Warm(ctx, s.cache, keyForexFactory, s.forexFactory.Events)
		}},
	}
	if s.config.GetCalendarConfig().FCS.APIKey != "" {
		jobs = append(jobs, scheduler.Job{Name: "calendar", Run: func(ctx context.Context) error {
			return cache.Warm(ctx, s.cache, keyCalendarPref+s.calendar.Day(), s.calendar.Events)
		}})
	}
	return jobs
}

// articles converts ranked items to response articles, score breakdown is included on request
func (s *Server) articles(items []domain.ScoredItem, withScore bool) []article {
	now := s.now()
	res := make([]article, 0, len(items))
	for _, it := range items {
		a := article{
			Headline: it.Headline,
			Summary:  it.Summary,
			Source:   it.Source,
			Link:     it.Link,
			PubDate:  it.PubDate,
			TimeAgo:  normalize.TimeAgo(now, it.Published),
		}
		if withScore {
			a.Score = it.Composite
			a.Breakdown = &breakdown{Recency: it.Recency, Relevance: it.Relevance, Reputation: it.Reputation}
		}
		res = append(res, a)
	}
	return res
}

// setCacheControl sets shared cache lifetime with stale-while-revalidate window
func setCacheControl(w http.ResponseWriter, maxAge, staleFor time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("s-maxage=%d, stale-while-revalidate=%d",
		int(maxAge.Seconds()), int(staleFor.Seconds())))
}

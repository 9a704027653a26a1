// Package server exposes news, quotes and calendar endpoints as JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/tickerwire/tickerwire/pkg/aggregator"
	"github.com/tickerwire/tickerwire/pkg/cache"
	"github.com/tickerwire/tickerwire/pkg/config"
	"github.com/tickerwire/tickerwire/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/news.go -pkg mocks -skip-ensure -fmt goimports . NewsPipeline
//go:generate moq -out mocks/quotes.go -pkg mocks -skip-ensure -fmt goimports . QuoteProvider
//go:generate moq -out mocks/events.go -pkg mocks -skip-ensure -fmt goimports . EventProvider
//go:generate moq -out mocks/daily_events.go -pkg mocks -skip-ensure -fmt goimports . DailyEventProvider

// Server represents HTTP server instance
type Server struct {
	config       ConfigProvider
	news         NewsPipeline
	stocks       QuoteProvider
	crypto       QuoteProvider
	calendar     DailyEventProvider
	forexFactory EventProvider
	cache        *cache.Cache
	version      string
	debug        bool
	now          func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides endpoint configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetNewsConfig() config.NewsConfig
	GetWorldConfig() config.WorldConfig
	GetHeadlinesConfig() config.HeadlinesConfig
	GetQuotesConfig() config.QuotesConfig
	GetCalendarConfig() config.CalendarConfig
}

// NewsPipeline runs news aggregation and paraphrasing
type NewsPipeline interface {
	Run(ctx context.Context, req aggregator.Request) aggregator.Response
	Paraphrase(ctx context.Context, items []domain.ScoredItem, fallbackLen int) []domain.ScoredItem
}

// QuoteProvider returns current quotes
type QuoteProvider interface {
	Quotes(ctx context.Context) ([]domain.Quote, error)
}

// EventProvider returns calendar events
type EventProvider interface {
	Events(ctx context.Context) ([]domain.Event, error)
}

// DailyEventProvider returns events of the day it reports
type DailyEventProvider interface {
	EventProvider
	Day() string
}

// Params defines server dependencies, Cache is optional and defaults to in-memory one
type Params struct {
	Config       ConfigProvider
	News         NewsPipeline
	Stocks       QuoteProvider
	Crypto       QuoteProvider
	Calendar     DailyEventProvider
	ForexFactory EventProvider
	Cache        *cache.Cache
	Version      string
	Debug        bool
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.Cache == nil {
		p.Cache = cache.New(nil)
	}
	s := &Server{
		config:       p.Config,
		news:         p.News,
		stocks:       p.Stocks,
		crypto:       p.Crypto,
		calendar:     p.Calendar,
		forexFactory: p.ForexFactory,
		cache:        p.Cache,
		version:      p.Version,
		debug:        p.Debug,
		now:          time.Now,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("tickerwire", "tickerwire", s.version))
	s.router.Use(rest.Ping)
	s.router.Use(corsMiddleware)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("GET /world-news", s.worldNewsHandler)
		r.HandleFunc("GET /headlines", s.headlinesHandler)
		r.HandleFunc("GET /stocks", s.stocksHandler)
		r.HandleFunc("GET /crypto", s.cryptoHandler)
		r.HandleFunc("GET /economic-calendar", s.economicCalendarHandler)
		r.HandleFunc("GET /forex-factory", s.forexFactoryHandler)
		r.HandleFunc("OPTIONS /{path...}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
}

// corsMiddleware allows any origin to read the API, preflight requests are answered right away
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

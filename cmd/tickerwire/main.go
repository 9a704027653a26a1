package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tickerwire/tickerwire/pkg/aggregator"
	"github.com/tickerwire/tickerwire/pkg/cache"
	"github.com/tickerwire/tickerwire/pkg/calendar"
	"github.com/tickerwire/tickerwire/pkg/config"
	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/feed"
	"github.com/tickerwire/tickerwire/pkg/llm"
	"github.com/tickerwire/tickerwire/pkg/quotes"
	"github.com/tickerwire/tickerwire/pkg/scheduler"
	"github.com/tickerwire/tickerwire/pkg/score"
	"github.com/tickerwire/tickerwire/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file (built-in defaults if not set)"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	LLMKey      string `long:"llm-key" env:"LLM_API_KEY" description:"LLM api key, overrides config"`
	FCSKey      string `long:"fcs-key" env:"FCS_API_KEY" description:"FCS api key, overrides config"`
	RSS2JSONKey string `long:"rss2json-key" env:"RSS2JSON_API_KEY" description:"rss2json api key, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting tickerwire version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires all components and serves until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)
	setupLog(opts.Debug, opts.NoColor, cfg.Secrets()...)

	store, closeStore, err := makeStore(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to make cache store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[WARN] can't close cache store: %v", err)
		}
	}()

	llmClient, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to make llm client: %w", err)
	}
	if llmClient == nil {
		log.Print("[INFO] llm provider not set, relevance is neutral and summaries are truncated")
	}

	srv := server.New(server.Params{
		Config:       cfg,
		News:         makeAggregator(cfg, llmClient),
		Stocks:       quotes.NewYahoo(quotes.YahooParams{BaseURL: cfg.Quotes.YahooURL, Symbols: cfg.Quotes.Symbols, Timeout: cfg.Quotes.Timeout}),
		Crypto:       quotes.NewCoinGecko(quotes.CoinGeckoParams{BaseURL: cfg.Quotes.CoinGeckoURL, Coins: cfg.Quotes.Coins, Timeout: cfg.Quotes.Timeout}),
		Calendar:     makeFCS(cfg.Calendar),
		ForexFactory: makeForexFactory(cfg.Calendar),
		Cache:        cache.New(store),
		Version:      revision,
		Debug:        opts.Debug,
	})

	if cfg.Warm.Cron != "" {
		sched, err := scheduler.New(cfg.Warm.Cron, time.Minute, srv.RefreshJobs()...)
		if err != nil {
			return fmt.Errorf("failed to make cache warmer: %w", err)
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// applyOverrides sets values from command line and environment on top of loaded config
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.LLMKey != "" {
		cfg.LLM.APIKey = opts.LLMKey
	}
	if opts.FCSKey != "" {
		cfg.Calendar.FCS.APIKey = opts.FCSKey
	}
	if opts.RSS2JSONKey != "" {
		cfg.News.RSS2JSONKey = opts.RSS2JSONKey
	}
}

// makeStore makes cache store for configured backend, returns store closer
func makeStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, func() error, error) {
	switch cfg.Backend {
	case "", "memory":
		return cache.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		store := cache.NewRedisStore(client, cfg.Redis.Prefix)
		log.Printf("[INFO] redis cache at %s", cfg.Redis.Addr)
		return store, store.Close, nil
	case "sqlite":
		store, err := cache.NewSQLiteStore(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[INFO] sqlite cache %s", cfg.SQLite.DSN)
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// makeAggregator makes news pipeline, llm client is optional
func makeAggregator(cfg *config.Config, client llm.Client) *aggregator.Aggregator {
	scorer := &score.Scorer{
		Reputations: cfg.News.Reputation,
		Weights:     cfg.News.Weights,
		Timeout:     cfg.LLM.Timeout,
		Budget:      cfg.LLM.Budget,
		Concurrency: cfg.LLM.Concurrency,
	}
	res := &aggregator.Aggregator{
		Fetcher:     feed.NewFetcher(feed.Params{Timeout: cfg.News.FetchTimeout, RSS2JSONKey: cfg.News.RSS2JSONKey}),
		Scorer:      scorer,
		Concurrency: cfg.LLM.Concurrency,
		Timeout:     cfg.LLM.Timeout,
		Budget:      cfg.LLM.Budget,
	}
	if client != nil {
		scorer.Rater = client
		res.Paraphraser = client
	}
	return res
}

func makeFCS(cfg config.CalendarConfig) *calendar.FCS {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[WARN] can't load timezone %s, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}
	return calendar.NewFCS(calendar.FCSParams{
		BaseURL:       cfg.FCS.URL,
		APIKey:        cfg.FCS.APIKey,
		Location:      loc,
		MinImportance: domain.ParseImportance(cfg.MinImportance),
		Rules:         cfg.Importance,
		Limit:         cfg.FCS.Limit,
		Timeout:       cfg.Timeout,
	})
}

func makeForexFactory(cfg config.CalendarConfig) *calendar.ForexFactory {
	return calendar.NewForexFactory(calendar.ForexFactoryParams{
		URL:           cfg.ForexFactory.URL,
		MinImportance: domain.ParseImportance(cfg.MinImportance),
		Rules:         cfg.Importance,
		Limit:         cfg.ForexFactory.Limit,
		Timeout:       cfg.Timeout,
	})
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

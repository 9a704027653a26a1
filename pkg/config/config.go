// Package config loads tickerwire configuration from YAML. Every value has a built-in default,
// the service runs without any config file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/normalize"
	"github.com/tickerwire/tickerwire/pkg/quotes"
	"github.com/tickerwire/tickerwire/pkg/score"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server write timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Cache     CacheConfig     `yaml:"cache" json:"cache" jsonschema:"description=Response cache backend"`
	LLM       LLMConfig       `yaml:"llm" json:"llm" jsonschema:"description=LLM used for relevance scoring and paraphrasing"`
	News      NewsConfig      `yaml:"news" json:"news" jsonschema:"description=Scored business news"`
	World     WorldConfig     `yaml:"world" json:"world" jsonschema:"description=World news filtered by country"`
	Headlines HeadlinesConfig `yaml:"headlines" json:"headlines" jsonschema:"description=Paraphrased headlines from a single feed"`
	Quotes    QuotesConfig    `yaml:"quotes" json:"quotes" jsonschema:"description=Stock and crypto quotes"`
	Calendar  CalendarConfig  `yaml:"calendar" json:"calendar" jsonschema:"description=Economic calendars"`

	Warm struct {
		Cron string `yaml:"cron" json:"cron" jsonschema:"description=Cron spec to refresh caches in background (empty disables)"`
	} `yaml:"warm" json:"warm" jsonschema:"description=Cache warmer"`
}

// CacheConfig selects and configures the cache store
type CacheConfig struct {
	Backend string `yaml:"backend" json:"backend" jsonschema:"default=memory,enum=memory,enum=redis,enum=sqlite,description=Cache store"`
	Redis   struct {
		Addr     string `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
		Password string `yaml:"password" json:"password" jsonschema:"description=Redis password"`
		DB       int    `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database"`
		Prefix   string `yaml:"prefix" json:"prefix" jsonschema:"default=tickerwire:,description=Key prefix"`
	} `yaml:"redis" json:"redis"`
	SQLite struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:tickerwire.db?cache=shared&mode=rwc&_txlock=immediate,description=SQLite connection string"`
	} `yaml:"sqlite" json:"sqlite"`
}

// LLMConfig holds LLM configuration, empty provider disables LLM calls
type LLMConfig struct {
	Provider         string        `yaml:"provider" json:"provider" jsonschema:"enum=openai,enum=gemini,description=LLM provider (empty disables LLM calls)"`
	Endpoint         string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey           string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model            string        `yaml:"model" json:"model" jsonschema:"description=Model name"`
	Temperature      float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	RateMaxTokens    int           `yaml:"rate_max_tokens" json:"rate_max_tokens" jsonschema:"default=10,description=Max tokens for relevance answer"`
	ParaphraseTokens int           `yaml:"paraphrase_max_tokens" json:"paraphrase_max_tokens" jsonschema:"default=100,description=Max tokens for paraphrased summary"`
	Timeout          time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per call timeout"`
	Budget           time.Duration `yaml:"budget" json:"budget" jsonschema:"default=15s,description=Limit for all calls of one request, items left are neutral or truncated"`
	Attempts         int           `yaml:"attempts" json:"attempts" jsonschema:"default=2,description=Attempts for unparseable answers"`
	Concurrency      int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=8,description=Max parallel LLM calls"`
	RatePrompt       string        `yaml:"rate_prompt" json:"rate_prompt" jsonschema:"description=Relevance rubric (optional)"`
	ParaphrasePrompt string        `yaml:"paraphrase_prompt" json:"paraphrase_prompt" jsonschema:"description=Paraphrase instruction (optional)"`
}

// NewsConfig defines the scored news endpoint
type NewsConfig struct {
	Sources      []domain.Source    `yaml:"sources" json:"sources" jsonschema:"description=News sources"`
	RSS2JSONKey  string             `yaml:"rss2json_key" json:"rss2json_key" jsonschema:"description=rss2json api key (optional)"`
	FetchTimeout time.Duration      `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=10s,description=Per source fetch timeout"`
	SummaryLen   int                `yaml:"summary_len" json:"summary_len" jsonschema:"default=120,description=Summary length in characters"`
	Limit        int                `yaml:"limit" json:"limit" jsonschema:"default=50,description=Max articles returned"`
	MinScore     float64            `yaml:"min_score" json:"min_score" jsonschema:"default=0,minimum=0,maximum=10,description=Drop articles with lower composite score"`
	Weights      score.Weights      `yaml:"weights" json:"weights" jsonschema:"description=Composite score weights"`
	Reputation   map[string]float64 `yaml:"reputation" json:"reputation" jsonschema:"description=Source reputation 1-10 by source name"`
	TTL          time.Duration      `yaml:"ttl" json:"ttl" jsonschema:"default=5m,description=Cache lifetime"`
}

// WorldConfig defines the country-filtered world news endpoint
type WorldConfig struct {
	Sources    []domain.Source     `yaml:"sources" json:"sources" jsonschema:"description=World news sources"`
	SummaryLen int                 `yaml:"summary_len" json:"summary_len" jsonschema:"default=200,description=Summary length in characters"`
	Limit      int                 `yaml:"limit" json:"limit" jsonschema:"default=10,description=Max articles returned"`
	Aliases    map[string][]string `yaml:"aliases" json:"aliases" jsonschema:"description=Country aliases replacing the built-in list per country"`
	TTL        time.Duration       `yaml:"ttl" json:"ttl" jsonschema:"default=5m,description=Cache lifetime per country"`
}

// HeadlinesConfig defines the paraphrased headlines endpoint
type HeadlinesConfig struct {
	Source      domain.Source `yaml:"source" json:"source" jsonschema:"description=Headlines source"`
	Limit       int           `yaml:"limit" json:"limit" jsonschema:"default=10,description=Max articles returned"`
	SummaryLen  int           `yaml:"summary_len" json:"summary_len" jsonschema:"default=500,description=Text sent for paraphrasing"`
	FallbackLen int           `yaml:"fallback_len" json:"fallback_len" jsonschema:"default=150,description=Summary length when paraphrase fails"`
}

// QuotesConfig defines stock and crypto quote providers
type QuotesConfig struct {
	YahooURL       string         `yaml:"yahoo_url" json:"yahoo_url" jsonschema:"default=https://query1.finance.yahoo.com,description=Yahoo finance base url"`
	Symbols        []string       `yaml:"symbols" json:"symbols" jsonschema:"description=Stock symbols"`
	StocksTTL      time.Duration  `yaml:"stocks_ttl" json:"stocks_ttl" jsonschema:"default=60s,description=Stocks cache lifetime"`
	StocksFallback []domain.Quote `yaml:"stocks_fallback" json:"stocks_fallback" jsonschema:"description=Static stocks snapshot"`
	CoinGeckoURL   string         `yaml:"coingecko_url" json:"coingecko_url" jsonschema:"default=https://api.coingecko.com,description=CoinGecko base url"`
	Coins          []quotes.Coin  `yaml:"coins" json:"coins" jsonschema:"description=Crypto coins in display order"`
	CryptoTTL      time.Duration  `yaml:"crypto_ttl" json:"crypto_ttl" jsonschema:"default=60s,description=Crypto cache lifetime"`
	CryptoFallback []domain.Quote `yaml:"crypto_fallback" json:"crypto_fallback" jsonschema:"description=Static crypto snapshot"`
	Timeout        time.Duration  `yaml:"timeout" json:"timeout" jsonschema:"default=8s,description=Quote request timeout"`
}

// CalendarConfig defines economic calendar providers
type CalendarConfig struct {
	Timezone      string          `yaml:"timezone" json:"timezone" jsonschema:"default=America/New_York,description=Timezone for event times"`
	MinImportance string          `yaml:"min_importance" json:"min_importance" jsonschema:"default=medium,enum=low,enum=medium,enum=high,description=Drop less important events"`
	Timeout       time.Duration   `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Calendar request timeout"`
	Importance    normalize.Rules `yaml:"importance" json:"importance" jsonschema:"description=Importance rules per vocabulary merged over built-in rules"`

	FCS struct {
		URL      string         `yaml:"url" json:"url" jsonschema:"default=https://fcsapi.com/api-v3/forex/economy_cal,description=FCS economy calendar url"`
		APIKey   string         `yaml:"api_key" json:"api_key" jsonschema:"description=FCS api key"`
		Limit    int            `yaml:"limit" json:"limit" jsonschema:"default=15,description=Max events returned"`
		TTL      time.Duration  `yaml:"ttl" json:"ttl" jsonschema:"default=24h,description=Cache lifetime (key is per day)"`
		Fallback []domain.Event `yaml:"fallback" json:"fallback" jsonschema:"description=Static events"`
	} `yaml:"fcs" json:"fcs"`

	ForexFactory struct {
		URL      string         `yaml:"url" json:"url" jsonschema:"default=https://www.forexfactory.com/calendar?week=this,description=Forex Factory calendar page"`
		Limit    int            `yaml:"limit" json:"limit" jsonschema:"default=20,description=Max events returned"`
		TTL      time.Duration  `yaml:"ttl" json:"ttl" jsonschema:"default=24h,description=Cache lifetime"`
		Fallback []domain.Event `yaml:"fallback" json:"fallback" jsonschema:"description=Static events"`
	} `yaml:"forex_factory" json:"forex_factory"`
}

// Load reads configuration from a YAML file, empty path gives the built-in defaults
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// cache
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "tickerwire:"
	}
	if c.Cache.SQLite.DSN == "" {
		c.Cache.SQLite.DSN = "file:tickerwire.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.2
	}
	if c.LLM.RateMaxTokens == 0 {
		c.LLM.RateMaxTokens = 10
	}
	if c.LLM.ParaphraseTokens == 0 {
		c.LLM.ParaphraseTokens = 100
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 15 * time.Second
	}
	if c.LLM.Budget == 0 {
		c.LLM.Budget = 15 * time.Second
	}
	if c.LLM.Attempts == 0 {
		c.LLM.Attempts = 2
	}
	if c.LLM.Concurrency == 0 {
		c.LLM.Concurrency = 8
	}

	// news
	if len(c.News.Sources) == 0 {
		c.News.Sources = defaultNewsSources()
	}
	if c.News.FetchTimeout == 0 {
		c.News.FetchTimeout = 10 * time.Second
	}
	if c.News.SummaryLen == 0 {
		c.News.SummaryLen = 120
	}
	if c.News.Limit == 0 {
		c.News.Limit = 50
	}
	if c.News.Weights == (score.Weights{}) {
		c.News.Weights = score.DefaultWeights()
	}
	if c.News.Reputation == nil {
		c.News.Reputation = defaultReputation()
	}
	if c.News.TTL == 0 {
		c.News.TTL = 5 * time.Minute
	}

	// world
	if len(c.World.Sources) == 0 {
		c.World.Sources = defaultWorldSources()
	}
	if c.World.SummaryLen == 0 {
		c.World.SummaryLen = 200
	}
	if c.World.Limit == 0 {
		c.World.Limit = 10
	}
	if c.World.TTL == 0 {
		c.World.TTL = 5 * time.Minute
	}

	// headlines
	if c.Headlines.Source.URL == "" {
		c.Headlines.Source = domain.Source{ID: "reuters-business", Name: "Reuters", Kind: domain.SourceRSS2JSON,
			URL: "https://api.rss2json.com/v1/api.json?rss_url=https%3A%2F%2Ffeeds.reuters.com%2Freuters%2FbusinessNews&count=10"}
	}
	if c.Headlines.Limit == 0 {
		c.Headlines.Limit = 10
	}
	if c.Headlines.SummaryLen == 0 {
		c.Headlines.SummaryLen = 500
	}
	if c.Headlines.FallbackLen == 0 {
		c.Headlines.FallbackLen = 150
	}

	// quotes
	if c.Quotes.YahooURL == "" {
		c.Quotes.YahooURL = "https://query1.finance.yahoo.com"
	}
	if len(c.Quotes.Symbols) == 0 {
		c.Quotes.Symbols = []string{"^DJI", "^IXIC", "^GSPC", "AAPL", "MSFT", "GOOGL"}
	}
	if c.Quotes.StocksTTL == 0 {
		c.Quotes.StocksTTL = 60 * time.Second
	}
	if len(c.Quotes.StocksFallback) == 0 {
		c.Quotes.StocksFallback = defaultStocksFallback()
	}
	if c.Quotes.CoinGeckoURL == "" {
		c.Quotes.CoinGeckoURL = "https://api.coingecko.com"
	}
	if len(c.Quotes.Coins) == 0 {
		c.Quotes.Coins = []quotes.Coin{
			{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
			{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
			{ID: "solana", Symbol: "SOL", Name: "Solana"},
			{ID: "ripple", Symbol: "XRP", Name: "XRP"},
		}
	}
	if c.Quotes.CryptoTTL == 0 {
		c.Quotes.CryptoTTL = 60 * time.Second
	}
	if len(c.Quotes.CryptoFallback) == 0 {
		c.Quotes.CryptoFallback = defaultCryptoFallback()
	}
	if c.Quotes.Timeout == 0 {
		c.Quotes.Timeout = 8 * time.Second
	}

	// calendar
	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = "America/New_York"
	}
	if c.Calendar.MinImportance == "" {
		c.Calendar.MinImportance = string(domain.ImportanceMedium)
	}
	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10 * time.Second
	}
	c.Calendar.Importance = normalize.DefaultRules().Merge(c.Calendar.Importance)
	if c.Calendar.FCS.URL == "" {
		c.Calendar.FCS.URL = "https://fcsapi.com/api-v3/forex/economy_cal"
	}
	if c.Calendar.FCS.Limit == 0 {
		c.Calendar.FCS.Limit = 15
	}
	if c.Calendar.FCS.TTL == 0 {
		c.Calendar.FCS.TTL = 24 * time.Hour
	}
	if len(c.Calendar.FCS.Fallback) == 0 {
		c.Calendar.FCS.Fallback = defaultFCSFallback()
	}
	if c.Calendar.ForexFactory.URL == "" {
		c.Calendar.ForexFactory.URL = "https://www.forexfactory.com/calendar?week=this"
	}
	if c.Calendar.ForexFactory.Limit == 0 {
		c.Calendar.ForexFactory.Limit = 20
	}
	if c.Calendar.ForexFactory.TTL == 0 {
		c.Calendar.ForexFactory.TTL = 24 * time.Hour
	}
	if len(c.Calendar.ForexFactory.Fallback) == 0 {
		c.Calendar.ForexFactory.Fallback = defaultForexFactoryFallback()
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	switch cfg.Cache.Backend {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("cache.backend %q is not one of memory, redis, sqlite", cfg.Cache.Backend)
	}

	switch cfg.LLM.Provider {
	case "":
	case "openai", "gemini":
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required for provider %s", cfg.LLM.Provider)
		}
	default:
		return fmt.Errorf("llm.provider %q is not one of openai, gemini", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Attempts < 1 {
		return fmt.Errorf("llm.attempts must be at least 1")
	}
	if cfg.News.FetchTimeout+cfg.LLM.Budget >= cfg.Server.Timeout {
		return fmt.Errorf("news.fetch_timeout %v plus llm.budget %v must be less than server timeout %v",
			cfg.News.FetchTimeout, cfg.LLM.Budget, cfg.Server.Timeout)
	}

	if cfg.News.MinScore < 0 || cfg.News.MinScore > 10 {
		return fmt.Errorf("news.min_score must be between 0 and 10")
	}
	w := cfg.News.Weights
	if w.Recency < 0 || w.Relevance < 0 || w.Reputation < 0 {
		return fmt.Errorf("news.weights must be non-negative")
	}
	for name, v := range cfg.News.Reputation {
		if v < score.MinScore || v > score.MaxScore {
			return fmt.Errorf("news.reputation %q must be between 1 and 10", name)
		}
	}
	if err := validateSources("news.sources", cfg.News.Sources); err != nil {
		return err
	}
	if err := validateSources("world.sources", cfg.World.Sources); err != nil {
		return err
	}
	if err := validateSources("headlines.source", []domain.Source{cfg.Headlines.Source}); err != nil {
		return err
	}

	if domain.ParseImportance(cfg.Calendar.MinImportance) != domain.Importance(cfg.Calendar.MinImportance) {
		return fmt.Errorf("calendar.min_importance %q is not one of low, medium, high", cfg.Calendar.MinImportance)
	}
	if _, err := time.LoadLocation(cfg.Calendar.Timezone); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}

	if cfg.Warm.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Warm.Cron); err != nil {
			return fmt.Errorf("warm.cron: %w", err)
		}
	}
	return nil
}

func validateSources(name string, sources []domain.Source) error {
	for i, s := range sources {
		if s.URL == "" {
			return fmt.Errorf("%s[%d]: url is required", name, i)
		}
		switch s.Kind {
		case "", domain.SourceRSS, domain.SourceRSS2JSON:
		default:
			return fmt.Errorf("%s[%d]: kind %q is not one of rss, rss2json", name, i, s.Kind)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetNewsConfig returns scored news configuration
func (c *Config) GetNewsConfig() NewsConfig {
	return c.News
}

// GetWorldConfig returns per-country news configuration
func (c *Config) GetWorldConfig() WorldConfig {
	return c.World
}

// GetHeadlinesConfig returns paraphrased headlines configuration
func (c *Config) GetHeadlinesConfig() HeadlinesConfig {
	return c.Headlines
}

// GetQuotesConfig returns stock and crypto quotes configuration
func (c *Config) GetQuotesConfig() QuotesConfig {
	return c.Quotes
}

// GetCalendarConfig returns economic calendar configuration
func (c *Config) GetCalendarConfig() CalendarConfig {
	return c.Calendar
}

// Secrets returns configured credentials, used to mask them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.LLM.APIKey, c.News.RSS2JSONKey, c.Calendar.FCS.APIKey, c.Cache.Redis.Password} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

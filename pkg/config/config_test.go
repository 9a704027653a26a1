package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/normalize"
	"github.com/tickerwire/tickerwire/pkg/score"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_FCS_KEY", "fcs-secret")
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
cache:
  backend: redis
  redis:
    addr: redis:6379
llm:
  provider: openai
  endpoint: http://localhost:4000/v1
  model: gpt-4o-mini
news:
  sources:
    - url: https://example.com/feed1.xml
      name: Feed1
      kind: rss
  weights:
    recency: 0.6
    relevance: 0.2
    reputation: 0.2
  reputation:
    Feed1: 9
  limit: 20
world:
  aliases:
    Germany: [Deutschland]
calendar:
  fcs:
    api_key: ${TEST_FCS_KEY}
  importance:
    fcs:
      high: 2
      medium: 1
warm:
  cron: "*/5 * * * *"
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)

		require.Len(t, cfg.News.Sources, 1)
		assert.Equal(t, domain.Source{URL: "https://example.com/feed1.xml", Name: "Feed1", Kind: domain.SourceRSS}, cfg.News.Sources[0])
		assert.Equal(t, score.Weights{Recency: 0.6, Relevance: 0.2, Reputation: 0.2}, cfg.News.Weights)
		assert.Equal(t, map[string]float64{"Feed1": 9}, cfg.News.Reputation)
		assert.Equal(t, 20, cfg.News.Limit)
		assert.Equal(t, []string{"Deutschland"}, cfg.World.Aliases["Germany"])

		assert.Equal(t, "fcs-secret", cfg.Calendar.FCS.APIKey)
		assert.Equal(t, domain.ImportanceHigh, cfg.Calendar.Importance.Importance(normalize.VocabFCS, "2"))
		assert.Equal(t, domain.ImportanceHigh, cfg.Calendar.Importance.Importance(normalize.VocabForexFactory, "3"), "built-in rules kept")
		assert.Equal(t, "*/5 * * * *", cfg.Warm.Cron)
		assert.Equal(t, []string{"fcs-secret"}, cfg.Secrets())
	})

	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		listen, timeout := cfg.GetServerConfig()
		assert.Equal(t, ":8080", listen)
		assert.Equal(t, 30*time.Second, timeout)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Empty(t, cfg.LLM.Provider)
		assert.Equal(t, 10, cfg.GetLLMConfig().RateMaxTokens)
		assert.Equal(t, 15*time.Second, cfg.LLM.Budget)

		assert.Len(t, cfg.News.Sources, 18)
		for _, s := range cfg.News.Sources {
			assert.Equal(t, domain.SourceRSS2JSON, s.Kind)
			assert.Contains(t, s.URL, "https://api.rss2json.com/v1/api.json?rss_url=https%3A%2F%2F")
		}
		assert.Equal(t, score.DefaultWeights(), cfg.News.Weights)
		assert.InDelta(t, 10, cfg.News.Reputation["Wall Street Journal"], 0.001)
		assert.Equal(t, 120, cfg.News.SummaryLen)
		assert.Equal(t, 50, cfg.News.Limit)

		assert.Len(t, cfg.World.Sources, 8)
		assert.Equal(t, 10, cfg.World.Limit)
		assert.Equal(t, "Reuters", cfg.Headlines.Source.Name)
		assert.Equal(t, 150, cfg.Headlines.FallbackLen)

		assert.Equal(t, []string{"^DJI", "^IXIC", "^GSPC", "AAPL", "MSFT", "GOOGL"}, cfg.Quotes.Symbols)
		assert.Len(t, cfg.Quotes.StocksFallback, 6)
		require.Len(t, cfg.Quotes.Coins, 4)
		assert.Equal(t, "XRP", cfg.Quotes.Coins[3].Symbol)
		assert.Equal(t, 8*time.Second, cfg.Quotes.Timeout)
		assert.Equal(t, 60*time.Second, cfg.Quotes.CryptoTTL)

		assert.Equal(t, "America/New_York", cfg.Calendar.Timezone)
		assert.Equal(t, "medium", cfg.Calendar.MinImportance)
		assert.Equal(t, 15, cfg.Calendar.FCS.Limit)
		assert.Equal(t, 20, cfg.Calendar.ForexFactory.Limit)
		assert.Equal(t, 24*time.Hour, cfg.Calendar.ForexFactory.TTL)
		assert.Len(t, cfg.Calendar.FCS.Fallback, 5)
		assert.Len(t, cfg.Calendar.ForexFactory.Fallback, 9)
		assert.Equal(t, domain.ImportanceMedium, cfg.Calendar.Importance.Importance(normalize.VocabFCS, "1"))
		assert.Empty(t, cfg.Secrets())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [bad"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tbl := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"short server timeout", "server:\n  timeout: 500ms\n", "server timeout must be at least 1 second"},
		{"unknown cache backend", "cache:\n  backend: memcached\n", `cache.backend "memcached"`},
		{"unknown llm provider", "llm:\n  provider: bard\n", `llm.provider "bard"`},
		{"llm without model", "llm:\n  provider: gemini\n", "llm.model is required"},
		{"bad temperature", "llm:\n  temperature: 3\n", "llm.temperature"},
		{"min score out of range", "news:\n  min_score: 11\n", "news.min_score"},
		{"negative weight", "news:\n  weights:\n    recency: -1\n", "news.weights"},
		{"reputation out of range", "news:\n  reputation:\n    X: 12\n", `news.reputation "X"`},
		{"source without url", "world:\n  sources:\n    - name: x\n", "world.sources[0]: url is required"},
		{"bad source kind", "news:\n  sources:\n    - url: http://x\n      kind: atom\n", `kind "atom"`},
		{"bad min importance", "calendar:\n  min_importance: urgent\n", "calendar.min_importance"},
		{"bad timezone", "calendar:\n  timezone: Mars/Olympus\n", "calendar.timezone"},
		{"bad cron", "warm:\n  cron: every minute\n", "warm.cron"},
		{"budget over server timeout", "server:\n  timeout: 20s\nllm:\n  budget: 15s\n", "must be less than server timeout"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "forex_factory")
	assert.Contains(t, string(data), "min_importance")
}

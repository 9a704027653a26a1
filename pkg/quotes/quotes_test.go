package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

func TestYahoo_Quotes(t *testing.T) {
	var gotSymbols string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		gotSymbols = r.URL.Query().Get("symbols")
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[
			{"symbol":"AAPL","shortName":"Apple Inc.","regularMarketPrice":150,"regularMarketChange":-2,"regularMarketChangePercent":-1.3},
			{"symbol":"^DJI","regularMarketPrice":44000.5,"regularMarketChangePercent":0.2}
		],"error":null}}`))
	}))
	defer ts.Close()

	y := NewYahoo(YahooParams{BaseURL: ts.URL + "/", Symbols: []string{"AAPL", "^DJI"}, Timeout: time.Second})
	res, err := y.Quotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AAPL,^DJI", gotSymbols)
	require.Len(t, res, 2)

	change := -2.0
	assert.Equal(t, domain.Quote{Symbol: "AAPL", Name: "Apple Inc.", Price: 150, Change: &change, ChangePercent: -1.3}, res[0])
	assert.Nil(t, res[1].Change)

	data, err := json.Marshal(res[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"AAPL","name":"Apple Inc.","price":150,"change":-2,"changePercent":-1.3}`, string(data))
}

func TestYahoo_QuotesFailures(t *testing.T) {
	tbl := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }, "unexpected status code: 429"},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) }, "decode response"},
		{"empty", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
		}, "no quotes returned"},
		{"api error", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":null,"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`))
		}, "Unauthorized Invalid Crumb"},
		{"timeout", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}, "yahoo quotes"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()
			y := NewYahoo(YahooParams{BaseURL: ts.URL, Symbols: []string{"AAPL"}, Timeout: 50 * time.Millisecond})
			_, err := y.Quotes(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCoinGecko_Quotes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum,solana,ripple", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))
		_, _ = w.Write([]byte(`{
			"ripple":{"usd":2.9,"usd_24h_change":-0.5},
			"bitcoin":{"usd":97000,"usd_24h_change":1.25},
			"ethereum":{"usd":3300,"usd_24h_change":0.1}
		}`))
	}))
	defer ts.Close()

	cg := NewCoinGecko(CoinGeckoParams{BaseURL: ts.URL, Coins: []Coin{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
		{ID: "solana", Symbol: "SOL", Name: "Solana"},
		{ID: "ripple", Symbol: "XRP", Name: "XRP"},
	}})
	res, err := cg.Quotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{
		{Symbol: "BTC", Name: "Bitcoin", Price: 97000, ChangePercent: 1.25},
		{Symbol: "ETH", Name: "Ethereum", Price: 3300, ChangePercent: 0.1},
		{Symbol: "SOL", Name: "Solana", Price: 0, ChangePercent: 0},
		{Symbol: "XRP", Name: "XRP", Price: 2.9, ChangePercent: -0.5},
	}, res, "fixed order, missing coin priced at zero")
}

func TestCoinGecko_QuotesError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cg := NewCoinGecko(CoinGeckoParams{BaseURL: ts.URL, Coins: []Coin{{ID: "bitcoin", Symbol: "BTC"}}})
	_, err := cg.Quotes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coingecko prices: unexpected status code: 503")
}

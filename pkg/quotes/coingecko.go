package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// Coin maps a CoinGecko id to the symbol and name shown in the ticker
type Coin struct {
	ID     string `yaml:"id" json:"id"`
	Symbol string `yaml:"symbol" json:"symbol"`
	Name   string `yaml:"name" json:"name"`
}

// CoinGecko gets crypto prices from the CoinGecko simple price API
type CoinGecko struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
	coins   []Coin
}

// CoinGeckoParams defines CoinGecko provider parameters
type CoinGeckoParams struct {
	BaseURL string
	Coins   []Coin
	Timeout time.Duration
	Client  *http.Client
}

// NewCoinGecko makes CoinGecko provider
func NewCoinGecko(p CoinGeckoParams) *CoinGecko {
	client, timeout := orDefault(p.Client, p.Timeout)
	return &CoinGecko{client: client, timeout: timeout, baseURL: strings.TrimSuffix(p.BaseURL, "/"), coins: p.Coins}
}

// Quotes returns prices in the configured coin order, coins missing in the answer get zero price
func (c *CoinGecko) Quotes(ctx context.Context) ([]domain.Quote, error) {
	ids := make([]string, len(c.coins))
	for i, coin := range c.coins {
		ids[i] = coin.ID
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	var resp map[string]struct {
		USD       float64 `json:"usd"`
		USDChange float64 `json:"usd_24h_change"`
	}
	if err := getJSON(ctx, c.client, c.timeout, c.baseURL+"/api/v3/simple/price?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("coingecko prices: %w", err)
	}

	res := make([]domain.Quote, len(c.coins))
	for i, coin := range c.coins {
		price := resp[coin.ID]
		res[i] = domain.Quote{Symbol: coin.Symbol, Name: coin.Name, Price: price.USD, ChangePercent: price.USDChange}
	}
	return res, nil
}

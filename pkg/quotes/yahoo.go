package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// ErrNoQuotes is returned when the provider answered without any quote
var ErrNoQuotes = errors.New("no quotes returned")

// Yahoo gets stock quotes from the Yahoo Finance v7 quote API
type Yahoo struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
	symbols []string
}

// YahooParams defines Yahoo provider parameters
type YahooParams struct {
	BaseURL string
	Symbols []string
	Timeout time.Duration
	Client  *http.Client
}

type yahooResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			ShortName                  string   `json:"shortName"`
			RegularMarketPrice         float64  `json:"regularMarketPrice"`
			RegularMarketChange        *float64 `json:"regularMarketChange"`
			RegularMarketChangePercent float64  `json:"regularMarketChangePercent"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// NewYahoo makes Yahoo provider
func NewYahoo(p YahooParams) *Yahoo {
	client, timeout := orDefault(p.Client, p.Timeout)
	return &Yahoo{client: client, timeout: timeout, baseURL: strings.TrimSuffix(p.BaseURL, "/"), symbols: p.Symbols}
}

// Quotes returns quotes for configured symbols in provider order
func (y *Yahoo) Quotes(ctx context.Context) ([]domain.Quote, error) {
	u := y.baseURL + "/v7/finance/quote?symbols=" + url.QueryEscape(strings.Join(y.symbols, ","))
	var resp yahooResponse
	if err := getJSON(ctx, y.client, y.timeout, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo quotes: %w", err)
	}
	if e := resp.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("yahoo quotes: %s %s", e.Code, e.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quotes: %w", ErrNoQuotes)
	}

	res := make([]domain.Quote, 0, len(resp.QuoteResponse.Result))
	for _, r := range resp.QuoteResponse.Result {
		res = append(res, domain.Quote{
			Symbol:        r.Symbol,
			Name:          r.ShortName,
			Price:         r.RegularMarketPrice,
			Change:        r.RegularMarketChange,
			ChangePercent: r.RegularMarketChangePercent,
		})
	}
	return res, nil
}

// Package aggregator runs the news pipeline: fetch all sources, normalize, filter, score and rank.
package aggregator

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/feed"
	"github.com/tickerwire/tickerwire/pkg/normalize"
	"github.com/tickerwire/tickerwire/pkg/rank"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure -fmt goimports . Scorer
//go:generate moq -out mocks/paraphraser.go -pkg mocks -skip-ensure -fmt goimports . Paraphraser

// Fetcher fetches a batch of sources, one result per source
type Fetcher interface {
	FetchAll(ctx context.Context, sources []domain.Source) []feed.Result
}

// Scorer computes scores for normalized items
type Scorer interface {
	Score(ctx context.Context, items []domain.Item) []domain.ScoredItem
}

// Paraphraser rewrites a description into a short summary
type Paraphraser interface {
	Paraphrase(ctx context.Context, text string) (string, error)
}

// Aggregator combines fetcher and scorer. Scorer and Paraphraser are optional.
type Aggregator struct {
	Fetcher     Fetcher
	Scorer      Scorer
	Paraphraser Paraphraser
	Concurrency int           // max parallel paraphrase calls
	Timeout     time.Duration // per-call paraphrase limit
	Budget      time.Duration // limit for all paraphrase calls together
}

// Request defines a single pipeline run
type Request struct {
	Sources    []domain.Source
	SummaryLen int
	Filter     func(domain.Item) bool // optional, keeps items returning true
	Score      bool                   // compute sub-scores and composite
	Rank       rank.Options
}

// Response is the outcome of a pipeline run
type Response struct {
	Items   []domain.ScoredItem
	Total   int // normalized items before filter and rank
	Sources int // number of requested sources
	Failed  int // sources that returned an error
}

// Run executes the pipeline. Failed sources contribute nothing, Run itself never fails.
func (a *Aggregator) Run(ctx context.Context, req Request) Response {
	results := a.Fetcher.FetchAll(ctx, req.Sources)
	resp := Response{Sources: len(req.Sources)}

	var items []domain.Item
	for _, r := range results {
		if r.Err != nil {
			resp.Failed++
			continue
		}
		for _, raw := range r.Items {
			item, ok := normalize.Normalize(raw, r.Source, req.SummaryLen)
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}
	resp.Total = len(items)

	if req.Filter != nil {
		filtered := items[:0]
		for _, it := range items {
			if req.Filter(it) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	var scored []domain.ScoredItem
	if req.Score && a.Scorer != nil {
		scored = a.Scorer.Score(ctx, items)
	} else {
		scored = make([]domain.ScoredItem, len(items))
		for i, it := range items {
			scored[i] = domain.ScoredItem{Item: it}
		}
	}

	resp.Items = rank.Rank(scored, req.Rank)
	lgr.Printf("[DEBUG] aggregated %d of %d items from %d sources, %d failed",
		len(resp.Items), resp.Total, resp.Sources, resp.Failed)
	return resp
}

// Paraphrase replaces summaries with paraphrased versions. Items failing to paraphrase
// keep their summary truncated to fallbackLen runes.
func (a *Aggregator) Paraphrase(ctx context.Context, items []domain.ScoredItem, fallbackLen int) []domain.ScoredItem {
	res := make([]domain.ScoredItem, len(items))
	copy(res, items)

	if a.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Budget)
		defer cancel()
	}

	var g errgroup.Group
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}
	for i := range res {
		g.Go(func() error {
			res[i].Summary = a.paraphraseOne(ctx, res[i].Summary, fallbackLen)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (a *Aggregator) paraphraseOne(ctx context.Context, text string, fallbackLen int) string {
	if text == "" {
		return "No description available."
	}
	fallback := normalize.Truncate(text, fallbackLen)
	if a.Paraphraser == nil || ctx.Err() != nil {
		return fallback
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	out, err := a.Paraphraser.Paraphrase(ctx, text)
	if err != nil || normalize.Text(out) == "" {
		lgr.Printf("[WARN] paraphrase failed, using truncated text: %v", err)
		return fallback
	}
	return normalize.Text(out)
}

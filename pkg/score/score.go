// Package score computes recency, reputation and relevance sub-scores of news items
// and combines them into a composite ranking score.
package score

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// sub-score bounds
const (
	MinScore     = 1.0
	MaxScore     = 10.0
	NeutralScore = 5.0
)

// Rater judges relevance of an item on the 1-10 scale, usually via an external text classifier
type Rater interface {
	Rate(ctx context.Context, item domain.Item) (int, error)
}

// Weights of the composite score
type Weights struct {
	Recency    float64 `yaml:"recency" json:"recency"`
	Relevance  float64 `yaml:"relevance" json:"relevance"`
	Reputation float64 `yaml:"reputation" json:"reputation"`
}

// DefaultWeights returns the standard 0.5/0.3/0.2 weighting
func DefaultWeights() Weights {
	return Weights{Recency: 0.5, Relevance: 0.3, Reputation: 0.2}
}

// Composite returns the weighted sum of sub-scores
func (w Weights) Composite(recency, relevance, reputation float64) float64 {
	return recency*w.Recency + relevance*w.Relevance + reputation*w.Reputation
}

// Recency is a step function of elapsed time since publication, unknown time gets the minimum
func Recency(now, published time.Time) float64 {
	if published.IsZero() {
		return MinScore
	}
	hours := now.Sub(published).Hours()
	switch {
	case hours < 1:
		return 10
	case hours < 3:
		return 8
	case hours < 6:
		return 6
	case hours < 12:
		return 4
	case hours < 24:
		return 2
	default:
		return 1
	}
}

// Reputation looks up the source in the table, unknown sources get the neutral score
func Reputation(table map[string]float64, source string) float64 {
	if v, ok := table[source]; ok {
		return Clamp(v)
	}
	return NeutralScore
}

// Clamp bounds v to the sub-score range
func Clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Scorer scores items. Rater is optional, without it relevance is neutral.
type Scorer struct {
	Rater       Rater
	Reputations map[string]float64
	Weights     Weights
	Timeout     time.Duration // per-item relevance call limit
	Budget      time.Duration // limit for all relevance calls together, unrated items stay neutral
	Concurrency int           // max parallel relevance calls, 0 means unlimited
	Now         func() time.Time
}

// Score computes sub-scores and composite for all items, preserving input order.
// Relevance calls run concurrently, each bounded by its own timeout; a failed call gives the neutral score.
func (s *Scorer) Score(ctx context.Context, items []domain.Item) []domain.ScoredItem {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	relevance := s.relevance(ctx, items)

	res := make([]domain.ScoredItem, len(items))
	for i, item := range items {
		rec := Clamp(Recency(now, item.Published))
		rep := Reputation(s.Reputations, item.Source)
		rel := Clamp(relevance[i])
		res[i] = domain.ScoredItem{
			Item:       item,
			Recency:    rec,
			Reputation: rep,
			Relevance:  rel,
			Composite:  s.Weights.Composite(rec, rel, rep),
		}
	}
	return res
}

func (s *Scorer) relevance(ctx context.Context, items []domain.Item) []float64 {
	res := make([]float64, len(items))
	for i := range res {
		res[i] = NeutralScore
	}
	if s.Rater == nil || len(items) == 0 {
		return res
	}

	if s.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Budget)
		defer cancel()
	}

	var g errgroup.Group
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for i, item := range items {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // budget spent, keep neutral
			}
			res[i] = s.rateOne(ctx, item)
			return nil
		})
	}
	_ = g.Wait() // rateOne never fails
	if err := ctx.Err(); err != nil {
		lgr.Printf("[WARN] relevance scoring stopped after %v, unrated items are neutral: %v", s.Budget, err)
	}
	return res
}

func (s *Scorer) rateOne(ctx context.Context, item domain.Item) float64 {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	v, err := s.Rater.Rate(ctx, item)
	if err != nil {
		lgr.Printf("[WARN] relevance scoring failed for %q: %v", item.Headline, err)
		return NeutralScore
	}
	return Clamp(float64(v))
}

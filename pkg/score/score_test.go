package score

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

type raterFunc func(ctx context.Context, item domain.Item) (int, error)

func (f raterFunc) Rate(ctx context.Context, item domain.Item) (int, error) { return f(ctx, item) }

func TestRecency(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want float64
	}{
		{0, 10},
		{59 * time.Minute, 10},
		{time.Hour, 8},
		{2*time.Hour + 59*time.Minute, 8},
		{3 * time.Hour, 6},
		{6 * time.Hour, 4},
		{12 * time.Hour, 2},
		{23 * time.Hour, 2},
		{24 * time.Hour, 1},
		{30 * 24 * time.Hour, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Recency(now, now.Add(-tt.ago)), 0.0001, "ago %v", tt.ago)
	}
	assert.InDelta(t, 1.0, Recency(now, time.Time{}), 0.0001, "unknown time")
}

func TestRecency_NonIncreasingAndBounded(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	prev := Recency(now, now)
	for m := 0; m <= 48*60; m += 7 {
		v := Recency(now, now.Add(-time.Duration(m)*time.Minute))
		assert.LessOrEqual(t, v, prev, "minute %d", m)
		assert.GreaterOrEqual(t, v, MinScore)
		assert.LessOrEqual(t, v, MaxScore)
		prev = v
	}
}

func TestReputation(t *testing.T) {
	table := map[string]float64{"Wall Street Journal": 10, "Motley Fool": 5, "Broken": 42}
	assert.InDelta(t, 10.0, Reputation(table, "Wall Street Journal"), 0.0001)
	assert.InDelta(t, 5.0, Reputation(table, "Motley Fool"), 0.0001)
	assert.InDelta(t, 5.0, Reputation(table, "Some Blog"), 0.0001)
	assert.InDelta(t, 10.0, Reputation(table, "Broken"), 0.0001, "clamped")
	assert.InDelta(t, 5.0, Reputation(nil, "any"), 0.0001)
}

func TestWeights_Composite(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 10*0.5+7*0.3+9*0.2, w.Composite(10, 7, 9), 1e-9)

	base := w.Composite(5, 5, 5)
	assert.Greater(t, w.Composite(6, 5, 5), base)
	assert.Greater(t, w.Composite(5, 6, 5), base)
	assert.Greater(t, w.Composite(5, 5, 6), base)
	assert.Less(t, w.Composite(4, 5, 5), base)
	assert.Less(t, w.Composite(5, 4, 5), base)
	assert.Less(t, w.Composite(5, 5, 4), base)
}

func TestScorer_Score(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	items := []domain.Item{
		{Headline: "fresh", Source: "Financial Times", Published: now.Add(-30 * time.Minute)},
		{Headline: "old", Source: "Unknown Blog", Published: now.Add(-48 * time.Hour)},
		{Headline: "failing", Source: "CNBC", Published: now.Add(-2 * time.Hour)},
		{Headline: "overflow", Source: "CNBC", Published: now.Add(-5 * time.Hour)},
	}

	var calls int32
	rater := raterFunc(func(_ context.Context, item domain.Item) (int, error) {
		atomic.AddInt32(&calls, 1)
		switch item.Headline {
		case "fresh":
			return 9, nil
		case "failing":
			return 0, errors.New("service down")
		case "overflow":
			return 42, nil
		}
		return 2, nil
	})

	s := &Scorer{
		Rater:       rater,
		Reputations: map[string]float64{"Financial Times": 10, "CNBC": 8},
		Weights:     DefaultWeights(),
		Timeout:     time.Second,
		Concurrency: 2,
		Now:         func() time.Time { return now },
	}
	res := s.Score(context.Background(), items)
	require.Len(t, res, 4)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))

	assert.Equal(t, "fresh", res[0].Headline)
	assert.InDelta(t, 10.0, res[0].Recency, 0.0001)
	assert.InDelta(t, 9.0, res[0].Relevance, 0.0001)
	assert.InDelta(t, 10.0, res[0].Reputation, 0.0001)
	assert.InDelta(t, 10*0.5+9*0.3+10*0.2, res[0].Composite, 1e-9)

	assert.InDelta(t, 1.0, res[1].Recency, 0.0001)
	assert.InDelta(t, 2.0, res[1].Relevance, 0.0001)
	assert.InDelta(t, 5.0, res[1].Reputation, 0.0001)

	assert.InDelta(t, 5.0, res[2].Relevance, 0.0001, "failed rating is neutral, item kept")
	assert.InDelta(t, 10.0, res[3].Relevance, 0.0001, "clamped")
}

func TestScorer_ScoreWithoutRater(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := &Scorer{Weights: DefaultWeights(), Now: func() time.Time { return now }}
	res := s.Score(context.Background(), []domain.Item{{Headline: "a", Published: now}})
	require.Len(t, res, 1)
	assert.InDelta(t, 5.0, res[0].Relevance, 0.0001)
	assert.InDelta(t, 10*0.5+5*0.3+5*0.2, res[0].Composite, 1e-9)
}

func TestScorer_RaterTimeout(t *testing.T) {
	rater := raterFunc(func(ctx context.Context, _ domain.Item) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 10, nil
		}
	})
	s := &Scorer{Rater: rater, Weights: DefaultWeights(), Timeout: 20 * time.Millisecond}

	st := time.Now()
	res := s.Score(context.Background(), []domain.Item{{Headline: "slow"}, {Headline: "slow too"}})
	assert.Less(t, time.Since(st), 2*time.Second)
	require.Len(t, res, 2)
	assert.InDelta(t, 5.0, res[0].Relevance, 0.0001)
	assert.InDelta(t, 5.0, res[1].Relevance, 0.0001)
}

func TestScorer_Budget(t *testing.T) {
	var calls atomic.Int32
	rater := raterFunc(func(ctx context.Context, _ domain.Item) (int, error) {
		calls.Add(1)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(30 * time.Millisecond):
			return 9, nil
		}
	})
	s := &Scorer{Rater: rater, Weights: DefaultWeights(), Timeout: 5 * time.Second,
		Budget: 100 * time.Millisecond, Concurrency: 2}

	items := make([]domain.Item, 200)
	for i := range items {
		items[i] = domain.Item{Headline: "item"}
	}
	st := time.Now()
	res := s.Score(context.Background(), items)
	assert.Less(t, time.Since(st), 2*time.Second, "whole stage bounded by budget")
	require.Len(t, res, 200)

	assert.Less(t, int(calls.Load()), 200, "items after the budget are not rated")
	assert.InDelta(t, 9.0, res[0].Relevance, 0.0001, "rated before the budget")
	assert.InDelta(t, 5.0, res[199].Relevance, 0.0001, "unrated item is neutral")
}

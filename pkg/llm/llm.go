// Package llm rates news items for financial importance and paraphrases descriptions.
// Both OpenAI-compatible endpoints and Gemini are supported.
package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/tickerwire/tickerwire/pkg/config"
	"github.com/tickerwire/tickerwire/pkg/domain"
	"github.com/tickerwire/tickerwire/pkg/score"
)

// ErrNoScore is returned when the answer has no number in it
var ErrNoScore = errors.New("no score in llm answer")

// maxParaphraseInput limits text sent for paraphrasing, in runes
const maxParaphraseInput = 500

const defaultRatePrompt = `You are a senior financial analyst screening headlines for executives, institutional investors and business professionals. Rate the importance of the headline below on a scale from 1 to 10.

Score 7-10 for news that moves markets or changes business decisions:
- earnings reports and guidance changes of significant companies
- mergers, acquisitions, IPOs and other large corporate transactions
- central bank decisions and interest rate changes
- key economic data such as jobs, GDP, inflation and manufacturing
- regulatory changes affecting whole industries
- leadership changes at large companies
- geopolitical events with direct market impact
- bankruptcies, restructurings and financial distress at notable companies

Score 1-4 for content without market relevance:
- personal finance advice and "how to" or "should I" pieces
- consumer anecdotes and human interest stories
- lifestyle, entertainment and celebrity business content
- opinion on personal decisions, household budgets and purchases
- retail investing tips and product roundups
- minor company announcements

Most headlines deserve 5 or less. Answer with a single number from 1 to 10 and nothing else.`

const defaultParaphrasePrompt = "Rewrite this news description in 1-2 sentences. Keep it factual and concise. Answer with the rewritten text only."

var numberRe = regexp.MustCompile(`\d+`)

// Client rates items and paraphrases text
type Client interface {
	Rate(ctx context.Context, item domain.Item) (int, error)
	Paraphrase(ctx context.Context, text string) (string, error)
}

// New makes a client for the configured provider. Returns nil client if no provider set.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAI(cfg), nil
	case "gemini":
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

// completer sends a single prompt and returns the answer text
type completer func(ctx context.Context, system, user string, maxTokens int) (string, error)

// rater implements Rate and Paraphrase on top of a completer
type rater struct {
	complete         completer
	ratePrompt       string
	paraphrasePrompt string
	rateTokens       int
	paraphraseTokens int
	attempts         int
}

func newRater(cfg config.LLMConfig, complete completer) rater {
	res := rater{
		complete:         complete,
		ratePrompt:       cfg.RatePrompt,
		paraphrasePrompt: cfg.ParaphrasePrompt,
		rateTokens:       cfg.RateMaxTokens,
		paraphraseTokens: cfg.ParaphraseTokens,
		attempts:         cfg.Attempts,
	}
	if res.ratePrompt == "" {
		res.ratePrompt = defaultRatePrompt
	}
	if res.paraphrasePrompt == "" {
		res.paraphrasePrompt = defaultParaphrasePrompt
	}
	if res.attempts < 1 {
		res.attempts = 1
	}
	return res
}

// Rate asks for the item importance, 1-10. Answers without a number are retried.
func (r rater) Rate(ctx context.Context, item domain.Item) (int, error) {
	prompt := buildRatePrompt(item)

	var result int
	var callErr error
	retrier := repeater.NewBackoff(r.attempts, 100*time.Millisecond, repeater.WithMaxDelay(time.Second))
	err := retrier.Do(ctx, func() error {
		answer, err := r.complete(ctx, r.ratePrompt, prompt, r.rateTokens)
		if err != nil {
			callErr = err // transport errors are not retried
			return nil
		}
		result, err = ParseScore(answer)
		return err
	})
	if callErr != nil {
		return 0, fmt.Errorf("rate %q: %w", item.Headline, callErr)
	}
	if err != nil {
		return 0, fmt.Errorf("rate %q: %w", item.Headline, err)
	}
	return result, nil
}

// Paraphrase rewrites text in 1-2 sentences
func (r rater) Paraphrase(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("nothing to paraphrase")
	}
	if runes := []rune(text); len(runes) > maxParaphraseInput {
		text = string(runes[:maxParaphraseInput])
	}
	answer, err := r.complete(ctx, r.paraphrasePrompt, text, r.paraphraseTokens)
	if err != nil {
		return "", fmt.Errorf("paraphrase: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("paraphrase: empty answer")
	}
	return answer, nil
}

func buildRatePrompt(item domain.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Headline: %q\n", item.Headline)
	fmt.Fprintf(&sb, "Source: %s\n", item.Source)
	fmt.Fprintf(&sb, "Description: %s\n\n", item.Summary)
	sb.WriteString("Would a Bloomberg Terminal subscriber care about this? Return only the number.")
	return sb.String()
}

// ParseScore extracts the first integer from answer and clamps it to 1-10
func ParseScore(answer string) (int, error) {
	m := numberRe.FindString(answer)
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoScore, answer)
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoScore, answer)
	}
	return int(score.Clamp(float64(v))), nil
}

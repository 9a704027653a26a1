package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tickerwire/tickerwire/pkg/config"
)

// Gemini talks to Google Gemini API
type Gemini struct {
	rater
	client *genai.Client
	config config.LLMConfig
}

// NewGemini creates a new Gemini client, endpoint overrides the API base url
func NewGemini(ctx context.Context, cfg config.LLMConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	res := &Gemini{client: client, config: cfg}
	res.rater = newRater(cfg, res.complete)
	return res, nil
}

func (g *Gemini) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	temperature := float32(g.config.Temperature)
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: user}}}}
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       &temperature,
		MaxOutputTokens:   int32(maxTokens), //nolint:gosec // small configured value
	})
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return resp.Text(), nil
}

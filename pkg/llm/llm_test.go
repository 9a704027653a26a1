package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwire/tickerwire/pkg/config"
	"github.com/tickerwire/tickerwire/pkg/domain"
)

func openaiServer(t *testing.T, answers ...string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(answers) {
			n = len(answers) - 1
		}
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answers[n]}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{Provider: "openai", Endpoint: endpoint, APIKey: "test-key", Model: "gpt-4o-mini",
		Temperature: 0.2, RateMaxTokens: 10, ParaphraseTokens: 100, Attempts: 3}
}

var testItem = domain.Item{Headline: "Fed cuts rates by 50bp", Source: "Reuters", Summary: "The Federal Reserve cut rates."}

func TestOpenAI_Rate(t *testing.T) {
	tbl := []struct {
		answer string
		want   int
	}{
		{"8", 8},
		{" Score: 7/10", 7},
		{"15", 10},
		{"0", 1},
	}
	for _, tt := range tbl {
		t.Run(tt.answer, func(t *testing.T) {
			server, calls := openaiServer(t, tt.answer)
			client := NewOpenAI(testConfig(server.URL + "/v1"))
			got, err := client.Rate(context.Background(), testItem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestOpenAI_RateRetriesUnparseable(t *testing.T) {
	server, calls := openaiServer(t, "I can't say", "6")
	client := NewOpenAI(testConfig(server.URL + "/v1"))
	got, err := client.Rate(context.Background(), testItem)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestOpenAI_RateGivesUp(t *testing.T) {
	server, calls := openaiServer(t, "no idea")
	client := NewOpenAI(testConfig(server.URL + "/v1"))
	_, err := client.Rate(context.Background(), testItem)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoScore), "got %v", err)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestOpenAI_RateRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 10, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Rate the importance")
		assert.Contains(t, req.Messages[1].Content, `Headline: "Fed cuts rates by 50bp"`)
		assert.Contains(t, req.Messages[1].Content, "Source: Reuters")
		assert.Contains(t, req.Messages[1].Content, "Description: The Federal Reserve cut rates.")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "9"}}}})
	}))
	defer server.Close()

	got, err := NewOpenAI(testConfig(server.URL+"/v1")).Rate(context.Background(), testItem)
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestOpenAI_RateServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	_, err := NewOpenAI(testConfig(server.URL+"/v1")).Rate(context.Background(), testItem)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "transport errors not retried")
}

func TestOpenAI_RateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewOpenAI(testConfig(server.URL+"/v1")).Rate(ctx, testItem)
	require.Error(t, err)
}

func TestOpenAI_Paraphrase(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 100, req.MaxTokens)
		got = req.Messages[1].Content
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "  Apple beat estimates.  "}}}})
	}))
	defer server.Close()

	client := NewOpenAI(testConfig(server.URL + "/v1"))
	res, err := client.Paraphrase(context.Background(), strings.Repeat("a", 700))
	require.NoError(t, err)
	assert.Equal(t, "Apple beat estimates.", res)
	assert.Len(t, got, 500, "input truncated")

	_, err = client.Paraphrase(context.Background(), "   ")
	require.Error(t, err)
}

func TestGemini(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"7"}]}}]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL + "/")
	cfg.Provider, cfg.Model = "gemini", "gemini-2.0-flash"
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &Gemini{}, client)

	got, err := client.Rate(context.Background(), testItem)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasSuffix(paths[0], "gemini-2.0-flash:generateContent"), paths[0])
}

func TestNew(t *testing.T) {
	client, err := New(context.Background(), config.LLMConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = New(context.Background(), testConfig("http://localhost/v1"))
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, client)

	_, err = New(context.Background(), config.LLMConfig{Provider: "gemini", Model: "m"})
	require.Error(t, err)

	_, err = New(context.Background(), config.LLMConfig{Provider: "bard"})
	require.Error(t, err)
}

func TestParseScore(t *testing.T) {
	tbl := []struct {
		in   string
		want int
		err  bool
	}{
		{"5", 5, false},
		{"10", 10, false},
		{"score 3 of 10", 3, false},
		{"99", 10, false},
		{"", 0, true},
		{"none", 0, true},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScore(tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrNoScore)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

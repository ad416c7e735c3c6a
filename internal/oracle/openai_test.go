package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIEmbedder(t *testing.T, handler http.HandlerFunc) *OpenAIEmbedder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	e, err := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "small",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)
	return e
}

func TestOpenAIEmbedder_HappyPath(t *testing.T) {
	var gotReq map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			// Out of order on purpose: the embedder must honour "index".
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{0, 1}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
			"usage": map[string]any{"prompt_tokens": 6, "total_tokens": 6},
		})
	}

	e := newTestOpenAIEmbedder(t, handler)
	vecs, err := e.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vecs)
	assert.Equal(t, "text-embedding-3-small", gotReq["model"])
	assert.Equal(t, "text-embedding-3-small", e.ModelID())
}

func TestOpenAIEmbedder_CountMismatch(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
		})
	}

	e := newTestOpenAIEmbedder(t, handler)
	_, err := e.Embed(context.Background(), []string{"a", "b"})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "expected ErrInvalidResponse, got %T", err)
}

func TestOpenAIEmbedder_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}

	e := newTestOpenAIEmbedder(t, handler)
	_, err := e.Embed(context.Background(), []string{"a"})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "expected ErrRateLimit, got %T: %v", err, err)
}

func TestOpenAIEmbedder_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Internal error", "type": "server_error"},
		})
	}

	e := newTestOpenAIEmbedder(t, handler)
	_, err := e.Embed(context.Background(), []string{"a"})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "expected ErrProviderUnavailable, got %T: %v", err, err)
}

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(OpenAIConfig{})
	require.Error(t, err)
}

func TestNewOpenRouterEmbedder(t *testing.T) {
	_, err := NewOpenRouterEmbedder(OpenRouterConfig{})
	require.Error(t, err)

	e, err := NewOpenRouterEmbedder(OpenRouterConfig{APIKey: "k", Model: "openai/text-embedding-3-small"})
	require.NoError(t, err)
	assert.Equal(t, "openai/text-embedding-3-small", e.ModelID())
}

func TestModelMapping(t *testing.T) {
	tests := []struct {
		input  string
		models map[string]string
		want   string
	}{
		{"small", openaiModels, "text-embedding-3-small"},
		{"large", openaiModels, "text-embedding-3-large"},
		{"text-embedding-3-small", openaiModels, "text-embedding-3-small"},
		{"gemini-embedding", geminiModels, "gemini-embedding-001"},
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), GeminiConfig{})
	require.Error(t, err)
}

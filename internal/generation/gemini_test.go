package generation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/study-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiConfig(baseURL string) config.GenerationConfig {
	return config.GenerationConfig{
		Provider:      "gemini",
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: baseURL,
		GeminiModel:   "gemini-2.0-flash",
		Temperature:   0.5,
		MaxTokens:     4096,
		Timeout:       5 * time.Second,
	}
}

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), geminiConfig(server.URL), discardLogger())
	require.NoError(t, err)
	require.True(t, client.IsConfigured())
	return client
}

func TestGeminiClient_Generate(t *testing.T) {
	var body string
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"title\": \"Quiz\"}"}]}}]}`))
	})

	out, err := client.Generate(context.Background(), "be terse", "make a quiz")
	require.NoError(t, err)

	assert.Equal(t, `{"title": "Quiz"}`, out)
	assert.Equal(t, "Gemini (gemini-2.0-flash)", client.Name())
	assert.Contains(t, body, "make a quiz")
	assert.Contains(t, body, "be terse")
	assert.Contains(t, body, `"maxOutputTokens":4096`)
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Generate(context.Background(), "s", "u")

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusTooManyRequests, providerErr.StatusCode)
	assert.Equal(t, "Resource has been exhausted", providerErr.Message)
	assert.False(t, IsNotConfigured(err))
}

func TestGeminiClient_EmptyText(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Generate(context.Background(), "s", "u")

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "response contained no text", providerErr.Message)
	assert.Zero(t, providerErr.StatusCode)
}

func TestGeminiClient_NotConfigured(t *testing.T) {
	cfg := geminiConfig("")
	cfg.GeminiAPIKey = ""
	client, err := NewGeminiClient(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.False(t, client.IsConfigured())

	_, err = client.Generate(context.Background(), "s", "u")
	assert.True(t, IsNotConfigured(err))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

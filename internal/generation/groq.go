package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/study-service/internal/config"
)

const maxResponseBytes = 4 << 20

// GroqClient calls an OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *slog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewGroqClient(cfg config.GenerationConfig, logger *slog.Logger) *GroqClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{
		apiKey:      cfg.GroqAPIKey,
		baseURL:     strings.TrimRight(cfg.GroqBaseURL, "/"),
		model:       cfg.GroqModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger.With("provider", "groq", "model", cfg.GroqModel),
	}
}

func (c *GroqClient) Name() string {
	return fmt.Sprintf("Groq (%s)", c.model)
}

func (c *GroqClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Generate sends one system and one user message and returns the first choice.
func (c *GroqClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.IsConfigured() {
		return "", &ProviderError{Provider: c.Name(), Message: "GROQ_API_KEY is not set", Err: ErrNotConfigured}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Generation request failed", "error", err)
		return "", &ProviderError{Provider: c.Name(), Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	var decoded chatResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(raw))
		if decodeErr == nil && decoded.Error != nil && decoded.Error.Message != "" {
			message = decoded.Error.Message
		}
		c.logger.WarnContext(ctx, "Generation backend returned error", "status_code", resp.StatusCode, "message", message)
		return "", &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return "", &ProviderError{Provider: c.Name(), Message: "decode response", Err: decodeErr}
	}
	if len(decoded.Choices) == 0 {
		return "", &ProviderError{Provider: c.Name(), Message: "response contained no choices"}
	}

	content := decoded.Choices[0].Message.Content
	c.logger.DebugContext(ctx, "Generation completed",
		"duration", time.Since(start),
		"response_chars", len(content))
	return content, nil
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/study-service/internal/config"
	"google.golang.org/genai"
)

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	logger      *slog.Logger
}

// NewGeminiClient returns an unconfigured client when no API key is set.
func NewGeminiClient(ctx context.Context, cfg config.GenerationConfig, logger *slog.Logger) (*GeminiClient, error) {
	c := &GeminiClient{
		model:       cfg.GeminiModel,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		logger:      logger.With("provider", "gemini", "model", cfg.GeminiModel),
	}
	if cfg.GeminiAPIKey == "" {
		return c, nil
	}

	httpOptions := genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL}
	if cfg.Timeout > 0 {
		httpOptions.Timeout = genai.Ptr(cfg.Timeout)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *GeminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s)", c.model)
}

func (c *GeminiClient) IsConfigured() bool {
	return c.client != nil
}

func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.IsConfigured() {
		return "", &ProviderError{Provider: c.Name(), Message: "GEMINI_API_KEY is not set", Err: ErrNotConfigured}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "Generation request failed", "error", err)
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Provider: c.Name(), StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return "", &ProviderError{Provider: c.Name(), Message: "request failed", Err: err}
	}

	content := resp.Text()
	if content == "" {
		return "", &ProviderError{Provider: c.Name(), Message: "response contained no text"}
	}

	c.logger.DebugContext(ctx, "Generation completed",
		"duration", time.Since(start),
		"response_chars", len(content))
	return content, nil
}

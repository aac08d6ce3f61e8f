// Package generation sends prompts to a hosted language model and returns its raw text.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/study-service/internal/config"
)

// ErrNotConfigured is wrapped by a ProviderError when the backend has no API key.
var ErrNotConfigured = errors.New("generation backend is not configured")

// Client is a single-turn text generation backend.
type Client interface {
	Name() string
	IsConfigured() bool
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderError reports a failed generation round trip.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsNotConfigured reports whether err means generation is unavailable.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg config.GenerationConfig, logger *slog.Logger) (Client, error) {
	switch cfg.Provider {
	case "", "groq":
		return NewGroqClient(cfg, logger), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg, logger)
	}
	return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
}

// Package extractor recovers structured documents from free-form model output.
package extractor

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Document is a decoded JSON object.
type Document map[string]any

// ItemsKey wraps top-level arrays recovered from a response.
const ItemsKey = "items"

// Strategy is one attempt at recovering a Document from raw text.
type Strategy struct {
	Name  string
	Apply func(text string) (Document, bool)
}

// Extractor runs its strategies in order and returns the first success.
type Extractor struct {
	strategies []Strategy
	logger     *slog.Logger
}

// New builds an Extractor. With no strategies it uses DefaultStrategies.
func New(logger *slog.Logger, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		strategies: strategies,
		logger:     logger,
	}
}

var defaultExtractor = New(slog.New(slog.DiscardHandler))

// Extract runs the default strategy chain over text.
func Extract(text string) (Document, error) {
	return defaultExtractor.Extract(text)
}

// Extract returns the Document recovered by the first strategy that succeeds,
// or an *ExtractionError when none does.
func (e *Extractor) Extract(text string) (Document, error) {
	tried := make([]string, 0, len(e.strategies))
	for _, strategy := range e.strategies {
		tried = append(tried, strategy.Name)
		if doc, ok := strategy.Apply(text); ok {
			e.logger.Debug("Extracted structured response", "strategy", strategy.Name, "keys", len(doc))
			return doc, nil
		}
	}

	err := newExtractionError(text, tried)
	e.logger.Warn("Failed to extract structured response", "strategies", tried, "snippet", err.Snippet)
	return nil, err
}

// decode parses s as an object, or as an array wrapped under ItemsKey.
func decode(s string) (Document, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return nil, false
	}

	switch v := value.(type) {
	case map[string]any:
		return Document(v), true
	case []any:
		return Document{ItemsKey: v}, true
	default:
		return nil, false
	}
}

func decodeObject(s string) (Document, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return nil, false
	}
	return decode(s)
}

func decodeArray(s string) (Document, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "[") {
		return nil, false
	}
	return decode(s)
}

// withoutLineBreaks flattens raw line breaks that models leave inside string literals.
func withoutLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}

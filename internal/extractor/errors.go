package extractor

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// SnippetLimit is the maximum number of characters of the raw response kept on an ExtractionError.
const SnippetLimit = 200

// ErrNoStructuredData is matched by every ExtractionError.
var ErrNoStructuredData = errors.New("no structured data in response")

// ExtractionError reports that no strategy could recover a structured document.
type ExtractionError struct {
	Snippet string
	Tried   []string
}

func newExtractionError(text string, tried []string) *ExtractionError {
	return &ExtractionError{
		Snippet: truncateRunes(text, SnippetLimit),
		Tried:   tried,
	}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract structured data from response: %s...", e.Snippet)
}

func (e *ExtractionError) Unwrap() error {
	return ErrNoStructuredData
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

package extractor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flashcardJSON = `{"title": "Cells", "flashcards": [{"id": 1, "question": "What is a cell?", "answer": "The unit of life"}]}`

func mustDecode(t *testing.T, s string) Document {
	t.Helper()
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestExtract_IdentityOnValidJSON(t *testing.T) {
	doc, err := Extract(flashcardJSON)
	require.NoError(t, err)
	assert.Equal(t, mustDecode(t, flashcardJSON), doc)

	doc, err = Extract("\n\t  " + flashcardJSON + "  \n")
	require.NoError(t, err)
	assert.Equal(t, mustDecode(t, flashcardJSON), doc)
}

func TestExtract_TopLevelArrayIsWrapped(t *testing.T) {
	doc, err := Extract(`[{"term": "a"}, {"term": "b"}]`)
	require.NoError(t, err)

	items, ok := doc[ItemsKey].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestExtract_Fences(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "labeled fence with prose",
			text: "Here are your flashcards:\n```json\n" + flashcardJSON + "\n```\nGood luck studying!",
		},
		{
			name: "label is case insensitive",
			text: "```JSON\n" + flashcardJSON + "\n```",
		},
		{
			name: "second labeled fence is valid",
			text: "```json\n{not json}\n```\nActually, use this:\n```json\n" + flashcardJSON + "\n```",
		},
		{
			name: "unlabeled fence",
			text: "Output:\n```\n" + flashcardJSON + "\n```",
		},
		{
			name: "fence with another label",
			text: "```javascript\n" + flashcardJSON + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Extract(tt.text)
			require.NoError(t, err)
			assert.Equal(t, mustDecode(t, flashcardJSON), doc)
		})
	}
}

func TestExtract_BalancedSpan(t *testing.T) {
	t.Run("single span in prose", func(t *testing.T) {
		doc, err := Extract("Sure! " + flashcardJSON + " Hope this helps.")
		require.NoError(t, err)
		assert.Equal(t, mustDecode(t, flashcardJSON), doc)
	})

	t.Run("delimiters inside strings", func(t *testing.T) {
		doc, err := Extract(`Result: {"text": "use } and { carefully", "n": 2} done`)
		require.NoError(t, err)
		assert.Equal(t, "use } and { carefully", doc["text"])
	})

	t.Run("largest valid span wins", func(t *testing.T) {
		doc, err := Extract(`First {"x": 1} and then {"title": "Big", "pairs": [{"id": 1, "term": "t", "definition": "d"}]}`)
		require.NoError(t, err)
		assert.Equal(t, "Big", doc["title"])
	})

	t.Run("invalid larger span falls back to smaller", func(t *testing.T) {
		doc, err := Extract(`Broken {"title": oops, "extra": "this is long enough to be larger"} then {"title": "ok"}`)
		require.NoError(t, err)
		assert.Equal(t, "ok", doc["title"])
	})

	t.Run("raw line breaks inside strings", func(t *testing.T) {
		doc, err := Extract("Here: {\"overview\": \"line one\r\nline two\"}")
		require.NoError(t, err)
		assert.Equal(t, "line one line two", doc["overview"])
	})
}

func TestExtract_ArraySpan(t *testing.T) {
	doc, err := Extract("The terms are [\"mitosis\", \"meiosis\"] as requested.")
	require.NoError(t, err)
	assert.Equal(t, []any{"mitosis", "meiosis"}, doc[ItemsKey])
}

func TestExtract_QuestionAnswerHeuristic(t *testing.T) {
	doc, err := Extract("Q1: What is 2+2? A1: 4 Q2: Capital of France? A2: Paris")
	require.NoError(t, err)

	assert.Equal(t, GeneratedContentTitle, doc["title"])
	assert.Equal(t, 2, doc["total_count"])

	cards, ok := doc["flashcards"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 2)
	assert.Equal(t, map[string]any{"id": 1, "question": "What is 2+2?", "answer": "4"}, cards[0])
	assert.Equal(t, map[string]any{"id": 2, "question": "Capital of France?", "answer": "Paris"}, cards[1])
}

func TestExtract_QuestionAnswerLongForm(t *testing.T) {
	text := "Question 1: What organelle makes energy?\nAnswer: The mitochondria\n\nQuestion 2: Where is DNA stored?\nAnswer: The nucleus\n\nQuestion 3: Unanswered?"
	doc, err := Extract(text)
	require.NoError(t, err)

	cards := doc["flashcards"].([]any)
	require.Len(t, cards, 2)
	assert.Equal(t, "Where is DNA stored?", cards[1].(map[string]any)["question"])
	assert.Equal(t, "The nucleus", cards[1].(map[string]any)["answer"])
}

func TestExtract_Failure(t *testing.T) {
	_, err := Extract("I'm sorry, I cannot help with that request.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStructuredData))

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "I'm sorry, I cannot help with that request.", extractionErr.Snippet)
	assert.Len(t, extractionErr.Tried, len(DefaultStrategies()))
}

func TestExtract_FailureSnippetIsBounded(t *testing.T) {
	long := strings.Repeat("é", 500)
	_, err := Extract(long)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, SnippetLimit, utf8.RuneCountInString(extractionErr.Snippet))
	assert.Contains(t, err.Error(), "could not extract structured data from response")
}

func TestExtract_ScalarIsNotADocument(t *testing.T) {
	_, err := Extract("42")
	assert.ErrorIs(t, err, ErrNoStructuredData)
}

func TestExtractor_CustomStrategies(t *testing.T) {
	e := New(nil, Strategy{Name: "direct", Apply: direct})

	_, err := e.Extract("```json\n{\"a\": 1}\n```")
	assert.Error(t, err)

	doc, err := e.Extract(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), doc["a"])
}

func TestBalancedSpans(t *testing.T) {
	spans := balancedSpans(`a {"b": {"c": 1}} and {"d": "}"} }`, '{', '}')
	assert.Equal(t, []string{`{"b": {"c": 1}}`, `{"d": "}"}`}, spans)
}

package records

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/study-service/internal/extractor"
	"github.com/SAP-F-2025/study-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeText(t *testing.T, kind Kind, text string) (Record, error) {
	t.Helper()
	doc, err := extractor.Extract(text)
	require.NoError(t, err)
	return NewDecoder(validator.New()).Decode(kind, doc)
}

func quizJSON(options string) string {
	return `{"title": "Cells", "questions": [{"id": 1, "question": "Powerhouse of the cell?", "options": ` + options + `, "explanation": "It makes ATP"}]}`
}

const validOptions = `[{"label": "A", "text": "Nucleus", "is_correct": false}, {"label": "B", "text": "Mitochondria", "is_correct": true}, {"label": "C", "text": "Ribosome", "is_correct": false}, {"label": "D", "text": "Golgi", "is_correct": false}]`

func TestDecode_FlashcardSet(t *testing.T) {
	record, err := decodeText(t, KindFlashcards, "```json\n{\"flashcards\": [{\"question\": \"Q?\", \"answer\": \"A\"}, {\"question\": \"Q2?\", \"answer\": \"B\"}]}\n```")
	require.NoError(t, err)

	set := record.(*FlashcardSet)
	assert.Equal(t, "Flashcards", set.Title)
	assert.Equal(t, 2, set.ItemCount())
	assert.Equal(t, 1, set.Flashcards[0].ID)
	assert.Equal(t, 2, set.Flashcards[1].ID)
}

func TestDecode_RenumbersInvalidIDs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"missing id after a taken one", `{"flashcards": [{"id": 2, "question": "Q1", "answer": "A"}, {"question": "Q2", "answer": "B"}]}`, []int{1, 2}},
		{"repeated id", `{"flashcards": [{"id": 1, "question": "Q1", "answer": "A"}, {"id": 1, "question": "Q2", "answer": "B"}]}`, []int{1, 2}},
		{"fractional id", `{"flashcards": [{"id": 1.5, "question": "Q1", "answer": "A"}, {"id": 7, "question": "Q2", "answer": "B"}]}`, []int{1, 2}},
		{"distinct ids are kept", `{"flashcards": [{"id": 3, "question": "Q1", "answer": "A"}, {"id": 1, "question": "Q2", "answer": "B"}]}`, []int{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := decodeText(t, KindFlashcards, tt.text)
			require.NoError(t, err)

			set := record.(*FlashcardSet)
			var ids []int
			for _, card := range set.Flashcards {
				ids = append(ids, card.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDecode_QuizWithRepeatedIDs(t *testing.T) {
	text := `{"title": "Cells", "questions": [` +
		`{"id": 1, "question": "Powerhouse?", "options": ` + validOptions + `},` +
		`{"id": 1, "question": "Energy organelle?", "options": ` + validOptions + `}]}`
	record, err := decodeText(t, KindQuiz, text)
	require.NoError(t, err)

	quiz := record.(*Quiz)
	first, ok := quiz.Question(1)
	require.True(t, ok)
	assert.Equal(t, "Powerhouse?", first.Question)
	second, ok := quiz.Question(2)
	require.True(t, ok)
	assert.Equal(t, "Energy organelle?", second.Question)
}

func TestValidate_RejectsRepeatedIDs(t *testing.T) {
	decoder := NewDecoder(validator.New())
	tests := []struct {
		name   string
		record Record
		field  string
	}{
		{"flashcards", &FlashcardSet{Title: "T", Flashcards: []Flashcard{{ID: 1, Question: "q", Answer: "a"}, {ID: 1, Question: "q2", Answer: "b"}}}, "flashcards"},
		{"pairs", &MatchingSet{Title: "T", Pairs: []MatchingPair{{ID: 2, Term: "a", Definition: "b"}, {ID: 2, Term: "c", Definition: "d"}}}, "pairs"},
		{"facts", &StudyGuide{Title: "T", Summary: "s", Facts: []Fact{{ID: 1, Fact: "x"}, {ID: 1, Fact: "y"}}}, "facts"},
		{"outlines", &StudyGuide{Title: "T", Outlines: []Section{{ID: 4, Title: "a"}, {ID: 4, Title: "b"}}}, "outlines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs validator.ValidationErrors
			require.ErrorAs(t, decoder.Validate(tt.record), &errs)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, "unique", errs[0].Rule)
			assert.Equal(t, "must not repeat id values", errs[0].Message)
		})
	}
}

func TestDecode_FlashcardsFromQuestionAnswerProse(t *testing.T) {
	record, err := decodeText(t, KindFlashcards, "Q1: What is 2+2? A1: 4 Q2: Capital of France? A2: Paris")
	require.NoError(t, err)

	set := record.(*FlashcardSet)
	assert.Equal(t, extractor.GeneratedContentTitle, set.RecordTitle())
	assert.Equal(t, Flashcard{ID: 2, Question: "Capital of France?", Answer: "Paris"}, set.Flashcards[1])
}

func TestDecode_ItemsAlias(t *testing.T) {
	record, err := decodeText(t, KindMatching, `[{"term": "ATP", "definition": "Energy carrier"}]`)
	require.NoError(t, err)

	set := record.(*MatchingSet)
	assert.Equal(t, "Matching Game", set.Title)
	require.Len(t, set.Pairs, 1)
	assert.Equal(t, "ATP", set.Pairs[0].Term)
}

func TestDecode_Quiz(t *testing.T) {
	record, err := decodeText(t, KindQuiz, quizJSON(validOptions))
	require.NoError(t, err)

	quiz := record.(*Quiz)
	assert.Equal(t, "B", quiz.Questions[0].CorrectLabel())
	q, ok := quiz.Question(1)
	assert.True(t, ok)
	assert.Equal(t, "It makes ATP", q.Explanation)
}

func TestDecode_QuizNormalizesOptions(t *testing.T) {
	options := `[{"label": "a)", "text": "Nucleus", "is_correct": "false"}, {"label": "b", "text": "Mitochondria", "is_correct": "true"}, {"text": "Ribosome"}, {"text": "Golgi"}]`
	record, err := decodeText(t, KindQuiz, quizJSON(options))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, record.(*Quiz).Questions[0].Labels())
	assert.Equal(t, "B", record.(*Quiz).Questions[0].CorrectLabel())
}

func TestDecode_QuizRejectsInvalidOptionSets(t *testing.T) {
	tests := []struct {
		name    string
		options string
		rule    string
	}{
		{
			name:    "two correct options",
			options: `[{"label": "A", "text": "1", "is_correct": true}, {"label": "B", "text": "2", "is_correct": true}, {"label": "C", "text": "3"}, {"label": "D", "text": "4"}]`,
			rule:    "single_correct",
		},
		{
			name:    "three options",
			options: `[{"label": "A", "text": "1", "is_correct": true}, {"label": "B", "text": "2"}, {"label": "C", "text": "3"}]`,
			rule:    "len",
		},
		{
			name:    "duplicate labels",
			options: `[{"label": "A", "text": "1", "is_correct": true}, {"label": "A", "text": "2"}, {"label": "C", "text": "3"}, {"label": "D", "text": "4"}]`,
			rule:    "unique_label",
		},
		{
			name:    "label out of range",
			options: `[{"label": "A", "text": "1", "is_correct": true}, {"label": "B", "text": "2"}, {"label": "C", "text": "3"}, {"label": "E", "text": "4"}]`,
			rule:    "option_label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeText(t, KindQuiz, quizJSON(tt.options))

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, KindQuiz, decodeErr.Kind)

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestDecode_Summary(t *testing.T) {
	text := `{"overview": "Cells are small.", "key_points": ["one", "two"], "terms": {"ribosome": "makes proteins", "atp": "energy"}, "word_count_original": 999}`
	record, err := decodeText(t, KindSummary, text)
	require.NoError(t, err)

	summary := record.(*Summary)
	assert.Equal(t, "Summary", summary.Title)
	assert.Equal(t, []Term{{Term: "atp", Definition: "energy"}, {Term: "ribosome", Definition: "makes proteins"}}, summary.Terms)
	assert.Zero(t, summary.WordCountOriginal)
}

func TestDecode_StudyGuide(t *testing.T) {
	record, err := decodeText(t, KindStudyGuide, `{"subject": "Biology", "summary": "All about cells.", "key_topics": [{"topic": "Mitosis", "importance": "HIGH"}, {"topic": "Meiosis"}]}`)
	require.NoError(t, err)

	guide := record.(*StudyGuide)
	assert.Equal(t, "high", guide.KeyTopics[0].Importance)
	assert.Equal(t, "medium", guide.KeyTopics[1].Importance)
	assert.Equal(t, 2, guide.KeyTopics[1].ID)

	_, err = decodeText(t, KindStudyGuide, `{"subject": "Biology"}`)
	assert.Error(t, err)
}

func TestDecode_Evaluation(t *testing.T) {
	record, err := decodeText(t, KindEvaluation, `{"is_correct": "true", "score": 85, "feedback": "Close enough"}`)
	require.NoError(t, err)

	eval := record.(*Evaluation)
	assert.True(t, eval.IsCorrect)
	assert.InDelta(t, 0.85, eval.Score, 1e-9)
	assert.Equal(t, 85, eval.Percent())

	_, err = decodeText(t, KindEvaluation, `{"score": 250, "feedback": "?"}`)
	assert.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	record, err := Unmarshal(KindMatching, []byte(`{"title": "Terms", "pairs": [{"id": 1, "term": "a", "definition": "b"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Terms", record.RecordTitle())

	_, err = Unmarshal(Kind("poem"), nil)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("study_guide")
	require.NoError(t, err)
	assert.Equal(t, KindStudyGuide, kind)

	_, err = ParseKind("essay")
	assert.Error(t, err)
}

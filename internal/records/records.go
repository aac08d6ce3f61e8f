// Package records defines the study records produced by generation, one
// struct per kind, and decodes extracted documents into them.
package records

import (
	"fmt"
	"math"

	"github.com/SAP-F-2025/study-service/internal/validator"
)

// Kind tags which variant a Record is.
type Kind string

const (
	KindFlashcards Kind = "flashcards"
	KindQuiz       Kind = "quiz"
	KindMatching   Kind = "matching"
	KindSummary    Kind = "summary"
	KindStudyGuide Kind = "study_guide"
	KindEvaluation Kind = "evaluation"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindFlashcards, KindQuiz, KindMatching, KindSummary, KindStudyGuide, KindEvaluation}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// DefaultTitle is used when the model omits a title.
func (k Kind) DefaultTitle() string {
	switch k {
	case KindFlashcards:
		return "Flashcards"
	case KindQuiz:
		return "Quiz"
	case KindMatching:
		return "Matching Game"
	case KindSummary:
		return "Summary"
	case KindStudyGuide:
		return "Study Guide"
	case KindEvaluation:
		return "Answer Evaluation"
	}
	return string(k)
}

// Record is implemented by every study record variant.
type Record interface {
	Kind() Kind
	RecordTitle() string
	ItemCount() int
}

var questionRules = validator.NewQuestionValidator()

type Flashcard struct {
	ID       int    `json:"id" validate:"min=1"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type FlashcardSet struct {
	Title      string      `json:"title" validate:"required"`
	Flashcards []Flashcard `json:"flashcards" validate:"min=1,unique=ID,dive"`
}

func (FlashcardSet) Kind() Kind            { return KindFlashcards }
func (s FlashcardSet) RecordTitle() string { return s.Title }
func (s FlashcardSet) ItemCount() int      { return len(s.Flashcards) }

type Option struct {
	Label     string `json:"label" validate:"option_label"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestion struct {
	ID          int      `json:"id" validate:"min=1"`
	Question    string   `json:"question" validate:"required"`
	Options     []Option `json:"options" validate:"len=4,dive"`
	Explanation string   `json:"explanation,omitempty"`
}

// CorrectLabel returns the label of the correct option, or "" if there is none.
func (q QuizQuestion) CorrectLabel() string {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.Label
		}
	}
	return ""
}

// Labels returns the option labels in order.
func (q QuizQuestion) Labels() []string {
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}

type Quiz struct {
	Title     string         `json:"title" validate:"required"`
	Questions []QuizQuestion `json:"questions" validate:"min=1,unique=ID,dive"`
}

func (Quiz) Kind() Kind            { return KindQuiz }
func (q Quiz) RecordTitle() string { return q.Title }
func (q Quiz) ItemCount() int      { return len(q.Questions) }

// CheckRules requires unique option labels and a single correct option per question.
func (q Quiz) CheckRules() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, question := range q.Questions {
		correct := make([]bool, len(question.Options))
		for j, o := range question.Options {
			correct[j] = o.IsCorrect
		}
		field := fmt.Sprintf("questions[%d].options", i)
		errs = append(errs, questionRules.ValidateOptions(field, question.Labels(), correct)...)
	}
	return errs
}

// Question looks up a question by id.
func (q Quiz) Question(id int) (QuizQuestion, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return QuizQuestion{}, false
}

type MatchingPair struct {
	ID         int    `json:"id" validate:"min=1"`
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

type MatchingSet struct {
	Title string         `json:"title" validate:"required"`
	Pairs []MatchingPair `json:"pairs" validate:"min=1,unique=ID,dive"`
}

func (MatchingSet) Kind() Kind            { return KindMatching }
func (m MatchingSet) RecordTitle() string { return m.Title }
func (m MatchingSet) ItemCount() int      { return len(m.Pairs) }

type Term struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

// Summary word counts are filled in by the caller from the source text,
// never taken from the model.
type Summary struct {
	Title             string   `json:"title" validate:"required"`
	Overview          string   `json:"overview" validate:"required"`
	KeyPoints         []string `json:"key_points"`
	Terms             []Term   `json:"terms" validate:"dive"`
	Takeaways         []string `json:"takeaways"`
	WordCountOriginal int      `json:"word_count_original"`
	WordCountSummary  int      `json:"word_count_summary"`
	ReductionPercent  int      `json:"reduction_percent"`
}

func (Summary) Kind() Kind            { return KindSummary }
func (s Summary) RecordTitle() string { return s.Title }
func (s Summary) ItemCount() int      { return len(s.KeyPoints) }

type Section struct {
	ID       int      `json:"id" validate:"min=1"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content"`
	SubItems []string `json:"sub_items"`
}

type KeyTopic struct {
	ID         int    `json:"id" validate:"min=1"`
	Topic      string `json:"topic" validate:"required"`
	Importance string `json:"importance" validate:"importance"`
}

type Fact struct {
	ID       int    `json:"id" validate:"min=1"`
	Fact     string `json:"fact" validate:"required"`
	Category string `json:"category"`
}

type StudyGuide struct {
	Title           string     `json:"title" validate:"required"`
	Subject         string     `json:"subject"`
	Summary         string     `json:"summary"`
	Outlines        []Section  `json:"outlines" validate:"unique=ID,dive"`
	BulletTakeaways []string   `json:"bullet_takeaways"`
	KeyTopics       []KeyTopic `json:"key_topics" validate:"unique=ID,dive"`
	Facts           []Fact     `json:"facts" validate:"unique=ID,dive"`
}

func (StudyGuide) Kind() Kind            { return KindStudyGuide }
func (g StudyGuide) RecordTitle() string { return g.Title }
func (g StudyGuide) ItemCount() int      { return len(g.Outlines) }

// CheckRules requires some guide content: a summary or an outline.
func (g StudyGuide) CheckRules() validator.ValidationErrors {
	if g.Summary == "" && len(g.Outlines) == 0 {
		return validator.ValidationErrors{{
			Field:   "summary",
			Message: "is required when there are no outline sections",
			Rule:    "required_without",
		}}
	}
	return nil
}

type Evaluation struct {
	IsCorrect   bool     `json:"is_correct"`
	Score       float64  `json:"score" validate:"gte=0,lte=1"`
	Feedback    string   `json:"feedback" validate:"required"`
	Suggestions []string `json:"suggestions"`
}

func (Evaluation) Kind() Kind          { return KindEvaluation }
func (Evaluation) RecordTitle() string { return KindEvaluation.DefaultTitle() }
func (e Evaluation) ItemCount() int    { return len(e.Suggestions) }

// Percent is the score as a whole percentage.
func (e Evaluation) Percent() int {
	return int(math.Round(e.Score * 100))
}

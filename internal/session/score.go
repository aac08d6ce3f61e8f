package session

import (
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

var questionRules = validator.NewQuestionValidator()

// QuestionResult is the outcome of one question.
type QuestionResult struct {
	QuestionID   int    `json:"question_id"`
	Question     string `json:"question"`
	Chosen       string `json:"chosen,omitempty"`
	CorrectLabel string `json:"correct_label"`
	IsCorrect    bool   `json:"is_correct"`
	Explanation  string `json:"explanation,omitempty"`
}

// Result is the score of a submitted quiz.
type Result struct {
	Correct   int              `json:"correct"`
	Total     int              `json:"total"`
	Percent   int              `json:"percent"`
	Grade     string           `json:"grade"`
	Questions []QuestionResult `json:"questions"`
}

// Score compares answers with the correct options of quiz.
// Percent is floor(correct*100/total), and 0 for an empty quiz.
func Score(quiz records.Quiz, answers map[int]string) Result {
	result := Result{
		Total:     len(quiz.Questions),
		Questions: make([]QuestionResult, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		chosen := answers[q.ID]
		correctLabel := q.CorrectLabel()
		isCorrect := correctLabel != "" && chosen == correctLabel
		if isCorrect {
			result.Correct++
		}
		result.Questions = append(result.Questions, QuestionResult{
			QuestionID:   q.ID,
			Question:     q.Question,
			Chosen:       chosen,
			CorrectLabel: correctLabel,
			IsCorrect:    isCorrect,
			Explanation:  q.Explanation,
		})
	}
	if result.Total > 0 {
		result.Percent = result.Correct * 100 / result.Total
	}
	result.Grade = Grade(result.Percent)
	return result
}

// Grade maps a percentage to a letter grade.
func Grade(percent int) string {
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	default:
		return "F"
	}
}

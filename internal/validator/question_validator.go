package validator

import (
	"fmt"
)

// QuestionValidator checks multiple-choice option sets.
type QuestionValidator struct{}

// NewQuestionValidator creates a new quiz question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateOptions requires unique labels and exactly one correct option.
// field prefixes the reported field names, e.g. "questions[2].options".
func (v *QuestionValidator) ValidateOptions(field string, labels []string, correct []bool) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		if seen[label] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d].label", field, i),
				Message: fmt.Sprintf("duplicates label %s", label),
				Value:   label,
				Rule:    "unique_label",
			})
		}
		seen[label] = true
	}

	correctCount := 0
	for _, c := range correct {
		if c {
			correctCount++
		}
	}
	if correctCount != 1 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must have exactly one correct option, found %d", correctCount),
			Value:   correctCount,
			Rule:    "single_correct",
		})
	}

	return errs
}

// ValidateAnswer requires label to name one of the options.
func (v *QuestionValidator) ValidateAnswer(field string, labels []string, label string) *ValidationError {
	for _, l := range labels {
		if l == label {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of %v", labels),
		Value:   label,
		Rule:    "option_label",
	}
}

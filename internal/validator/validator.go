package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/study-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

// RuleChecker is implemented by values with rules that struct tags cannot express.
type RuleChecker interface {
	CheckRules() ValidationErrors
}

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateRules runs the value's own rule checks, if it has any.
func (v *Validator) ValidateRules(s interface{}) ValidationErrors {
	if checker, ok := s.(RuleChecker); ok {
		return checker.CheckRules()
	}
	return nil
}

// Validate performs complete validation (struct tags, then rules)
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	if errors := v.ValidateRules(s); len(errors) > 0 {
		return errors
	}

	return nil
}

// Question returns the quiz question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("option_label", validateOptionLabel)
	validate.RegisterValidation("importance", validateImportance)
	validate.RegisterValidation("quiz_size", validateQuizSize)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
}

// OptionLabels are the labels of a quiz question's four options, in order.
var OptionLabels = []string{"A", "B", "C", "D"}

// QuizSizes are the allowed numbers of generated quiz questions.
var QuizSizes = []int64{3, 5, 10, 15}

var importanceLevels = []string{"high", "medium", "low"}

func validateOptionLabel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, label := range OptionLabels {
		if label == value {
			return true
		}
	}
	return false
}

func validateImportance(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, level := range importanceLevels {
		if level == value {
			return true
		}
	}
	return false
}

func validateQuizSize(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	for _, size := range QuizSizes {
		if size == value {
			return true
		}
	}
	return false
}

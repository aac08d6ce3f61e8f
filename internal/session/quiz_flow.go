package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

// QuizStep is a state of the quiz flow.
type QuizStep string

const (
	StepMenu       QuizStep = "menu"
	StepAIUpload   QuizStep = "ai_upload"
	StepAISettings QuizStep = "ai_settings"
	StepManual     QuizStep = "manual"
	StepPlay       QuizStep = "play"
)

// CustomQuizTitle is the title given to quizzes built from manual questions.
const CustomQuizTitle = "My Quiz"

// NotApplicable fills manual options C and D when they are left blank.
const NotApplicable = "N/A"

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrEmptyContent      = errors.New("content is empty")
	ErrEmptyQuiz         = errors.New("quiz has no questions")
	ErrUnknownQuestion   = errors.New("question not found in quiz")
)

// TransitionError reports an operation that the current step does not allow.
type TransitionError struct {
	Operation string
	Step      QuizStep
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from quiz step %q", e.Operation, e.Step)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ManualQuestion is a question typed in by the user.
type ManualQuestion struct {
	Question string `json:"question"`
	A        string `json:"a"`
	B        string `json:"b"`
	C        string `json:"c"`
	D        string `json:"d"`
	Correct  string `json:"correct"`
}

// QuizFlow holds the quiz state of one session.
type QuizFlow struct {
	Step            QuizStep               `json:"step"`
	Content         string                 `json:"content,omitempty"`
	Quiz            *records.Quiz          `json:"quiz,omitempty"`
	Answers         map[int]string         `json:"answers,omitempty"`
	Submitted       bool                   `json:"submitted"`
	CustomQuestions []records.QuizQuestion `json:"custom_questions,omitempty"`
}

// NewQuizFlow returns a flow positioned on the menu.
func NewQuizFlow() QuizFlow {
	return QuizFlow{Step: StepMenu}
}

func (f *QuizFlow) require(op string, steps ...QuizStep) error {
	for _, s := range steps {
		if f.Step == s {
			return nil
		}
	}
	return &TransitionError{Operation: op, Step: f.Step}
}

// StartAI moves from the menu to the content upload step.
func (f *QuizFlow) StartAI() error {
	if err := f.require("start AI quiz", StepMenu); err != nil {
		return err
	}
	f.Step = StepAIUpload
	f.Content = ""
	return nil
}

// SetContent stores the study material and moves to the settings step.
func (f *QuizFlow) SetContent(content string) error {
	if err := f.require("set content", StepAIUpload); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	f.Content = content
	f.Step = StepAISettings
	return nil
}

// StartManual moves from the menu to the manual question editor.
func (f *QuizFlow) StartManual() error {
	if err := f.require("start manual quiz", StepMenu); err != nil {
		return err
	}
	f.Step = StepManual
	return nil
}

// Back steps one screen back outside of play.
func (f *QuizFlow) Back() error {
	switch f.Step {
	case StepAISettings:
		f.Step = StepAIUpload
	case StepAIUpload, StepManual:
		f.Step = StepMenu
	default:
		return &TransitionError{Operation: "go back", Step: f.Step}
	}
	return nil
}

// AddManualQuestion appends a question built from the editor form.
// Question and options A and B are required; blank C and D become "N/A".
func (f *QuizFlow) AddManualQuestion(in ManualQuestion) (records.QuizQuestion, error) {
	if err := f.require("add question", StepManual); err != nil {
		return records.QuizQuestion{}, err
	}

	var errs validator.ValidationErrors
	for _, field := range []struct{ name, value string }{
		{"question", in.Question}, {"a", in.A}, {"b", in.B},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, validator.ValidationError{
				Field:   field.name,
				Message: "is required",
				Rule:    "required",
			})
		}
	}
	correct := strings.ToUpper(strings.TrimSpace(in.Correct))
	if e := questionRules.ValidateAnswer("correct", validator.OptionLabels, correct); e != nil {
		errs = append(errs, *e)
	}
	if len(errs) > 0 {
		return records.QuizQuestion{}, errs
	}

	texts := []string{in.A, in.B, orNotApplicable(in.C), orNotApplicable(in.D)}
	options := make([]records.Option, len(validator.OptionLabels))
	for i, label := range validator.OptionLabels {
		options[i] = records.Option{
			Label:     label,
			Text:      strings.TrimSpace(texts[i]),
			IsCorrect: label == correct,
		}
	}

	question := records.QuizQuestion{
		ID:       len(f.CustomQuestions) + 1,
		Question: strings.TrimSpace(in.Question),
		Options:  options,
	}
	f.CustomQuestions = append(f.CustomQuestions, question)
	return question, nil
}

func orNotApplicable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotApplicable
	}
	return s
}

// ClearManual drops every manual question.
func (f *QuizFlow) ClearManual() error {
	if err := f.require("clear questions", StepManual, StepMenu); err != nil {
		return err
	}
	f.CustomQuestions = nil
	return nil
}

// PlayCustom starts a quiz made of the manual questions.
func (f *QuizFlow) PlayCustom() error {
	if len(f.CustomQuestions) == 0 {
		return ErrEmptyQuiz
	}
	questions := make([]records.QuizQuestion, len(f.CustomQuestions))
	copy(questions, f.CustomQuestions)
	return f.Play(&records.Quiz{Title: CustomQuizTitle, Questions: questions})
}

// Play starts quiz with no answers recorded.
func (f *QuizFlow) Play(quiz *records.Quiz) error {
	if err := f.require("play quiz", StepMenu, StepAISettings, StepManual); err != nil {
		return err
	}
	if quiz == nil || len(quiz.Questions) == 0 {
		return ErrEmptyQuiz
	}
	f.Quiz = quiz
	f.Answers = make(map[int]string, len(quiz.Questions))
	f.Submitted = false
	f.Step = StepPlay
	return nil
}

// Answer records the chosen option label for a question.
func (f *QuizFlow) Answer(questionID int, label string) error {
	if err := f.require("answer", StepPlay); err != nil {
		return err
	}
	if f.Submitted {
		return &TransitionError{Operation: "answer a submitted quiz", Step: f.Step}
	}
	question, ok := f.Quiz.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	if e := questionRules.ValidateAnswer("label", question.Labels(), label); e != nil {
		return validator.ValidationErrors{*e}
	}
	if f.Answers == nil {
		f.Answers = make(map[int]string)
	}
	f.Answers[questionID] = label
	return nil
}

// Submit locks the answers and returns the score. Unanswered questions count as wrong.
func (f *QuizFlow) Submit() (Result, error) {
	if err := f.require("submit", StepPlay); err != nil {
		return Result{}, err
	}
	if f.Submitted {
		return Result{}, &TransitionError{Operation: "submit twice", Step: f.Step}
	}
	f.Submitted = true
	return Score(*f.Quiz, f.Answers), nil
}

// Result returns the score of a submitted quiz.
func (f *QuizFlow) Result() (Result, error) {
	if f.Step != StepPlay || !f.Submitted {
		return Result{}, &TransitionError{Operation: "read result", Step: f.Step}
	}
	return Score(*f.Quiz, f.Answers), nil
}

// Retry clears the answers of a submitted quiz so it can be played again.
func (f *QuizFlow) Retry() error {
	if err := f.require("retry", StepPlay); err != nil {
		return err
	}
	if !f.Submitted {
		return &TransitionError{Operation: "retry an unsubmitted quiz", Step: f.Step}
	}
	f.Answers = make(map[int]string, len(f.Quiz.Questions))
	f.Submitted = false
	return nil
}

// Exit leaves play and returns to the menu. Manual questions are kept.
func (f *QuizFlow) Exit() error {
	if err := f.require("exit", StepPlay); err != nil {
		return err
	}
	f.Quiz = nil
	f.Answers = nil
	f.Submitted = false
	f.Step = StepMenu
	return nil
}

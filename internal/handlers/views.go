package handlers

import (
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/session"
)

// SessionView is the client-facing state of a session.
type SessionView struct {
	ID            string          `json:"id"`
	Page          session.Page    `json:"page"`
	Onboarding    *OnboardingView `json:"onboarding,omitempty"`
	Authenticated bool            `json:"authenticated"`
	Email         string          `json:"email,omitempty"`
	DisplayName   string          `json:"display_name,omitempty"`
	Tab           session.Tab     `json:"tab"`
	Tabs          []session.Tab   `json:"tabs"`
	Quiz          QuizView        `json:"quiz"`
}

type OnboardingView struct {
	Step  int                    `json:"step"`
	Total int                    `json:"total"`
	Card  session.OnboardingStep `json:"card"`
}

// QuizView shows the quiz flow without revealing answers before submission.
type QuizView struct {
	Step            session.QuizStep       `json:"step"`
	HasContent      bool                   `json:"has_content"`
	Title           string                 `json:"title,omitempty"`
	Questions       []QuestionView         `json:"questions,omitempty"`
	Answers         map[int]string         `json:"answers,omitempty"`
	Submitted       bool                   `json:"submitted"`
	CustomQuestions []records.QuizQuestion `json:"custom_questions,omitempty"`
}

type QuestionView struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
}

type OptionView struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

func newSessionView(s *session.Session) SessionView {
	view := SessionView{
		ID:            s.ID,
		Page:          s.Page,
		Authenticated: s.Authenticated,
		Email:         s.Email,
		DisplayName:   s.DisplayName(),
		Tab:           s.Tab,
		Tabs:          session.Tabs,
		Quiz:          newQuizView(&s.Quiz),
	}
	if s.Page == session.PageOnboarding {
		view.Onboarding = &OnboardingView{
			Step:  s.OnboardingStep + 1,
			Total: len(session.OnboardingSteps),
			Card:  s.CurrentOnboardingStep(),
		}
	}
	return view
}

func newQuizView(f *session.QuizFlow) QuizView {
	view := QuizView{
		Step:            f.Step,
		HasContent:      f.Content != "",
		Answers:         f.Answers,
		Submitted:       f.Submitted,
		CustomQuestions: f.CustomQuestions,
	}
	if f.Quiz != nil {
		view.Title = f.Quiz.Title
		view.Questions = make([]QuestionView, len(f.Quiz.Questions))
		for i, q := range f.Quiz.Questions {
			options := make([]OptionView, len(q.Options))
			for j, o := range q.Options {
				options[j] = OptionView{Label: o.Label, Text: o.Text}
			}
			view.Questions[i] = QuestionView{ID: q.ID, Question: q.Question, Options: options}
		}
	}
	return view
}

package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Page is a screen of the application.
type Page string

const (
	PageSplash     Page = "splash"
	PageOnboarding Page = "onboarding"
	PageWelcome    Page = "welcome"
	PageLogin      Page = "login"
	PageSignup     Page = "signup"
	PageNamePrompt Page = "name_prompt"
	PageApp        Page = "app"
)

// Tab is a feature tab of the app page.
type Tab string

const (
	TabHome       Tab = "home"
	TabFlashcards Tab = "flashcards"
	TabQuiz       Tab = "quiz"
	TabMatching   Tab = "matching"
	TabSummary    Tab = "summary"
	TabStudyGuide Tab = "study_guide"
	TabEvaluation Tab = "evaluation"
)

var Tabs = []Tab{TabHome, TabFlashcards, TabQuiz, TabMatching, TabSummary, TabStudyGuide, TabEvaluation}

// Action is a navigation event sent by the client.
type Action string

const (
	ActionGetStarted     Action = "get_started"
	ActionOnboardingNext Action = "onboarding_next"
	ActionOnboardingSkip Action = "onboarding_skip"
	ActionToSignup       Action = "to_signup"
	ActionToLogin        Action = "to_login"
	ActionBack           Action = "back"
	ActionLogout         Action = "logout"
	ActionSelectTab      Action = "select_tab"
)

var (
	ErrInvalidAction   = errors.New("action not allowed on current page")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownTab      = errors.New("unknown tab")
	ErrUnauthenticated = errors.New("session is not authenticated")
)

// ActionError reports an action the current page does not accept.
type ActionError struct {
	Action Action
	Page   Page
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q not allowed on page %q", e.Action, e.Page)
}

func (e *ActionError) Unwrap() error {
	return ErrInvalidAction
}

// OnboardingStep is one screen of the introduction.
type OnboardingStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}

var OnboardingSteps = []OnboardingStep{
	{
		Title:    "Turn your notes and lectures into flashcards, quizzes, study guides and study games.",
		Features: []string{"Notes", "Flashcards", "Quizzes", "Games"},
	},
	{
		Title:       "How It Works",
		Description: "Paste or upload your course material and Study Buddy turns it into organized notes and study tools.",
	},
	{
		Title:       "Why You'll Love It",
		Description: "Quiz yourself, play matching games and track your scores to keep studying fun.",
	},
}

// Session is the per-client state carried between requests.
type Session struct {
	ID                 string    `json:"id"`
	Page               Page      `json:"page"`
	OnboardingStep     int       `json:"onboarding_step"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	Authenticated      bool      `json:"authenticated"`
	Email              string    `json:"email,omitempty"`
	Username           string    `json:"username,omitempty"`
	Nickname           string    `json:"nickname,omitempty"`
	Tab                Tab       `json:"tab"`
	Quiz               QuizFlow  `json:"quiz"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// New returns a fresh session on the splash page.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Page:      PageSplash,
		Tab:       TabHome,
		Quiz:      NewQuizFlow(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayName prefers the nickname over the account name.
func (s *Session) DisplayName() string {
	if s.Nickname != "" {
		return s.Nickname
	}
	return s.Username
}

// CurrentOnboardingStep returns the onboarding screen to show.
func (s *Session) CurrentOnboardingStep() OnboardingStep {
	return OnboardingSteps[s.OnboardingStep]
}

// Touch updates the modification time.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Apply performs a navigation action. arg carries the tab name for select_tab.
func (s *Session) Apply(action Action, arg string) error {
	switch action {
	case ActionGetStarted:
		if s.Page != PageSplash {
			return s.reject(action)
		}
		if s.OnboardingComplete {
			s.Page = PageWelcome
		} else {
			s.OnboardingStep = 0
			s.Page = PageOnboarding
		}
	case ActionOnboardingNext:
		if s.Page != PageOnboarding {
			return s.reject(action)
		}
		if s.OnboardingStep < len(OnboardingSteps)-1 {
			s.OnboardingStep++
		} else {
			s.finishOnboarding()
		}
	case ActionOnboardingSkip:
		if s.Page != PageOnboarding {
			return s.reject(action)
		}
		s.finishOnboarding()
	case ActionToSignup:
		if s.Page != PageWelcome && s.Page != PageLogin {
			return s.reject(action)
		}
		s.Page = PageSignup
	case ActionToLogin:
		if s.Page != PageWelcome && s.Page != PageSignup {
			return s.reject(action)
		}
		s.Page = PageLogin
	case ActionBack:
		switch s.Page {
		case PageLogin, PageSignup:
			s.Page = PageWelcome
		case PageNamePrompt:
			s.Page = PageApp
		default:
			return s.reject(action)
		}
	case ActionLogout:
		s.Logout()
	case ActionSelectTab:
		if err := s.SelectTab(Tab(arg)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	s.Touch()
	return nil
}

func (s *Session) reject(action Action) error {
	return &ActionError{Action: action, Page: s.Page}
}

func (s *Session) finishOnboarding() {
	s.OnboardingComplete = true
	s.Page = PageWelcome
}

// SelectTab switches the active tab of the app page.
func (s *Session) SelectTab(tab Tab) error {
	if !s.Authenticated {
		return ErrUnauthenticated
	}
	if s.Page != PageApp {
		return s.reject(ActionSelectTab)
	}
	for _, t := range Tabs {
		if t == tab {
			s.Tab = tab
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

// LoginSucceeded marks the session authenticated and opens the app.
func (s *Session) LoginSucceeded(email, name string) {
	s.authenticate(email, name)
	s.Page = PageApp
}

// SignupSucceeded marks the session authenticated and asks for a nickname.
func (s *Session) SignupSucceeded(email, name string) {
	s.authenticate(email, name)
	s.Page = PageNamePrompt
}

func (s *Session) authenticate(email, name string) {
	s.Authenticated = true
	s.Email = email
	s.Username = name
	s.Nickname = ""
	s.Tab = TabHome
	s.Quiz = NewQuizFlow()
	s.Touch()
}

// SetNickname stores the nickname and continues to the app. A blank nickname keeps the account name.
func (s *Session) SetNickname(nickname string) error {
	if !s.Authenticated {
		return ErrUnauthenticated
	}
	if s.Page != PageNamePrompt && s.Page != PageApp {
		return &ActionError{Action: "nickname_set", Page: s.Page}
	}
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		s.Nickname = nickname
	}
	s.Page = PageApp
	s.Touch()
	return nil
}

// Logout drops the identity and returns to the splash page. Onboarding stays complete.
func (s *Session) Logout() {
	s.Authenticated = false
	s.Email = ""
	s.Username = ""
	s.Nickname = ""
	s.Tab = TabHome
	s.Quiz = NewQuizFlow()
	s.Page = PageSplash
	s.Touch()
}

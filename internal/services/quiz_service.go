package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

type quizService struct {
	study     StudyService
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewQuizService(study StudyService, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		study:     study,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "study-service", Component: "quiz"}),
		validator: validator,
	}
}

func (s *quizService) StartAI(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_start_ai", sess.Quiz.StartAI)
}

func (s *quizService) SetContent(ctx context.Context, sess *session.Session, content string) error {
	return s.logged(ctx, sess, "quiz_set_content", func() error {
		return sess.Quiz.SetContent(content)
	})
}

// Generate asks the model for a quiz on the stored content and starts playing it.
func (s *quizService) Generate(ctx context.Context, sess *session.Session, req *QuizSettingsRequest) (*records.Quiz, error) {
	if sess.Quiz.Step != session.StepAISettings {
		return nil, &session.TransitionError{Operation: "generate quiz", Step: sess.Quiz.Step}
	}
	if req.Count == 0 {
		req.Count = DefaultQuizSize
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.study.GenerateQuiz(ctx, ownerOf(sess), &QuizRequest{
		Content: sess.Quiz.Content,
		Count:   req.Count,
	})
	if err != nil {
		return nil, err
	}

	quiz := result.Record.(*records.Quiz)
	if err := sess.Quiz.Play(quiz); err != nil {
		return nil, err
	}
	sess.Touch()
	return quiz, nil
}

func (s *quizService) Back(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_back", sess.Quiz.Back)
}

func (s *quizService) StartManual(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_start_manual", sess.Quiz.StartManual)
}

func (s *quizService) AddManualQuestion(ctx context.Context, sess *session.Session, q session.ManualQuestion) (*records.QuizQuestion, error) {
	var question records.QuizQuestion
	err := s.logged(ctx, sess, "quiz_add_question", func() (err error) {
		question, err = sess.Quiz.AddManualQuestion(q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *quizService) ClearManual(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_clear", sess.Quiz.ClearManual)
}

func (s *quizService) PlayCustom(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_play_custom", sess.Quiz.PlayCustom)
}

func (s *quizService) Answer(ctx context.Context, sess *session.Session, req *AnswerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.logged(ctx, sess, "quiz_answer", func() error {
		return sess.Quiz.Answer(req.QuestionID, req.Label)
	})
}

func (s *quizService) Submit(ctx context.Context, sess *session.Session) (*session.Result, error) {
	var result session.Result
	err := s.logged(ctx, sess, "quiz_submit", func() (err error) {
		result, err = sess.Quiz.Submit()
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewStudyEvent(events.EventQuizSubmitted, events.QuizSubmittedEvent{
		SessionID:  sess.ID,
		OwnerEmail: ownerOf(sess),
		QuizTitle:  sess.Quiz.Quiz.Title,
		Correct:    result.Correct,
		Total:      result.Total,
		Percent:    result.Percent,
		Grade:      result.Grade,
	}))
	return &result, nil
}

func (s *quizService) Result(ctx context.Context, sess *session.Session) (*session.Result, error) {
	result, err := sess.Quiz.Result()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *quizService) Retry(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_retry", sess.Quiz.Retry)
}

func (s *quizService) Exit(ctx context.Context, sess *session.Session) error {
	return s.logged(ctx, sess, "quiz_exit", sess.Quiz.Exit)
}

// logged runs a quiz transition, logs its outcome and touches the session on success.
func (s *quizService) logged(ctx context.Context, sess *session.Session, operation string, fn func() error) (err error) {
	op := s.logger.WithOperation(ctx, operation, sess.ID)
	defer func() { op.LogResult("quiz", err) }()

	if err = fn(); err != nil {
		return err
	}
	sess.Touch()
	return nil
}

// ownerOf returns the library owner for a session, empty when nobody is logged in.
func ownerOf(sess *session.Session) string {
	if !sess.Authenticated {
		return ""
	}
	return sess.Email
}

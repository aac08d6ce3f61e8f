package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/extractor"
	"github.com/SAP-F-2025/study-service/internal/generation"
	"github.com/SAP-F-2025/study-service/internal/prompts"
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

// Item counts used when a request leaves count at zero.
const (
	DefaultFlashcardCount = 5
	DefaultQuizSize       = 5
	DefaultPairCount      = 5
)

type studyService struct {
	client    generation.Client
	extractor *extractor.Extractor
	decoder   *records.Decoder
	library   LibraryService
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewStudyService(
	client generation.Client,
	library LibraryService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) StudyService {
	return &studyService{
		client:    client,
		extractor: extractor.New(logger.With("component", "extractor")),
		decoder:   records.NewDecoder(validator),
		library:   library,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "study-service", Component: "study"}),
		validator: validator,
	}
}

func (s *studyService) Provider() ProviderStatus {
	return ProviderStatus{Name: s.client.Name(), Configured: s.client.IsConfigured()}
}

func (s *studyService) GenerateFlashcards(ctx context.Context, owner string, req *FlashcardsRequest) (*GenerationResult, error) {
	if req.Count == 0 {
		req.Count = DefaultFlashcardCount
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, owner, records.KindFlashcards, prompts.Flashcards, prompts.Fields{
		"num":     req.Count,
		"content": req.Content,
	}, nil)
}

func (s *studyService) GenerateQuiz(ctx context.Context, owner string, req *QuizRequest) (*GenerationResult, error) {
	if req.Count == 0 {
		req.Count = DefaultQuizSize
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, owner, records.KindQuiz, prompts.Quiz, prompts.Fields{
		"num":     req.Count,
		"content": req.Content,
	}, nil)
}

func (s *studyService) GenerateMatching(ctx context.Context, owner string, req *MatchingRequest) (*GenerationResult, error) {
	if req.Count == 0 {
		req.Count = DefaultPairCount
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, owner, records.KindMatching, prompts.Matching, prompts.Fields{
		"num":     req.Count,
		"content": req.Content,
	}, nil)
}

func (s *studyService) GenerateSummary(ctx context.Context, owner string, req *SummaryRequest) (*GenerationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, owner, records.KindSummary, prompts.Summary, prompts.Fields{
		"content": req.Content,
	}, func(r records.Record) {
		summary := r.(*records.Summary)
		fillWordCounts(summary, req.Content)
	})
}

func (s *studyService) GenerateStudyGuide(ctx context.Context, owner string, req *StudyGuideRequest) (*GenerationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(req.Subject)
	return s.generate(ctx, owner, records.KindStudyGuide, prompts.StudyGuide, prompts.Fields{
		"subject": subject,
		"content": req.Content,
	}, func(r records.Record) {
		guide := r.(*records.StudyGuide)
		if guide.Subject == "" {
			guide.Subject = subject
		}
	})
}

func (s *studyService) EvaluateAnswer(ctx context.Context, owner string, req *EvaluationRequest) (*GenerationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, owner, records.KindEvaluation, prompts.Evaluation, prompts.Fields{
		"question":    req.Question,
		"correct":     req.CorrectAnswer,
		"user_answer": req.UserAnswer,
	}, nil)
}

// generate runs one prompt through the model and decodes the reply as kind.
// finish, when set, adjusts the decoded record before it is saved.
func (s *studyService) generate(
	ctx context.Context,
	owner string,
	kind records.Kind,
	tmpl prompts.Template,
	fields prompts.Fields,
	finish func(records.Record),
) (result *GenerationResult, err error) {
	op := s.logger.WithOperation(ctx, "generate_"+string(kind), owner)
	defer func() { op.LogResult(string(kind), err) }()

	prompt, err := tmpl.Render(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s prompt: %w", tmpl.Name, err)
	}

	raw, err := s.client.Generate(ctx, prompt.System, prompt.User)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	s.logger.Debug(ctx, "Model reply received", "kind", kind, "prompt_chars", len(prompt.User), "reply_chars", len(raw))

	doc, err := s.extractor.Extract(raw)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	record, err := s.decoder.Decode(kind, doc)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	if finish != nil {
		finish(record)
	}

	result = &GenerationResult{
		Kind:     kind,
		Record:   record,
		Provider: s.client.Name(),
	}

	if owner != "" && s.library != nil {
		saved, err := s.library.Save(ctx, owner, result.Provider, record)
		if err != nil {
			// The record is still returned; only the library copy is lost
			s.logger.logger.ErrorContext(ctx, "Failed to save generated record", "kind", kind, "owner", owner, "error", err)
		} else {
			result.SavedID = saved.PublicID
		}
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewStudyEvent(events.EventRecordGenerated, events.RecordGeneratedEvent{
		Kind:       string(kind),
		Title:      record.RecordTitle(),
		ItemCount:  record.ItemCount(),
		Provider:   result.Provider,
		OwnerEmail: owner,
		PublicID:   result.SavedID,
	}))

	return result, nil
}

// fillWordCounts sets the summary statistics from the source text.
func fillWordCounts(summary *records.Summary, original string) {
	summaryText := summary.Overview + " " + strings.Join(summary.KeyPoints, " ")
	summary.WordCountOriginal = utils.WordCount(original)
	summary.WordCountSummary = utils.WordCount(summaryText)
	summary.ReductionPercent = utils.ReductionPercent(summary.WordCountOriginal, summary.WordCountSummary)
}

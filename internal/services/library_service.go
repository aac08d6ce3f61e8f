package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/session"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/datatypes"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type libraryService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *ServiceLogger
}

func NewLibraryService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) LibraryService {
	return &libraryService{
		repo:      repo,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "study-service", Component: "library"}),
	}
}

func (s *libraryService) Save(ctx context.Context, owner, provider string, record records.Record) (*models.StudyRecord, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate record id: %w", err)
	}

	row := &models.StudyRecord{
		PublicID:   publicID,
		OwnerEmail: owner,
		Kind:       string(record.Kind()),
		Title:      record.RecordTitle(),
		ItemCount:  record.ItemCount(),
		Provider:   provider,
		Payload:    datatypes.JSON(payload),
	}
	if err := s.repo.StudyRecords().Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.logger.logger.InfoContext(ctx, "Study record saved", "id", row.PublicID, "kind", row.Kind, "owner", owner)
	return row, nil
}

func (s *libraryService) List(ctx context.Context, owner string, filters repositories.StudyRecordFilters) (*RecordListResponse, error) {
	if filters.Kind != nil {
		if _, err := records.ParseKind(*filters.Kind); err != nil {
			return nil, ValidationErrors{*NewValidationError("kind", err.Error(), *filters.Kind)}
		}
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	rows, total, err := s.repo.StudyRecords().ListByOwner(ctx, owner, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	resp := &RecordListResponse{
		Records: make([]*RecordSummary, len(rows)),
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}
	for i, row := range rows {
		resp.Records[i] = toRecordSummary(row)
	}
	return resp, nil
}

func (s *libraryService) Get(ctx context.Context, owner, id string) (*RecordResponse, error) {
	row, record, err := s.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return &RecordResponse{RecordSummary: *toRecordSummary(row), Record: record}, nil
}

func (s *libraryService) Delete(ctx context.Context, owner, id string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_record", owner)
	defer func() { op.LogResult("study_record", err) }()

	if err := s.repo.StudyRecords().Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete record: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewStudyEvent(events.EventRecordDeleted, events.RecordDeletedEvent{
		PublicID:   id,
		OwnerEmail: owner,
	}))
	return nil
}

// PlayQuiz loads a saved quiz into the session's quiz flow.
func (s *libraryService) PlayQuiz(ctx context.Context, sess *session.Session, id string) error {
	_, record, err := s.load(ctx, ownerOf(sess), id)
	if err != nil {
		return err
	}
	quiz, ok := record.(*records.Quiz)
	if !ok {
		return ErrNotAQuiz
	}
	if err := sess.Quiz.Play(quiz); err != nil {
		return err
	}
	sess.Touch()
	return nil
}

func (s *libraryService) load(ctx context.Context, owner, id string) (*models.StudyRecord, records.Record, error) {
	if owner == "" {
		return nil, nil, ErrLoginRequired
	}
	row, err := s.repo.StudyRecords().GetByPublicID(ctx, owner, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load record: %w", err)
	}

	record, err := records.Unmarshal(records.Kind(row.Kind), row.Payload)
	if err != nil {
		return nil, nil, err
	}
	return row, record, nil
}

func toRecordSummary(row *models.StudyRecord) *RecordSummary {
	return &RecordSummary{
		ID:        row.PublicID,
		Kind:      records.Kind(row.Kind),
		Title:     row.Title,
		ItemCount: row.ItemCount,
		Provider:  row.Provider,
		CreatedAt: row.CreatedAt,
	}
}

package services

import (
	"log/slog"

	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/SAP-F-2025/study-service/internal/generation"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

// ServiceManager exposes every service to the handlers.
type ServiceManager interface {
	Auth() AuthService
	Study() StudyService
	Quiz() QuizService
	Library() LibraryService
	Export() ExportService
	Ingest() IngestService
}

type serviceManager struct {
	auth    AuthService
	study   StudyService
	quiz    QuizService
	library LibraryService
	export  ExportService
	ingest  IngestService
}

func NewServiceManager(
	repo repositories.Repository,
	client generation.Client,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	library := NewLibraryService(repo, publisher, logger)
	study := NewStudyService(client, library, publisher, logger, validator)

	return &serviceManager{
		auth:    NewAuthService(repo, publisher, logger, validator),
		study:   study,
		quiz:    NewQuizService(study, publisher, logger, validator),
		library: library,
		export:  NewExportService(library, logger),
		ingest:  NewIngestService(logger),
	}
}

func (m *serviceManager) Auth() AuthService       { return m.auth }
func (m *serviceManager) Study() StudyService     { return m.study }
func (m *serviceManager) Quiz() QuizService       { return m.quiz }
func (m *serviceManager) Library() LibraryService { return m.library }
func (m *serviceManager) Export() ExportService   { return m.export }
func (m *serviceManager) Ingest() IngestService   { return m.ingest }

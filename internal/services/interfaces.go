package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/session"
)

// ===== AUTH =====

type SignupRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users  []*UserResponse `json:"users"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*UserResponse, error)
	ListUsers(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
}

// ===== STUDY GENERATION =====

type FlashcardsRequest struct {
	Content string `json:"content" validate:"required"`
	Count   int    `json:"count" validate:"min=1,max=20"`
}

type QuizRequest struct {
	Content string `json:"content" validate:"required"`
	Count   int    `json:"count" validate:"quiz_size"`
}

type MatchingRequest struct {
	Content string `json:"content" validate:"required"`
	Count   int    `json:"count" validate:"min=2,max=15"`
}

type SummaryRequest struct {
	Content string `json:"content" validate:"required"`
}

type StudyGuideRequest struct {
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject" validate:"required"`
}

type EvaluationRequest struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
	UserAnswer    string `json:"user_answer" validate:"required"`
}

// GenerationResult is a validated record produced by the model.
// SavedID is set when the record was stored in the owner's library.
type GenerationResult struct {
	Kind     records.Kind   `json:"kind"`
	Record   records.Record `json:"record"`
	Provider string         `json:"provider"`
	SavedID  string         `json:"saved_id,omitempty"`
}

type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// StudyService turns study material into records. owner is the email of the
// requesting user; an empty owner skips saving to the library.
type StudyService interface {
	Provider() ProviderStatus
	GenerateFlashcards(ctx context.Context, owner string, req *FlashcardsRequest) (*GenerationResult, error)
	GenerateQuiz(ctx context.Context, owner string, req *QuizRequest) (*GenerationResult, error)
	GenerateMatching(ctx context.Context, owner string, req *MatchingRequest) (*GenerationResult, error)
	GenerateSummary(ctx context.Context, owner string, req *SummaryRequest) (*GenerationResult, error)
	GenerateStudyGuide(ctx context.Context, owner string, req *StudyGuideRequest) (*GenerationResult, error)
	EvaluateAnswer(ctx context.Context, owner string, req *EvaluationRequest) (*GenerationResult, error)
}

// ===== QUIZ FLOW =====

type AnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"min=1"`
	Label      string `json:"label" validate:"required"`
}

type QuizSettingsRequest struct {
	Count int `json:"count" validate:"quiz_size"`
}

// QuizService drives the quiz flow stored on a session.
type QuizService interface {
	StartAI(ctx context.Context, s *session.Session) error
	SetContent(ctx context.Context, s *session.Session, content string) error
	Generate(ctx context.Context, s *session.Session, req *QuizSettingsRequest) (*records.Quiz, error)
	Back(ctx context.Context, s *session.Session) error
	StartManual(ctx context.Context, s *session.Session) error
	AddManualQuestion(ctx context.Context, s *session.Session, q session.ManualQuestion) (*records.QuizQuestion, error)
	ClearManual(ctx context.Context, s *session.Session) error
	PlayCustom(ctx context.Context, s *session.Session) error
	Answer(ctx context.Context, s *session.Session, req *AnswerRequest) error
	Submit(ctx context.Context, s *session.Session) (*session.Result, error)
	Result(ctx context.Context, s *session.Session) (*session.Result, error)
	Retry(ctx context.Context, s *session.Session) error
	Exit(ctx context.Context, s *session.Session) error
}

// ===== LIBRARY =====

type RecordSummary struct {
	ID        string       `json:"id"`
	Kind      records.Kind `json:"kind"`
	Title     string       `json:"title"`
	ItemCount int          `json:"item_count"`
	Provider  string       `json:"provider"`
	CreatedAt time.Time    `json:"created_at"`
}

type RecordListResponse struct {
	Records []*RecordSummary `json:"records"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type RecordResponse struct {
	RecordSummary
	Record records.Record `json:"record"`
}

// LibraryService manages the records saved for a user.
type LibraryService interface {
	Save(ctx context.Context, owner, provider string, record records.Record) (*models.StudyRecord, error)
	List(ctx context.Context, owner string, filters repositories.StudyRecordFilters) (*RecordListResponse, error)
	Get(ctx context.Context, owner, id string) (*RecordResponse, error)
	Delete(ctx context.Context, owner, id string) error
	PlayQuiz(ctx context.Context, s *session.Session, id string) error
}

// ===== FILES =====

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

type ImportResult struct {
	TotalRows    int               `json:"total_rows"`
	SuccessCount int               `json:"success_count"`
	ErrorCount   int               `json:"error_count"`
	Errors       []ValidationError `json:"errors,omitempty"`
}

// ExportService writes saved records to spreadsheets and reads manual quiz questions from them.
type ExportService interface {
	Export(ctx context.Context, owner, id string, format ExportFormat) (*ExportFile, error)
	ImportQuizQuestions(ctx context.Context, s *session.Session, reader io.Reader, filename string) (*ImportResult, error)
}

type Document struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
}

// IngestService extracts text from uploaded study material.
type IngestService interface {
	ExtractText(ctx context.Context, reader io.Reader, size int64, filename string) (*Document, error)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/repositories/postgres"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

// MockRepository groups mock stores
type MockRepository struct {
	users   repositories.UserRepository
	records repositories.StudyRecordRepository
}

func (m *MockRepository) Users() repositories.UserRepository               { return m.users }
func (m *MockRepository) StudyRecords() repositories.StudyRecordRepository { return m.records }

// MockGenerationClient is a mock implementation of generation.Client
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Name() string {
	return "Mock (test-model)"
}

func (m *MockGenerationClient) IsConfigured() bool {
	return true
}

func (m *MockGenerationClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestRepository returns a repository over a private in-memory sqlite database.
func newTestRepository(t *testing.T) repositories.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.StudyRecord{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return postgres.NewRepository(db)
}

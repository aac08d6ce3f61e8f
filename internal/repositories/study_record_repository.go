package repositories

import (
	"context"

	"github.com/SAP-F-2025/study-service/internal/models"
)

// StudyRecordRepository stores generated records. Reads and deletes are scoped to the owner.
type StudyRecordRepository interface {
	Create(ctx context.Context, record *models.StudyRecord) error
	GetByPublicID(ctx context.Context, ownerEmail, publicID string) (*models.StudyRecord, error)
	ListByOwner(ctx context.Context, ownerEmail string, filters StudyRecordFilters) ([]*models.StudyRecord, int64, error)
	Delete(ctx context.Context, ownerEmail, publicID string) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/study-service/internal/models"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"gorm.io/gorm"
)

type StudyRecordPostgreSQL struct {
	db *gorm.DB
}

func NewStudyRecordPostgreSQL(db *gorm.DB) repositories.StudyRecordRepository {
	return &StudyRecordPostgreSQL{
		db: db,
	}
}

func (s *StudyRecordPostgreSQL) Create(ctx context.Context, record *models.StudyRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create study record: %w", translateError(err))
	}
	return nil
}

func (s *StudyRecordPostgreSQL) GetByPublicID(ctx context.Context, ownerEmail, publicID string) (*models.StudyRecord, error) {
	var record models.StudyRecord
	err := s.db.WithContext(ctx).
		Where("public_id = ? AND owner_email = ?", publicID, ownerEmail).
		First(&record).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// ListByOwner returns the owner's records, newest first.
func (s *StudyRecordPostgreSQL) ListByOwner(ctx context.Context, ownerEmail string, filters repositories.StudyRecordFilters) ([]*models.StudyRecord, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.StudyRecord{}).Where("owner_email = ?", ownerEmail)
	if filters.Kind != nil {
		query = query.Where("kind = ?", *filters.Kind)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*models.StudyRecord
	if err := applyPaging(query.Order("created_at DESC, id DESC"), filters.Limit, filters.Offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *StudyRecordPostgreSQL) Delete(ctx context.Context, ownerEmail, publicID string) error {
	result := s.db.WithContext(ctx).
		Where("public_id = ? AND owner_email = ?", publicID, ownerEmail).
		Delete(&models.StudyRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete study record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

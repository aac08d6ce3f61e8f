package postgres

import (
	"errors"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	users        repositories.UserRepository
	studyRecords repositories.StudyRecordRepository
}

// NewRepository wires the gorm-backed stores around one connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		users:        NewUserPostgreSQL(db),
		studyRecords: NewStudyRecordPostgreSQL(db),
	}
}

func (r *repository) Users() repositories.UserRepository {
	return r.users
}

func (r *repository) StudyRecords() repositories.StudyRecordRepository {
	return r.studyRecords
}

// translateError maps driver errors onto repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return repositories.ErrDuplicate
	}
	return err
}

// isUniqueViolation covers drivers that do not implement gorm's error translation.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func applyPaging(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}

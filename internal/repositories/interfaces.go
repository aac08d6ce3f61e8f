package repositories

import (
	"errors"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the caller.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("duplicate record")
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type StudyRecordFilters struct {
	Kind   *string `json:"kind"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Repository groups the stores the services depend on.
type Repository interface {
	Users() UserRepository
	StudyRecords() StudyRecordRepository
}

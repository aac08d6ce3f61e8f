package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudyRecord is a generated record saved to its owner's library.
type StudyRecord struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	PublicID   string         `json:"id" gorm:"uniqueIndex;not null;size:32"`
	OwnerEmail string         `json:"owner_email" gorm:"index;not null;size:255"`
	Kind       string         `json:"kind" gorm:"index;not null;size:32"`
	Title      string         `json:"title" gorm:"size:255"`
	ItemCount  int            `json:"item_count"`
	Provider   string         `json:"provider" gorm:"size:100"`
	Payload    datatypes.JSON `json:"payload" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (StudyRecord) TableName() string {
	return "study_records"
}

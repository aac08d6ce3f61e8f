package models

import (
	"time"
)

// User is an account created at signup. Email is unique and compared as stored.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Name         string    `json:"name" gorm:"not null;size:200"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of study activity events
type EventType string

const (
	// User events
	EventUserSignedUp EventType = "user.signed_up"
	EventUserLoggedIn EventType = "user.logged_in"

	// Study record events
	EventRecordGenerated EventType = "record.generated"
	EventRecordDeleted   EventType = "record.deleted"

	// Quiz events
	EventQuizSubmitted EventType = "quiz.submitted"
)

const (
	eventSource  = "study-service"
	eventVersion = "1.0"
)

// StudyEvent is the envelope published for every study activity event
type StudyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewStudyEvent wraps data in an envelope with a fresh id and timestamp.
func NewStudyEvent(eventType EventType, data interface{}) *StudyEvent {
	return &StudyEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// User event payloads

type UserSignedUpEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UserLoggedInEvent struct {
	Email string `json:"email"`
}

// Study record event payloads

type RecordGeneratedEvent struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	ItemCount  int    `json:"item_count"`
	Provider   string `json:"provider"`
	OwnerEmail string `json:"owner_email,omitempty"`
	PublicID   string `json:"public_id,omitempty"`
}

type RecordDeletedEvent struct {
	PublicID   string `json:"public_id"`
	OwnerEmail string `json:"owner_email"`
}

// Quiz event payloads

type QuizSubmittedEvent struct {
	SessionID  string `json:"session_id"`
	OwnerEmail string `json:"owner_email,omitempty"`
	QuizTitle  string `json:"quiz_title"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percent    int    `json:"percent"`
	Grade      string `json:"grade"`
}

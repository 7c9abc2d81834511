package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus represents the lifecycle state of an interview session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusExpired   SessionStatus = "EXPIRED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// CompiledQuestion is one entry of a session's question script
type CompiledQuestion struct {
	Index            int      `json:"index"`
	Category         string   `json:"category"`
	Text             string   `json:"text"`
	Priority         Priority `json:"priority"`
	SourceConditions []string `json:"source_conditions,omitempty"`
}

// IsSensitive reports whether the question carries the sensitive tag
func (q CompiledQuestion) IsSensitive() bool {
	return HasCondition(q.SourceConditions, ConditionSensitive)
}

// InterviewSession represents one deployment of a bot behind an access token
type InterviewSession struct {
	ID                    uuid.UUID                             `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BotID                 uuid.UUID                             `gorm:"type:uuid;not null;index" json:"bot_id"`
	PersonaID             *uuid.UUID                            `gorm:"type:uuid" json:"persona_id,omitempty"`
	Title                 string                                `gorm:"type:varchar(255);not null" json:"title"`
	Description           *string                               `gorm:"type:text" json:"description,omitempty"`
	ResearchFocus         datatypes.JSONSlice[string]           `gorm:"type:jsonb;default:'[]'" json:"research_focus"`
	AccessToken           string                                `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Status                SessionStatus                         `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	ExpiresAt             time.Time                             `gorm:"not null;index" json:"expires_at"`
	EstimatedDuration     *int                                  `json:"estimated_duration,omitempty"`                                           // minutes
	MaxParticipants       int                                   `gorm:"not null;default:1;check:max_participants >= 1" json:"max_participants"`
	CurrentParticipants   int                                   `gorm:"not null;default:0" json:"current_participants"`
	CompletedParticipants int                                   `gorm:"not null;default:0" json:"completed_participants"`
	Questions             datatypes.JSONSlice[CompiledQuestion] `gorm:"type:jsonb;not null;default:'[]'" json:"questions"`
	ParticipantEmail      *string                               `gorm:"type:varchar(255)" json:"participant_email,omitempty"`
	ParticipantName       *string                               `gorm:"type:varchar(255)" json:"participant_name,omitempty"`
	CreatedBy             uuid.UUID                             `gorm:"type:uuid;not null;index" json:"created_by"`
	CompletedAt           *time.Time                            `json:"completed_at,omitempty"`
	CreatedAt             time.Time                             `gorm:"default:now()" json:"created_at"`
	UpdatedAt             time.Time                             `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for InterviewSession
func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// IsActive checks if the session still accepts participants
func (s *InterviewSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// IsFull checks if the session has reached max capacity
func (s *InterviewSession) IsFull() bool {
	return s.CurrentParticipants >= s.MaxParticipants
}

// HasExpired reports whether the session is expired at now, either by status or by time
func (s *InterviewSession) HasExpired(now time.Time) bool {
	return s.Status == SessionStatusExpired || (s.Status == SessionStatusActive && !now.Before(s.ExpiresAt))
}

// IsOwnedBy reports whether the session was created by the given user
func (s *InterviewSession) IsOwnedBy(userID uuid.UUID) bool {
	return s.CreatedBy == userID
}

// TotalQuestions returns the length of the compiled script
func (s *InterviewSession) TotalQuestions() int {
	return len(s.Questions)
}

// QuestionAt returns the compiled question at index, if any
func (s *InterviewSession) QuestionAt(index int) (CompiledQuestion, bool) {
	if index < 0 || index >= len(s.Questions) {
		return CompiledQuestion{}, false
	}
	return s.Questions[index], true
}

// Expire marks an active session as expired
func (s *InterviewSession) Expire() bool {
	if s.Status != SessionStatusActive {
		return false
	}
	s.Status = SessionStatusExpired
	return true
}

// IncrementParticipants increases the admitted participant count
func (s *InterviewSession) IncrementParticipants() {
	s.CurrentParticipants++
}

// RecordCompletion counts a finished participant and completes the session
// once it is at capacity and every admitted participant has finished.
// It returns true when the session transitioned to COMPLETED.
func (s *InterviewSession) RecordCompletion(now time.Time) bool {
	s.CompletedParticipants++
	if s.Status != SessionStatusActive {
		return false
	}
	if s.CurrentParticipants >= s.MaxParticipants && s.CompletedParticipants >= s.CurrentParticipants {
		s.Status = SessionStatusCompleted
		s.CompletedAt = &now
		return true
	}
	return false
}

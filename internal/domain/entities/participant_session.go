package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResponseSignals holds the analyzer output attached to a response
type ResponseSignals struct {
	Sentiment float64 `json:"sentiment"` // -1..1
	Relevance float64 `json:"relevance"` // 0..1
}

// Response is one submitted answer
type Response struct {
	QuestionIndex int              `json:"question_index"`
	Text          string           `json:"text"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	Signals       *ResponseSignals `json:"signals,omitempty"`
	Clarification bool             `json:"clarification,omitempty"`
}

// ParticipantSession represents one participant's progress through a session script
type ParticipantSession struct {
	ID                   uuid.UUID                     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID            uuid.UUID                     `gorm:"type:uuid;not null;index" json:"session_id"`
	UserID               *uuid.UUID                    `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AnonymousID          string                        `gorm:"type:varchar(64);not null" json:"anonymous_id"`
	ParticipantEmail     *string                       `gorm:"type:varchar(255)" json:"participant_email,omitempty"`
	ParticipantName      *string                       `gorm:"type:varchar(255)" json:"participant_name,omitempty"`
	JoinedAt             time.Time                     `gorm:"not null" json:"joined_at"`
	LastActiveAt         time.Time                     `gorm:"not null" json:"last_active_at"`
	CurrentQuestionIndex int                           `gorm:"not null;default:0" json:"current_question_index"`
	Responses            datatypes.JSONSlice[Response] `gorm:"type:jsonb;not null;default:'[]'" json:"responses"`
	ClarifiedIndices     datatypes.JSONSlice[int]      `gorm:"type:jsonb;not null;default:'[]'" json:"clarified_indices,omitempty"`
	Completed            bool                          `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt          *time.Time                    `json:"completed_at,omitempty"`
	Version              int                           `gorm:"not null;default:0" json:"-"`
	CreatedAt            time.Time                     `gorm:"default:now()" json:"created_at"`
	UpdatedAt            time.Time                     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for ParticipantSession
func (ParticipantSession) TableName() string {
	return "participant_sessions"
}

// WasClarified reports whether a clarification was already requested at index
func (p *ParticipantSession) WasClarified(index int) bool {
	for _, i := range p.ClarifiedIndices {
		if i == index {
			return true
		}
	}
	return false
}

// AnsweredCount returns the number of distinct questions answered
func (p *ParticipantSession) AnsweredCount() int {
	seen := make(map[int]struct{}, len(p.Responses))
	for _, r := range p.Responses {
		seen[r.QuestionIndex] = struct{}{}
	}
	return len(seen)
}

// Progress returns the completed fraction of a script of total questions
func (p *ParticipantSession) Progress(total int) float64 {
	if p.Completed || total == 0 {
		return 1
	}
	progress := float64(p.AnsweredCount()) / float64(total)
	if progress > 1 {
		return 1
	}
	return progress
}

// Complete marks the participant as finished
func (p *ParticipantSession) Complete(now time.Time) {
	p.Completed = true
	p.CompletedAt = &now
}

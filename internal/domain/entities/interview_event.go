package entities

import (
	"time"

	"github.com/google/uuid"
)

// InterviewEventType represents a lifecycle event of an interview
type InterviewEventType string

const (
	InterviewEventStart    InterviewEventType = "start"
	InterviewEventResponse InterviewEventType = "response"
	InterviewEventComplete InterviewEventType = "complete"
)

// InterviewEvent is published to downstream consumers as interviews progress
type InterviewEvent struct {
	SessionID     uuid.UUID              `json:"session_id"`
	BotID         uuid.UUID              `json:"bot_id"`
	ParticipantID *uuid.UUID             `json:"participant_id,omitempty"`
	Type          InterviewEventType     `json:"type"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// RoutingKey returns the key consumers subscribe to, e.g. interview.start
func (e InterviewEvent) RoutingKey() string {
	return "interview." + string(e.Type)
}

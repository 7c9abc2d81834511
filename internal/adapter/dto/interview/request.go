package interview

// CreateSessionRequest represents the request to create an interview session
type CreateSessionRequest struct {
	BotID             string   `json:"bot_id" validate:"required,uuid"`
	PersonaID         *string  `json:"persona_id,omitempty" validate:"omitempty,uuid"`
	Title             string   `json:"title" validate:"required,notblank,max=255"`
	Description       *string  `json:"description,omitempty"`
	ResearchFocus     []string `json:"research_focus,omitempty"`
	ExpiresIn         *int     `json:"expires_in,omitempty" validate:"omitempty,min=1,max=168"`
	MaxParticipants   *int     `json:"max_participants,omitempty" validate:"omitempty,min=1"`
	EstimatedDuration *int     `json:"estimated_duration,omitempty" validate:"omitempty,min=0"`
	ParticipantEmail  *string  `json:"participant_email,omitempty" validate:"omitempty,email"`
	ParticipantName   *string  `json:"participant_name,omitempty" validate:"omitempty,max=255"`
}

// JoinSessionRequest represents the participant data sent when joining
type JoinSessionRequest struct {
	AnonymousID string  `json:"anonymous_id,omitempty" validate:"omitempty,max=64"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// SubmitResponseRequest represents an answer to the current question
type SubmitResponseRequest struct {
	ParticipantSessionID string `json:"participant_session_id" validate:"required,uuid"`
	QuestionIndex        *int   `json:"question_index" validate:"required,min=0"`
	Response             string `json:"response" validate:"required,notblank"`
}

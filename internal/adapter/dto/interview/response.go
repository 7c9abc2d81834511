package interview

import (
	"time"

	"github.com/johnquangdev/interview-assistant/internal/adapter/dto/common"
)

// QuestionResponse represents a compiled question shown to a participant
type QuestionResponse struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// SessionResponse is the owner view of a session and includes the access token
type SessionResponse struct {
	ID                    string              `json:"id"`
	BotID                 string              `json:"bot_id"`
	PersonaID             *string             `json:"persona_id,omitempty"`
	Title                 string              `json:"title"`
	Description           *string             `json:"description,omitempty"`
	ResearchFocus         []string            `json:"research_focus"`
	AccessToken           string              `json:"access_token"`
	Status                string              `json:"status"`
	ExpiresAt             time.Time           `json:"expires_at"`
	EstimatedDuration     *int                `json:"estimated_duration,omitempty"`
	MaxParticipants       int                 `json:"max_participants"`
	CurrentParticipants   int                 `json:"current_participants"`
	CompletedParticipants int                 `json:"completed_participants"`
	TotalQuestions        int                 `json:"total_questions"`
	Questions             []*QuestionResponse `json:"questions,omitempty"`
	ParticipantEmail      *string             `json:"participant_email,omitempty"`
	ParticipantName       *string             `json:"participant_name,omitempty"`
	CompletedAt           *time.Time          `json:"completed_at,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// SessionListResponse represents a page of sessions
type SessionListResponse struct {
	Sessions   []*SessionResponse         `json:"sessions"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// ParticipantResponse is the owner view of a participant session
type ParticipantResponse struct {
	ID                   string     `json:"id"`
	UserID               *string    `json:"user_id,omitempty"`
	AnonymousID          string     `json:"anonymous_id"`
	ParticipantEmail     *string    `json:"participant_email,omitempty"`
	ParticipantName      *string    `json:"participant_name,omitempty"`
	JoinedAt             time.Time  `json:"joined_at"`
	LastActiveAt         time.Time  `json:"last_active_at"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	Answered             int        `json:"answered"`
	Progress             float64    `json:"progress"`
	Completed            bool       `json:"completed"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// SessionDetailResponse is the owner view of a session with its participants
type SessionDetailResponse struct {
	Session      *SessionResponse       `json:"session"`
	Participants []*ParticipantResponse `json:"participants"`
}

// BotPreview is what a participant may learn about the bot
type BotPreview struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SessionPreviewResponse is the participant view of a session
type SessionPreviewResponse struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Description         *string     `json:"description,omitempty"`
	EstimatedDuration   *int        `json:"estimated_duration,omitempty"`
	Status              string      `json:"status"`
	ExpiresAt           time.Time   `json:"expires_at"`
	MaxParticipants     int         `json:"max_participants"`
	CurrentParticipants int         `json:"current_participants"`
	TotalQuestions      int         `json:"total_questions"`
	Bot                 *BotPreview `json:"bot"`
}

// JoinSessionResponse represents the outcome of joining a session
type JoinSessionResponse struct {
	ParticipantSessionID string                  `json:"participant_session_id"`
	AnonymousID          string                  `json:"anonymous_id"`
	Session              *SessionPreviewResponse `json:"session"`
	Question             *QuestionResponse       `json:"question,omitempty"`
	QuestionIndex        int                     `json:"question_index"`
	TotalQuestions       int                     `json:"total_questions"`
	Completed            bool                    `json:"completed"`
}

// SubmitResponseResponse represents the engine's answer to a submission
type SubmitResponseResponse struct {
	Accepted               bool              `json:"accepted"`
	NextQuestionIndex      *int              `json:"next_question_index,omitempty"`
	NextQuestion           *QuestionResponse `json:"next_question,omitempty"`
	Completed              bool              `json:"completed"`
	ClarificationRequested bool              `json:"clarification_requested"`
	Skipped                int               `json:"skipped"`
	Progress               float64           `json:"progress"`
	AnalysisUnavailable    bool              `json:"analysis_unavailable,omitempty"`
}

// ProgressResponse represents a participant's position in the script
type ProgressResponse struct {
	ParticipantSessionID string            `json:"participant_session_id"`
	SessionID            string            `json:"session_id"`
	CurrentQuestionIndex int               `json:"current_question_index"`
	TotalQuestions       int               `json:"total_questions"`
	Answered             int               `json:"answered"`
	Progress             float64           `json:"progress"`
	Completed            bool              `json:"completed"`
	Question             *QuestionResponse `json:"question,omitempty"`
}

package interview

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Service defines the interface for the interview session use case
type Service interface {
	// CreateSession compiles a bot into a new token-gated session
	CreateSession(ctx context.Context, input CreateSessionInput) (*entities.InterviewSession, error)

	// GetSession retrieves a session with its participants for its owner
	GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*SessionDetail, error)

	// ListSessions retrieves the owner's sessions, newest first
	ListSessions(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error)

	// ResolveByToken retrieves a session by access token, expiring it lazily
	ResolveByToken(ctx context.Context, token string) (*entities.InterviewSession, error)

	// Preview retrieves what a participant may see before joining
	Preview(ctx context.Context, token string) (*SessionPreview, error)

	// Join admits a participant through an access token
	Join(ctx context.Context, input JoinInput) (*JoinResult, error)

	// GetProgress reports a participant's position in the script
	GetProgress(ctx context.Context, participantSessionID uuid.UUID) (*Progress, error)

	// SubmitResponse records an answer and selects the next question
	SubmitResponse(ctx context.Context, input SubmitResponseInput) (*SubmitResult, error)

	// ExpireDue expires every active session past its expiry
	ExpireDue(ctx context.Context) (int64, error)
}

var _ Service = (*InterviewService)(nil)

// CreateSessionInput represents input for creating a session
type CreateSessionInput struct {
	OwnerID           uuid.UUID
	BotID             uuid.UUID
	PersonaID         *uuid.UUID
	Title             string
	Description       *string
	ResearchFocus     []string
	ExpiresInHours    *int
	MaxParticipants   *int
	EstimatedDuration *int
	ParticipantEmail  *string
	ParticipantName   *string
}

// SessionDetail is the owner view of a session
type SessionDetail struct {
	Session      *entities.InterviewSession
	Participants []*entities.ParticipantSession
}

// SessionPreview is the participant view of a session before joining
type SessionPreview struct {
	Session *entities.InterviewSession
	Bot     *entities.Bot
}

// JoinInput represents a participant joining through a token
type JoinInput struct {
	Token       string
	UserID      *uuid.UUID
	AnonymousID string
	Email       *string
	Name        *string
}

// JoinResult represents the outcome of a join
type JoinResult struct {
	Session        *entities.InterviewSession
	Bot            *entities.Bot
	Participant    *entities.ParticipantSession
	Question       *entities.CompiledQuestion
	TotalQuestions int
	Completed      bool
}

// Progress represents a participant's position in the script
type Progress struct {
	ParticipantSessionID uuid.UUID
	SessionID            uuid.UUID
	CurrentQuestionIndex int
	TotalQuestions       int
	Answered             int
	Progress             float64
	Completed            bool
	Question             *entities.CompiledQuestion
}

// SubmitResponseInput represents an answer to the current question
type SubmitResponseInput struct {
	ParticipantSessionID uuid.UUID
	QuestionIndex        int
	Text                 string
}

// SubmitResult represents the engine's answer to a submission
type SubmitResult struct {
	Accepted               bool
	NextQuestionIndex      *int
	NextQuestion           *entities.CompiledQuestion
	Completed              bool
	ClarificationRequested bool
	Skipped                int
	Progress               float64
	AnalysisUnavailable    bool
}

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// AdmissionCheck inspects a locked session before a participant is admitted.
// A non-nil error aborts the admission without side effects.
type AdmissionCheck func(session *entities.InterviewSession) error

// InterviewSessionRepository defines the interface for interview session data access
type InterviewSessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entities.InterviewSession) error

	// FindByID retrieves a session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error)

	// FindByAccessToken retrieves a session by its access token
	FindByAccessToken(ctx context.Context, token string) (*entities.InterviewSession, error)

	// ExistsByAccessToken reports whether a token is already in use
	ExistsByAccessToken(ctx context.Context, token string) (bool, error)

	// List retrieves sessions with filters and pagination
	List(ctx context.Context, filters SessionFilters) ([]*entities.InterviewSession, int64, error)

	// CountByBotID counts sessions created from a bot
	CountByBotID(ctx context.Context, botID uuid.UUID) (int64, error)

	// MarkExpired moves an ACTIVE session to EXPIRED; false when it was not ACTIVE
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)

	// ExpireDue moves every ACTIVE session whose expiry is at or before now to EXPIRED
	ExpireDue(ctx context.Context, now time.Time) (int64, error)

	// AdmitParticipant atomically runs check against the locked session, increments
	// current_participants and inserts the participant. A participant created already
	// completed is counted towards completion in the same unit.
	AdmitParticipant(ctx context.Context, sessionID uuid.UUID, check AdmissionCheck, participant *entities.ParticipantSession, now time.Time) (*entities.InterviewSession, error)
}

// SessionFilters represents filter options for listing sessions
type SessionFilters struct {
	CreatedBy *uuid.UUID
	BotID     *uuid.UUID
	Status    *entities.SessionStatus
	Limit     int
	Offset    int
}

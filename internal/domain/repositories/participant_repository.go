package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// ParticipantSessionRepository defines the interface for participant session data access
type ParticipantSessionRepository interface {
	// FindByID retrieves a participant session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ParticipantSession, error)

	// FindBySessionID retrieves all participants of a session in join order
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.ParticipantSession, error)

	// SaveProgress persists participant progress if the stored version still equals
	// participant.Version, then bumps the version. Returns entities.ErrVersionConflict otherwise.
	SaveProgress(ctx context.Context, participant *entities.ParticipantSession) error

	// CompleteParticipant saves a finished participant like SaveProgress and, in the same
	// unit, counts the completion on the locked session, completing the session when
	// every admitted participant is done. Returns the updated session.
	CompleteParticipant(ctx context.Context, participant *entities.ParticipantSession, now time.Time) (*entities.InterviewSession, error)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
)

// participantSessionRepository implements the ParticipantSessionRepository interface
type participantSessionRepository struct {
	db *gorm.DB
}

// NewParticipantSessionRepository creates a new participant session repository
func NewParticipantSessionRepository(db *gorm.DB) repositories.ParticipantSessionRepository {
	return &participantSessionRepository{db: db}
}

// FindByID retrieves a participant session by ID
func (r *participantSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ParticipantSession, error) {
	var participant entities.ParticipantSession
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindBySessionID retrieves all participants of a session in join order
func (r *participantSessionRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.ParticipantSession, error) {
	var participants []*entities.ParticipantSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// SaveProgress persists progress guarded by the participant version
func (r *participantSessionRepository) SaveProgress(ctx context.Context, participant *entities.ParticipantSession) error {
	if err := saveProgress(r.db.WithContext(ctx), participant); err != nil {
		return err
	}

	participant.Version++
	return nil
}

// saveProgress runs the version-checked update without bumping the in-memory version
func saveProgress(db *gorm.DB, participant *entities.ParticipantSession) error {
	result := db.
		Model(&entities.ParticipantSession{}).
		Where("id = ? AND version = ?", participant.ID, participant.Version).
		Updates(map[string]interface{}{
			"current_question_index": participant.CurrentQuestionIndex,
			"responses":              participant.Responses,
			"clarified_indices":      participant.ClarifiedIndices,
			"completed":              participant.Completed,
			"completed_at":           participant.CompletedAt,
			"last_active_at":         participant.LastActiveAt,
			"version":                gorm.Expr("version + 1"),
			"updated_at":             participant.LastActiveAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrVersionConflict
	}
	return nil
}

// CompleteParticipant saves the finished participant and counts it on the locked session in one transaction
func (r *participantSessionRepository) CompleteParticipant(ctx context.Context, participant *entities.ParticipantSession, now time.Time) (*entities.InterviewSession, error) {
	var session entities.InterviewSession

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", participant.SessionID).
			First(&session).Error; err != nil {
			return err
		}

		if err := saveProgress(tx, participant); err != nil {
			return err
		}

		session.RecordCompletion(now)

		return tx.Model(&entities.InterviewSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"completed_participants": session.CompletedParticipants,
				"status":                 session.Status,
				"completed_at":           session.CompletedAt,
				"updated_at":             now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	participant.Version++
	return &session, nil
}

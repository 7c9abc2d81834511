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

// interviewSessionRepository implements the InterviewSessionRepository interface
type interviewSessionRepository struct {
	db *gorm.DB
}

// NewInterviewSessionRepository creates a new interview session repository
func NewInterviewSessionRepository(db *gorm.DB) repositories.InterviewSessionRepository {
	return &interviewSessionRepository{db: db}
}

// Create creates a new session
func (r *interviewSessionRepository) Create(ctx context.Context, session *entities.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID retrieves a session by its ID
func (r *interviewSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error

	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByAccessToken retrieves a session by its access token
func (r *interviewSessionRepository) FindByAccessToken(ctx context.Context, token string) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	err := r.db.WithContext(ctx).
		Where("access_token = ?", token).
		First(&session).Error

	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ExistsByAccessToken reports whether a token is already in use
func (r *interviewSessionRepository) ExistsByAccessToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("access_token = ?", token).
		Count(&count).Error
	return count > 0, err
}

// List retrieves sessions with filters and pagination
func (r *interviewSessionRepository) List(ctx context.Context, filters repositories.SessionFilters) ([]*entities.InterviewSession, int64, error) {
	var sessions []*entities.InterviewSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.InterviewSession{})

	// Apply filters
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.BotID != nil {
		query = query.Where("bot_id = ?", *filters.BotID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// CountByBotID counts sessions created from a bot
func (r *interviewSessionRepository) CountByBotID(ctx context.Context, botID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("bot_id = ?", botID).
		Count(&count).Error
	return count, err
}

// MarkExpired moves an ACTIVE session to EXPIRED; false when it was not ACTIVE
func (r *interviewSessionRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("id = ? AND status = ?", id, entities.SessionStatusActive).
		Update("status", entities.SessionStatusExpired)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireDue moves every ACTIVE session whose expiry is at or before now to EXPIRED
func (r *interviewSessionRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("status = ? AND expires_at <= ?", entities.SessionStatusActive, now).
		Update("status", entities.SessionStatusExpired)
	return result.RowsAffected, result.Error
}

// AdmitParticipant locks the session row, runs check and admits the participant in one transaction
func (r *interviewSessionRepository) AdmitParticipant(
	ctx context.Context,
	sessionID uuid.UUID,
	check repositories.AdmissionCheck,
	participant *entities.ParticipantSession,
	now time.Time,
) (*entities.InterviewSession, error) {
	var session entities.InterviewSession

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sessionID).
			First(&session).Error; err != nil {
			return err
		}

		if err := check(&session); err != nil {
			return err
		}

		session.IncrementParticipants()
		participant.SessionID = session.ID
		if err := tx.Create(participant).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"current_participants": session.CurrentParticipants,
			"updated_at":           now,
		}
		if participant.Completed {
			session.RecordCompletion(now)
			updates["completed_participants"] = session.CompletedParticipants
			updates["status"] = session.Status
			updates["completed_at"] = session.CompletedAt
		}

		return tx.Model(&entities.InterviewSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

const (
	minExpiresInHours = 1
	maxExpiresInHours = 168
)

// CreateSession compiles a bot into a new token-gated session
func (s *InterviewService) CreateSession(ctx context.Context, input CreateSessionInput) (*entities.InterviewSession, error) {
	// Validate input
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, usecaseErrors.InvalidConfig("title is required")
	}

	expiresIn := s.policy.DefaultExpiresInHours
	if input.ExpiresInHours != nil {
		expiresIn = *input.ExpiresInHours
	}
	if expiresIn < minExpiresInHours || expiresIn > maxExpiresInHours {
		return nil, usecaseErrors.ErrInvalidExpiresIn
	}

	maxParticipants := 1
	if input.MaxParticipants != nil {
		maxParticipants = *input.MaxParticipants
	}
	if maxParticipants < 1 {
		return nil, usecaseErrors.ErrInvalidMaxParticipants
	}

	if input.EstimatedDuration != nil && *input.EstimatedDuration < 0 {
		return nil, usecaseErrors.InvalidConfig("estimated_duration must not be negative")
	}

	// Bots are only visible to their owner
	bot, err := s.findBot(ctx, input.BotID)
	if err != nil {
		return nil, err
	}
	if !bot.IsOwnedBy(input.OwnerID) || !bot.IsActive {
		return nil, usecaseErrors.ErrBotNotFound
	}

	token, err := s.generateToken(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &entities.InterviewSession{
		ID:                  uuid.New(),
		BotID:               bot.ID,
		PersonaID:           input.PersonaID,
		Title:               title,
		Description:         input.Description,
		ResearchFocus:       append([]string{}, input.ResearchFocus...),
		AccessToken:         token,
		Status:              entities.SessionStatusActive,
		ExpiresAt:           now.Add(time.Duration(expiresIn) * time.Hour),
		EstimatedDuration:   input.EstimatedDuration,
		MaxParticipants:     maxParticipants,
		CurrentParticipants: 0,
		Questions:           Compile(bot.ResearchQuestions, input.ResearchFocus),
		ParticipantEmail:    input.ParticipantEmail,
		ParticipantName:     input.ParticipantName,
		CreatedBy:           input.OwnerID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("interview session created",
		zap.String("session_id", session.ID.String()),
		zap.String("bot_id", bot.ID.String()),
		zap.Int("questions", len(session.Questions)),
	)

	s.publish(ctx, entities.InterviewEvent{
		SessionID: session.ID,
		BotID:     bot.ID,
		Type:      entities.InterviewEventStart,
		Payload: map[string]interface{}{
			"title":            session.Title,
			"question_count":   len(session.Questions),
			"max_participants": session.MaxParticipants,
			"expires_at":       session.ExpiresAt,
		},
		Timestamp: now,
	})

	return session, nil
}

// generateToken draws random tokens until one is not in use
func (s *InterviewService) generateToken(ctx context.Context) (string, error) {
	attempts := s.policy.TokenAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		token, err := s.tokens.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate access token: %w", err)
		}

		exists, err := s.sessionRepo.ExistsByAccessToken(ctx, token)
		if err != nil {
			return "", fmt.Errorf("failed to check access token: %w", err)
		}
		if !exists {
			return token, nil
		}

		s.logger.Warn("access token collision, retrying", zap.Int("attempt", i+1))
	}

	return "", usecaseErrors.ErrTokenGeneration
}

// GetSession retrieves a session with its participants for its owner
func (s *InterviewService) GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOwnedBy(ownerID) {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	if err := s.expireIfDue(ctx, session); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.FindBySessionID(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	return &SessionDetail{Session: session, Participants: participants}, nil
}

// ListSessions retrieves the owner's sessions, newest first
func (s *InterviewService) ListSessions(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error) {
	sessions, total, err := s.sessionRepo.List(ctx, repositories.SessionFilters{
		CreatedBy: &ownerID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, total, nil
}

// ResolveByToken retrieves a session by access token, expiring it lazily
func (s *InterviewService) ResolveByToken(ctx context.Context, token string) (*entities.InterviewSession, error) {
	if strings.TrimSpace(token) == "" {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	session, err := s.sessionRepo.FindByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if err := s.expireIfDue(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Preview retrieves what a participant may see before joining
func (s *InterviewService) Preview(ctx context.Context, token string) (*SessionPreview, error) {
	session, err := s.ResolveByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	bot, err := s.findBot(ctx, session.BotID)
	if err != nil {
		return nil, err
	}

	return &SessionPreview{Session: session, Bot: bot}, nil
}

// ExpireDue expires every active session past its expiry
func (s *InterviewService) ExpireDue(ctx context.Context) (int64, error) {
	count, err := s.sessionRepo.ExpireDue(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire sessions: %w", err)
	}
	if count > 0 {
		s.logger.Info("expired interview sessions", zap.Int64("count", count))
	}
	return count, nil
}

// expireIfDue persists the ACTIVE to EXPIRED transition when the session is past its expiry
func (s *InterviewService) expireIfDue(ctx context.Context, session *entities.InterviewSession) error {
	if !session.IsActive() || s.clock.Now().Before(session.ExpiresAt) {
		return nil
	}

	expired, err := s.sessionRepo.MarkExpired(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to expire session: %w", err)
	}
	if !expired {
		// Another request already moved it out of ACTIVE
		current, err := s.findSession(ctx, session.ID)
		if err != nil {
			return err
		}
		*session = *current
		return nil
	}
	session.Expire()

	s.logger.Info("interview session expired", zap.String("session_id", session.ID.String()))
	return nil
}

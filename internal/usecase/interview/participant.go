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
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

// CheckJoinable applies the access policy in order: expired, completed, full
func CheckJoinable(session *entities.InterviewSession, now time.Time) error {
	if session.HasExpired(now) {
		return usecaseErrors.ErrSessionExpired
	}
	if session.Status == entities.SessionStatusCompleted {
		return usecaseErrors.ErrSessionCompleted
	}
	if session.IsFull() {
		return usecaseErrors.ErrSessionFull
	}
	return nil
}

// Join admits a participant through an access token
func (s *InterviewService) Join(ctx context.Context, input JoinInput) (*JoinResult, error) {
	session, err := s.ResolveByToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	bot, err := s.findBot(ctx, session.BotID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	anonymousID := strings.TrimSpace(input.AnonymousID)
	if anonymousID == "" {
		anonymousID = uuid.NewString()
	}

	participant := &entities.ParticipantSession{
		ID:                   uuid.New(),
		SessionID:            session.ID,
		UserID:               input.UserID,
		AnonymousID:          anonymousID,
		ParticipantEmail:     input.Email,
		ParticipantName:      input.Name,
		JoinedAt:             now,
		LastActiveAt:         now,
		CurrentQuestionIndex: 0,
		Responses:            []entities.Response{},
		ClarifiedIndices:     []int{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// An empty script is finished the moment it starts
	if session.TotalQuestions() == 0 {
		participant.Complete(now)
	}

	admitted, err := s.sessionRepo.AdmitParticipant(ctx, session.ID, func(locked *entities.InterviewSession) error {
		return CheckJoinable(locked, now)
	}, participant, now)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, usecaseErrors.ErrSessionNotFound
		case errors.Is(err, usecaseErrors.ErrSessionExpired):
			// Persist the transition the locked check observed
			if expErr := s.expireIfDue(ctx, session); expErr != nil {
				s.logger.Warn("failed to persist session expiry", zap.Error(expErr))
			}
			return nil, err
		case errors.Is(err, usecaseErrors.ErrSessionCompleted), errors.Is(err, usecaseErrors.ErrSessionFull):
			return nil, err
		}
		return nil, fmt.Errorf("failed to join session: %w", err)
	}

	s.logger.Info("participant joined interview",
		zap.String("session_id", admitted.ID.String()),
		zap.String("participant_session_id", participant.ID.String()),
		zap.Int("current_participants", admitted.CurrentParticipants),
		zap.Int("max_participants", admitted.MaxParticipants),
	)

	result := &JoinResult{
		Session:        admitted,
		Bot:            bot,
		Participant:    participant,
		TotalQuestions: admitted.TotalQuestions(),
		Completed:      participant.Completed,
	}
	if q, ok := admitted.QuestionAt(0); ok {
		result.Question = &q
	}

	if participant.Completed {
		s.publishCompletion(ctx, admitted, participant, now)
	}

	return result, nil
}

// GetProgress reports a participant's position in the script
func (s *InterviewService) GetProgress(ctx context.Context, participantSessionID uuid.UUID) (*Progress, error) {
	participant, err := s.findParticipant(ctx, participantSessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.findSession(ctx, participant.SessionID)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		ParticipantSessionID: participant.ID,
		SessionID:            session.ID,
		CurrentQuestionIndex: participant.CurrentQuestionIndex,
		TotalQuestions:       session.TotalQuestions(),
		Answered:             participant.AnsweredCount(),
		Progress:             participant.Progress(session.TotalQuestions()),
		Completed:            participant.Completed,
	}
	if !participant.Completed {
		if q, ok := session.QuestionAt(participant.CurrentQuestionIndex); ok {
			progress.Question = &q
		}
	}

	return progress, nil
}

func (s *InterviewService) publishCompletion(ctx context.Context, session *entities.InterviewSession, participant *entities.ParticipantSession, now time.Time) {
	participantID := participant.ID
	s.publish(ctx, entities.InterviewEvent{
		SessionID:     session.ID,
		BotID:         session.BotID,
		ParticipantID: &participantID,
		Type:          entities.InterviewEventComplete,
		Payload: map[string]interface{}{
			"total_responses": len(participant.Responses),
			"session_status":  session.Status,
			"completed_at":    now,
		},
		Timestamp: now,
	})
}

package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

// InterviewService handles session lifecycle, participant tracking and adaptive responses
type InterviewService struct {
	botRepo         repositories.BotRepository
	sessionRepo     repositories.InterviewSessionRepository
	participantRepo repositories.ParticipantSessionRepository
	tokens          TokenGenerator
	analyzer        AnswerAnalyzer
	publisher       EventPublisher
	clock           clock.Clock
	policy          Policy
	rules           []Rule
	logger          *zap.Logger
}

// NewInterviewService creates a new interview service.
// analyzer and publisher may be nil.
func NewInterviewService(
	botRepo repositories.BotRepository,
	sessionRepo repositories.InterviewSessionRepository,
	participantRepo repositories.ParticipantSessionRepository,
	tokens TokenGenerator,
	analyzer AnswerAnalyzer,
	publisher EventPublisher,
	clk clock.Clock,
	policy Policy,
	logger *zap.Logger,
) *InterviewService {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewService{
		botRepo:         botRepo,
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		tokens:          tokens,
		analyzer:        analyzer,
		publisher:       publisher,
		clock:           clk,
		policy:          policy,
		rules:           DefaultRules,
		logger:          logger,
	}
}

func (s *InterviewService) findSession(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (s *InterviewService) findBot(ctx context.Context, id uuid.UUID) (*entities.Bot, error) {
	bot, err := s.botRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	return bot, nil
}

func (s *InterviewService) findParticipant(ctx context.Context, id uuid.UUID) (*entities.ParticipantSession, error) {
	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant session: %w", err)
	}
	return participant, nil
}

// publish delivers an event; failures are logged and swallowed
func (s *InterviewService) publish(ctx context.Context, event entities.InterviewEvent) {
	if s.publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish interview event",
			zap.String("routing_key", event.RoutingKey()),
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err),
		)
	}
}

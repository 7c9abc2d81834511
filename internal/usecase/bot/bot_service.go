package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
)

// BotService handles bot definition business logic
type BotService struct {
	botRepo     repositories.BotRepository
	sessionRepo repositories.InterviewSessionRepository
	clock       clock.Clock
	logger      *zap.Logger
}

// NewBotService creates a new bot service
func NewBotService(
	botRepo repositories.BotRepository,
	sessionRepo repositories.InterviewSessionRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *BotService {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotService{
		botRepo:     botRepo,
		sessionRepo: sessionRepo,
		clock:       clk,
		logger:      logger,
	}
}

// CreateBot validates and stores a new bot definition
func (s *BotService) CreateBot(ctx context.Context, input CreateBotInput) (*entities.Bot, error) {
	input.Personality = withPersonalityDefaults(input.Personality)
	input.InterviewStyle = withStyleDefaults(input.InterviewStyle)

	if err := validate(input); err != nil {
		return nil, err
	}

	groups := make([]entities.QuestionGroup, 0, len(input.ResearchQuestions))
	for _, g := range input.ResearchQuestions {
		questions := make([]string, 0, len(g.Questions))
		for _, q := range g.Questions {
			questions = append(questions, strings.TrimSpace(q))
		}
		groups = append(groups, entities.QuestionGroup{
			Category:           strings.TrimSpace(g.Category),
			Questions:          questions,
			Priority:           g.Priority,
			AdaptiveConditions: append([]string(nil), g.AdaptiveConditions...),
		})
	}

	now := s.clock.Now()
	bot := &entities.Bot{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		Personality:       datatypes.NewJSONType(input.Personality),
		InterviewStyle:    datatypes.NewJSONType(input.InterviewStyle),
		ResearchQuestions: groups,
		AdaptiveBehavior:  datatypes.NewJSONType(input.AdaptiveBehavior),
		IsActive:          true,
		CreatedBy:         input.OwnerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.botRepo.Create(ctx, bot); err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	s.logger.Info("interview bot created",
		zap.String("bot_id", bot.ID.String()),
		zap.Int("question_groups", len(groups)),
	)

	return bot, nil
}

// GetBot retrieves a bot owned by the user
func (s *BotService) GetBot(ctx context.Context, ownerID, botID uuid.UUID) (*entities.Bot, error) {
	bot, err := s.botRepo.FindByID(ctx, botID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}

	// Do not reveal bots owned by someone else
	if !bot.IsOwnedBy(ownerID) {
		return nil, usecaseErrors.ErrBotNotFound
	}
	return bot, nil
}

// ListBots retrieves the user's active bots with their session counts
func (s *BotService) ListBots(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*BotSummary, error) {
	bots, err := s.botRepo.FindByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}

	summaries := make([]*BotSummary, 0, len(bots))
	for _, b := range bots {
		count, err := s.sessionRepo.CountByBotID(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count sessions: %w", err)
		}
		summaries = append(summaries, &BotSummary{Bot: b, SessionCount: count})
	}
	return summaries, nil
}

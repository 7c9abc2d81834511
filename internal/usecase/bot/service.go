package bot

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Service defines the interface for the interview bot use case
type Service interface {
	// CreateBot validates and stores a new bot definition
	CreateBot(ctx context.Context, input CreateBotInput) (*entities.Bot, error)

	// GetBot retrieves a bot owned by the user
	GetBot(ctx context.Context, ownerID, botID uuid.UUID) (*entities.Bot, error)

	// ListBots retrieves the user's active bots, newest first
	ListBots(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*BotSummary, error)
}

var _ Service = (*BotService)(nil)

// CreateBotInput represents input for creating a bot
type CreateBotInput struct {
	OwnerID           uuid.UUID
	Name              string
	Description       *string
	Personality       entities.Personality
	InterviewStyle    entities.InterviewStyle
	ResearchQuestions []entities.QuestionGroup
	AdaptiveBehavior  entities.AdaptiveBehavior
}

// BotSummary pairs a bot with how many sessions use it
type BotSummary struct {
	Bot          *entities.Bot
	SessionCount int64
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// BotRepository defines the interface for interview bot data access
type BotRepository interface {
	// Create creates a new bot
	Create(ctx context.Context, bot *entities.Bot) error

	// FindByID retrieves a bot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Bot, error)

	// FindByOwner retrieves active bots created by a user, newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Bot, error)
}

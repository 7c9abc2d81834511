package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
)

// botRepository implements the BotRepository interface
type botRepository struct {
	db *gorm.DB
}

// NewBotRepository creates a new bot repository
func NewBotRepository(db *gorm.DB) repositories.BotRepository {
	return &botRepository{db: db}
}

// Create creates a new bot
func (r *botRepository) Create(ctx context.Context, bot *entities.Bot) error {
	return r.db.WithContext(ctx).Create(bot).Error
}

// FindByID retrieves a bot by its ID
func (r *botRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Bot, error) {
	var bot entities.Bot
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bot).Error

	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// FindByOwner retrieves active bots created by a user, newest first
func (r *botRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Bot, error) {
	var bots []*entities.Bot
	query := r.db.WithContext(ctx).
		Where("created_by = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&bots).Error; err != nil {
		return nil, err
	}
	return bots, nil
}

package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error)
	GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error)
	GetActiveByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

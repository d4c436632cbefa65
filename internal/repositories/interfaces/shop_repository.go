package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
	GetByUsername(ctx context.Context, username string) (*models.Shop, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Shop, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
}

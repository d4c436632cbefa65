package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Store, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error
}

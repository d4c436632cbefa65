package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.MenuItem, error)
	GetByStore(ctx context.Context, storeID primitive.ObjectID) ([]*models.MenuItem, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error
	DeleteByStore(ctx context.Context, storeID primitive.ObjectID) error
	IsCodeTaken(ctx context.Context, shopID primitive.ObjectID, code string, excludeID *primitive.ObjectID) (bool, error)
}

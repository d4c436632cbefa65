package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, menuItemID primitive.ObjectID) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error)
	Exists(ctx context.Context, userID, menuItemID primitive.ObjectID) (bool, error)
}

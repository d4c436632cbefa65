package interfaces

import (
	"context"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VisitRepository interface {
	// Upsert records a visit, replacing any earlier visit to the same shop.
	Upsert(ctx context.Context, visit *models.Visit) error
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Visit, error)
}

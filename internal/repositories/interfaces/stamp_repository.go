package interfaces

import (
	"context"
	"time"

	"menustamp/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StampRepository interface {
	Create(ctx context.Context, stamp *models.Stamp) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Stamp, error)
	GetByCustomer(ctx context.Context, email string) ([]*models.Stamp, error)

	// GetActiveForReward returns the customer's unexpired active stamps for
	// one shop+reward pair.
	GetActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error)
	CountActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) (int64, error)

	// GetTransferable returns unexpired, active, non-transferred stamps
	// sorted by expiry ascending, so callers take the nearest-expiry ones.
	GetTransferable(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error)

	CountActiveByReward(ctx context.Context, rewardID primitive.ObjectID) (int64, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
	UpdateStatus(ctx context.Context, ids []primitive.ObjectID, status models.StampStatus) error
}

package interfaces

import (
	"context"

	"menustamp/internal/models"
	"menustamp/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error)
	GetByShop(ctx context.Context, shopID primitive.ObjectID, status models.ClaimStatus, params *utils.PaginationParams) ([]*models.Claim, int64, error)
	GetByCustomer(ctx context.Context, email string) ([]*models.Claim, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error
}

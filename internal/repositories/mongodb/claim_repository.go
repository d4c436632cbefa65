package mongodb

import (
	"context"
	"fmt"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type claimRepository struct {
	collection *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) interfaces.ClaimRepository {
	return &claimRepository{
		collection: db.Collection("claims"),
	}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	claim.ID = primitive.NewObjectID()
	claim.CustomerEmail = utils.NormalizeEmail(claim.CustomerEmail)
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, claim)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

func (r *claimRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	var claim models.Claim
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("claim not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return &claim, nil
}

func (r *claimRepository) GetByShop(ctx context.Context, shopID primitive.ObjectID, status models.ClaimStatus, params *utils.PaginationParams) ([]*models.Claim, int64, error) {
	filter := bson.M{"shop_id": shopID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, 0, fmt.Errorf("failed to decode claims: %w", err)
	}

	return claims, total, nil
}

func (r *claimRepository) GetByCustomer(ctx context.Context, email string) ([]*models.Claim, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_email": utils.NormalizeEmail(email)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	return claims, nil
}

func (r *claimRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error {
	now := time.Now()
	updates := bson.M{"status": status, "updated_at": now}

	switch status {
	case models.ClaimStatusApproved, models.ClaimStatusRejected:
		updates["processed_at"] = now
	case models.ClaimStatusCompleted:
		updates["completed_at"] = now
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}

	return nil
}

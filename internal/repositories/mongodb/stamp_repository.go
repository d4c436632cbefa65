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

type stampRepository struct {
	collection *mongo.Collection
}

func NewStampRepository(db *mongo.Database) interfaces.StampRepository {
	return &stampRepository{
		collection: db.Collection("stamps"),
	}
}

func (r *stampRepository) Create(ctx context.Context, stamp *models.Stamp) error {
	stamp.ID = primitive.NewObjectID()
	stamp.CustomerEmail = utils.NormalizeEmail(stamp.CustomerEmail)
	stamp.CreatedAt = time.Now()
	stamp.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, stamp)
	if err != nil {
		return fmt.Errorf("failed to create stamp: %w", err)
	}

	return nil
}

func (r *stampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Stamp, error) {
	var stamp models.Stamp
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stamp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("stamp not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get stamp: %w", err)
	}

	return &stamp, nil
}

func (r *stampRepository) GetByCustomer(ctx context.Context, email string) ([]*models.Stamp, error) {
	filter := bson.M{"customer_email": utils.NormalizeEmail(email)}
	opts := options.Find().SetSort(bson.D{{Key: "issued_at", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *stampRepository) GetActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error) {
	filter := activeRewardFilter(email, shopID, rewardID, now)
	opts := options.Find().SetSort(bson.D{{Key: "expires_at", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *stampRepository) CountActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, activeRewardFilter(email, shopID, rewardID, now))
	if err != nil {
		return 0, fmt.Errorf("failed to count stamps: %w", err)
	}

	return count, nil
}

func (r *stampRepository) GetTransferable(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error) {
	filter := activeRewardFilter(email, shopID, rewardID, now)
	filter["is_transferred"] = false

	// Ascending expiry: the caller consumes the stamps closest to expiring.
	opts := options.Find().SetSort(bson.D{{Key: "expires_at", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *stampRepository) CountActiveByReward(ctx context.Context, rewardID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"reward_id": rewardID,
		"status":    models.StampStatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count stamps by reward: %w", err)
	}

	return count, nil
}

func (r *stampRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete stamps: %w", err)
	}
	if result.DeletedCount != int64(len(ids)) {
		return fmt.Errorf("expected to delete %d stamps, deleted %d", len(ids), result.DeletedCount)
	}

	return nil
}

func (r *stampRepository) UpdateStatus(ctx context.Context, ids []primitive.ObjectID, status models.StampStatus) error {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update stamp status: %w", err)
	}

	return nil
}

func (r *stampRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Stamp, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get stamps: %w", err)
	}
	defer cursor.Close(ctx)

	var stamps []*models.Stamp
	if err := cursor.All(ctx, &stamps); err != nil {
		return nil, fmt.Errorf("failed to decode stamps: %w", err)
	}

	return stamps, nil
}

func activeRewardFilter(email string, shopID, rewardID primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"customer_email": utils.NormalizeEmail(email),
		"shop_id":        shopID,
		"reward_id":      rewardID,
		"status":         models.StampStatusActive,
		"expires_at":     bson.M{"$gt": now},
	}
}

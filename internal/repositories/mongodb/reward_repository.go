package mongodb

import (
	"context"
	"fmt"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rewardRepository struct {
	collection *mongo.Collection
}

func NewRewardRepository(db *mongo.Database) interfaces.RewardRepository {
	return &rewardRepository{
		collection: db.Collection("rewards"),
	}
}

func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	reward.ID = primitive.NewObjectID()
	reward.CreatedAt = time.Now()
	reward.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, reward)
	if err != nil {
		return fmt.Errorf("failed to create reward: %w", err)
	}

	return nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	var reward models.Reward
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reward)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reward not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	return &reward, nil
}

func (r *rewardRepository) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error) {
	return r.find(ctx, bson.M{"shop_id": shopID})
}

func (r *rewardRepository) GetActiveByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error) {
	return r.find(ctx, bson.M{"shop_id": shopID, "is_active": true})
}

func (r *rewardRepository) find(ctx context.Context, filter bson.M) ([]*models.Reward, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards: %w", err)
	}
	defer cursor.Close(ctx)

	var rewards []*models.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, fmt.Errorf("failed to decode rewards: %w", err)
	}

	return rewards, nil
}

func (r *rewardRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}

	return nil
}

func (r *rewardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}

	return nil
}

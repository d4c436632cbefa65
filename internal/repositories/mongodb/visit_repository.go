package mongodb

import (
	"context"
	"fmt"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type visitRepository struct {
	collection *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) interfaces.VisitRepository {
	return &visitRepository{
		collection: db.Collection("userVisits"),
	}
}

func (r *visitRepository) Upsert(ctx context.Context, visit *models.Visit) error {
	filter := bson.M{"user_id": visit.UserID, "shop_id": visit.ShopID}
	update := bson.M{
		"$set": bson.M{
			"shop_name":     visit.ShopName,
			"shop_username": visit.ShopUsername,
			"shop_logo_url": visit.ShopLogoURL,
			"visited_at":    visit.VisitedAt,
		},
		"$setOnInsert": bson.M{
			"user_id": visit.UserID,
			"shop_id": visit.ShopID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert visit: %w", err)
	}

	return nil
}

func (r *visitRepository) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Visit, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "visited_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}
	defer cursor.Close(ctx)

	var visits []*models.Visit
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode visits: %w", err)
	}

	return visits, nil
}

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

type storeRepository struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) interfaces.StoreRepository {
	return &storeRepository{
		collection: db.Collection("stores"),
	}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("store not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return &store, nil
}

func (r *storeRepository) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Store, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []*models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}

func (r *storeRepository) DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"shop_id": shopID})
	if err != nil {
		return fmt.Errorf("failed to delete stores: %w", err)
	}

	return nil
}

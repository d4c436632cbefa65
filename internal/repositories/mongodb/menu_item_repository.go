package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type menuItemRepository struct {
	collection *mongo.Collection
}

func NewMenuItemRepository(db *mongo.Database) interfaces.MenuItemRepository {
	return &menuItemRepository{
		collection: db.Collection("menuItems"),
	}
}

func (r *menuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	item.ID = primitive.NewObjectID()
	item.Code = strings.ToUpper(strings.TrimSpace(item.Code))
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

func (r *menuItemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu item not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

func (r *menuItemRepository) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.MenuItem, error) {
	return r.find(ctx, bson.M{"shop_id": shopID})
}

func (r *menuItemRepository) GetByStore(ctx context.Context, storeID primitive.ObjectID) ([]*models.MenuItem, error) {
	return r.find(ctx, bson.M{"store_id": storeID})
}

func (r *menuItemRepository) find(ctx context.Context, filter bson.M) ([]*models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "sort_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *menuItemRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if code, exists := updates["code"]; exists {
		if codeStr, ok := code.(string); ok {
			updates["code"] = strings.ToUpper(strings.TrimSpace(codeStr))
		}
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	return nil
}

func (r *menuItemRepository) DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"shop_id": shopID})
	if err != nil {
		return fmt.Errorf("failed to delete menu items: %w", err)
	}

	return nil
}

func (r *menuItemRepository) DeleteByStore(ctx context.Context, storeID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"store_id": storeID})
	if err != nil {
		return fmt.Errorf("failed to delete store menu items: %w", err)
	}

	return nil
}

func (r *menuItemRepository) IsCodeTaken(ctx context.Context, shopID primitive.ObjectID, code string, excludeID *primitive.ObjectID) (bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false, nil
	}

	filter := bson.M{"shop_id": shopID, "code": code}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check item code: %w", err)
	}

	return count > 0, nil
}

package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type shopRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewShopRepository(db *mongo.Database, cache CacheService) interfaces.ShopRepository {
	return &shopRepository{
		collection: db.Collection("shops"),
		cache:      cache,
	}
}

func (r *shopRepository) Create(ctx context.Context, shop *models.Shop) error {
	shop.ID = primitive.NewObjectID()
	shop.Username = strings.ToLower(shop.Username)
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	r.cacheShop(ctx, shop)

	return nil
}

func (r *shopRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("shop not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return &shop, nil
}

// GetByUsername backs the public menu page, the hottest read path, so it is
// cached.
func (r *shopRepository) GetByUsername(ctx context.Context, username string) (*models.Shop, error) {
	username = strings.ToLower(username)

	cacheKey := shopUsernameCacheKey(username)
	if r.cache != nil {
		var shop models.Shop
		if err := r.cache.Get(ctx, cacheKey, &shop); err == nil {
			return &shop, nil
		}
	}

	var shop models.Shop
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&shop)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("shop not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get shop by username: %w", err)
	}

	if r.cache != nil && shop.IsActive {
		r.cache.Set(ctx, cacheKey, shop, utils.ShopCacheTTL)
	}

	return &shop, nil
}

func (r *shopRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Shop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get shops by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []*models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}

	return shops, nil
}

func (r *shopRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if username, exists := updates["username"]; exists {
		if usernameStr, ok := username.(string); ok {
			updates["username"] = strings.ToLower(usernameStr)
		}
	}

	shop, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}

	r.invalidateShopCache(ctx, shop.Username)

	return nil
}

func (r *shopRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	shop, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	r.invalidateShopCache(ctx, shop.Username)

	return nil
}

func (r *shopRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"username": strings.ToLower(username)})
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return count > 0, nil
}

func (r *shopRepository) cacheShop(ctx context.Context, shop *models.Shop) {
	if r.cache == nil || !shop.IsActive {
		return
	}
	r.cache.Set(ctx, shopUsernameCacheKey(shop.Username), shop, utils.ShopCacheTTL)
}

func (r *shopRepository) invalidateShopCache(ctx context.Context, username string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, shopUsernameCacheKey(username))
}

func shopUsernameCacheKey(username string) string {
	return fmt.Sprintf("shop_username_%s", username)
}

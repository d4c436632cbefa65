package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"
	"menustamp/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StoreService interface {
	CreateStore(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateStoreRequest) (*models.Store, error)
	GetStores(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.Store, error)
	UpdateStore(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID, req *models.UpdateStoreRequest) (*models.Store, error)
	DeleteStore(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID) error
	UploadImage(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID, file multipart.File, filename string) (*models.Store, error)
}

type storeService struct {
	shopRepo  interfaces.ShopRepository
	storeRepo interfaces.StoreRepository
	menuRepo  interfaces.MenuItemRepository
	storage   storage.Provider
	cache     CacheService
	logger    *logger.Logger
}

func NewStoreService(
	shopRepo interfaces.ShopRepository,
	storeRepo interfaces.StoreRepository,
	menuRepo interfaces.MenuItemRepository,
	storageProvider storage.Provider,
	cacheService CacheService,
	log *logger.Logger,
) StoreService {
	return &storeService{
		shopRepo:  shopRepo,
		storeRepo: storeRepo,
		menuRepo:  menuRepo,
		storage:   storageProvider,
		cache:     cacheService,
		logger:    log,
	}
}

func (s *storeService) CreateStore(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateStoreRequest) (*models.Store, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}
	if shop.Type != models.ShopTypeFoodCourt {
		return nil, ErrNotFoodCourt
	}

	existing, err := s.storeRepo.GetByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= utils.MaxStoresPerShop {
		return nil, ErrStoreLimit
	}

	store := &models.Store{
		ShopID:      shopID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.Username)

	return store, nil
}

func (s *storeService) GetStores(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.Store, error) {
	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID); err != nil {
		return nil, err
	}

	return s.storeRepo.GetByShop(ctx, shopID)
}

func (s *storeService) UpdateStore(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID, req *models.UpdateStoreRequest) (*models.Store, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	store, err := s.getShopStore(ctx, shopID, storeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.storeRepo.Update(ctx, store.ID, updates); err != nil {
			return nil, err
		}
		s.invalidate(ctx, shop.Username)
	}

	return s.storeRepo.GetByID(ctx, storeID)
}

// DeleteStore removes the store together with its menu items and image.
func (s *storeService) DeleteStore(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID) error {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return err
	}

	store, err := s.getShopStore(ctx, shopID, storeID)
	if err != nil {
		return err
	}

	if err := s.menuRepo.DeleteByStore(ctx, storeID); err != nil {
		return err
	}
	if store.ImageKey != "" {
		if err := s.storage.Delete(ctx, store.ImageKey); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete store image")
		}
	}
	if err := s.storeRepo.Delete(ctx, storeID); err != nil {
		return err
	}

	s.invalidate(ctx, shop.Username)

	return nil
}

func (s *storeService) UploadImage(ctx context.Context, ownerID, shopID, storeID primitive.ObjectID, file multipart.File, filename string) (*models.Store, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	store, err := s.getShopStore(ctx, shopID, storeID)
	if err != nil {
		return nil, err
	}
	if !utils.IsImageFile(filename) {
		return nil, ErrUnsupportedImage
	}

	data, contentType, err := utils.ProcessImageUpload(file, filename, utils.MaxImageWidth, utils.MaxImageHeight)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	key := utils.StoreImageKey(shopID.Hex(), utils.GenerateUniqueFilename(filename))
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, err
	}

	if store.ImageKey != "" {
		if err := s.storage.Delete(ctx, store.ImageKey); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete old store image")
		}
	}

	updates := map[string]interface{}{
		"image_url": uploaded.URL,
		"image_key": uploaded.Key,
	}
	if err := s.storeRepo.Update(ctx, storeID, updates); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.Username)

	return s.storeRepo.GetByID(ctx, storeID)
}

func (s *storeService) getShopStore(ctx context.Context, shopID, storeID primitive.ObjectID) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if store.ShopID != shopID {
		return nil, ErrStoreNotFound
	}

	return store, nil
}

func (s *storeService) invalidate(ctx context.Context, username string) {
	if err := s.cache.Delete(ctx, PublicMenuCacheKey(username)); err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("failed to invalidate public menu cache")
	}
}

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

type MenuService interface {
	CreateItem(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateMenuItemRequest) (*models.MenuItem, error)
	GetItems(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.MenuItem, error)
	UpdateItem(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID) error
	UploadItemImage(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID, file multipart.File, filename string) (*models.MenuItem, error)
}

type menuService struct {
	shopRepo  interfaces.ShopRepository
	storeRepo interfaces.StoreRepository
	menuRepo  interfaces.MenuItemRepository
	storage   storage.Provider
	cache     CacheService
	logger    *logger.Logger
}

func NewMenuService(
	shopRepo interfaces.ShopRepository,
	storeRepo interfaces.StoreRepository,
	menuRepo interfaces.MenuItemRepository,
	storageProvider storage.Provider,
	cacheService CacheService,
	log *logger.Logger,
) MenuService {
	return &menuService{
		shopRepo:  shopRepo,
		storeRepo: storeRepo,
		menuRepo:  menuRepo,
		storage:   storageProvider,
		cache:     cacheService,
		logger:    log,
	}
}

func (s *menuService) CreateItem(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	// Food-court items belong to a store; the store must be part of this
	// shop.
	if req.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *req.StoreID)
		if err != nil || store.ShopID != shopID {
			return nil, ErrStoreNotFound
		}
	} else if shop.Type == models.ShopTypeFoodCourt {
		return nil, ErrStoreNotFound
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code != "" {
		taken, err := s.menuRepo.IsCodeTaken(ctx, shopID, code, nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrItemCodeTaken
		}
	}

	item := &models.MenuItem{
		ShopID:      shopID,
		StoreID:     req.StoreID,
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		SortOrder:   req.SortOrder,
		IsAvailable: true,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.Username)

	return item, nil
}

func (s *menuService) GetItems(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.MenuItem, error) {
	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID); err != nil {
		return nil, err
	}

	return s.menuRepo.GetByShop(ctx, shopID)
}

func (s *menuService) UpdateItem(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	item, err := s.getShopItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code != item.Code && code != "" {
			taken, err := s.menuRepo.IsCodeTaken(ctx, shopID, code, &itemID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrItemCodeTaken
			}
		}
		updates["code"] = code
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := s.menuRepo.Update(ctx, itemID, updates); err != nil {
			return nil, err
		}
		s.invalidate(ctx, shop.Username)
	}

	return s.menuRepo.GetByID(ctx, itemID)
}

func (s *menuService) DeleteItem(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID) error {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return err
	}

	item, err := s.getShopItem(ctx, shopID, itemID)
	if err != nil {
		return err
	}

	if item.ImageKey != "" {
		if err := s.storage.Delete(ctx, item.ImageKey); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete item image")
		}
	}
	if err := s.menuRepo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.invalidate(ctx, shop.Username)

	return nil
}

func (s *menuService) UploadItemImage(ctx context.Context, ownerID, shopID, itemID primitive.ObjectID, file multipart.File, filename string) (*models.MenuItem, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	item, err := s.getShopItem(ctx, shopID, itemID)
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

	key := utils.MenuItemImageKey(shopID.Hex(), utils.GenerateUniqueFilename(filename))
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, err
	}

	if item.ImageKey != "" {
		if err := s.storage.Delete(ctx, item.ImageKey); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete old item image")
		}
	}

	updates := map[string]interface{}{
		"image_url": uploaded.URL,
		"image_key": uploaded.Key,
	}
	if err := s.menuRepo.Update(ctx, itemID, updates); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.Username)

	return s.menuRepo.GetByID(ctx, itemID)
}

func (s *menuService) getShopItem(ctx context.Context, shopID, itemID primitive.ObjectID) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if item.ShopID != shopID {
		return nil, ErrMenuItemNotFound
	}

	return item, nil
}

func (s *menuService) invalidate(ctx context.Context, username string) {
	if err := s.cache.Delete(ctx, PublicMenuCacheKey(username)); err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("failed to invalidate public menu cache")
	}
}

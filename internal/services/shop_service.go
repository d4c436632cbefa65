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

type ShopService interface {
	CreateShop(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateShopRequest) (*models.Shop, error)
	GetShop(ctx context.Context, ownerID, shopID primitive.ObjectID) (*models.Shop, error)
	GetMyShops(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Shop, error)
	UpdateShop(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.UpdateShopRequest) (*models.Shop, error)
	DeleteShop(ctx context.Context, ownerID, shopID primitive.ObjectID) error
	UploadLogo(ctx context.Context, ownerID, shopID primitive.ObjectID, file multipart.File, filename string) (*models.Shop, error)
	GetPublicMenu(ctx context.Context, username string) (*models.PublicMenu, error)
}

type shopService struct {
	shopRepo   interfaces.ShopRepository
	storeRepo  interfaces.StoreRepository
	menuRepo   interfaces.MenuItemRepository
	rewardRepo interfaces.RewardRepository
	storage    storage.Provider
	cache      CacheService
	logger     *logger.Logger
}

func NewShopService(
	shopRepo interfaces.ShopRepository,
	storeRepo interfaces.StoreRepository,
	menuRepo interfaces.MenuItemRepository,
	rewardRepo interfaces.RewardRepository,
	storageProvider storage.Provider,
	cacheService CacheService,
	log *logger.Logger,
) ShopService {
	return &shopService{
		shopRepo:   shopRepo,
		storeRepo:  storeRepo,
		menuRepo:   menuRepo,
		rewardRepo: rewardRepo,
		storage:    storageProvider,
		cache:      cacheService,
		logger:     log,
	}
}

// requireShopOwner loads a shop and verifies the caller owns it. Every
// owner-facing operation in the service layer goes through this gate.
func requireShopOwner(ctx context.Context, repo interfaces.ShopRepository, ownerID, shopID primitive.ObjectID) (*models.Shop, error) {
	shop, err := repo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.OwnerID != ownerID {
		return nil, ErrNotShopOwner
	}

	return shop, nil
}

func (s *shopService) CreateShop(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateShopRequest) (*models.Shop, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !utils.IsValidShopUsername(username) {
		return nil, ErrUsernameTaken
	}

	taken, err := s.shopRepo.IsUsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	shop := &models.Shop{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(req.Name),
		Username:   username,
		Currency:   strings.ToUpper(req.Currency),
		Categories: req.Categories,
		Template:   req.Template,
		Type:       req.Type,
		IsActive:   true,
	}
	if shop.Template == "" {
		shop.Template = models.ShopTemplateClassic
	}
	if shop.Type == "" {
		shop.Type = models.ShopTypeStandard
	}
	if shop.Categories == nil {
		shop.Categories = []string{}
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.LogShopAction(shop.ID, "shop_created", map[string]interface{}{
		"username": shop.Username,
		"type":     shop.Type,
	})

	return shop, nil
}

func (s *shopService) GetShop(ctx context.Context, ownerID, shopID primitive.ObjectID) (*models.Shop, error) {
	return requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
}

func (s *shopService) GetMyShops(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Shop, error) {
	return s.shopRepo.GetByOwner(ctx, ownerID)
}

func (s *shopService) UpdateShop(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.UpdateShopRequest) (*models.Shop, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username != shop.Username {
			taken, err := s.shopRepo.IsUsernameTaken(ctx, username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrUsernameTaken
			}
			updates["username"] = username
		}
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.Template != nil {
		updates["template"] = *req.Template
	}
	if req.Categories != nil {
		updates["categories"] = *req.Categories
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.shopRepo.Update(ctx, shopID, updates); err != nil {
			return nil, err
		}
		s.invalidatePublicMenu(ctx, shop.Username)
	}

	return s.shopRepo.GetByID(ctx, shopID)
}

// DeleteShop removes the shop and everything hanging off it: stores, menu
// items, uploaded images and the cached public menu. Stamps and claims are
// kept as historical records.
func (s *shopService) DeleteShop(ctx context.Context, ownerID, shopID primitive.ObjectID) error {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return err
	}

	if err := s.menuRepo.DeleteByShop(ctx, shopID); err != nil {
		return err
	}
	if err := s.storeRepo.DeleteByShop(ctx, shopID); err != nil {
		return err
	}

	for _, prefix := range []string{
		utils.ShopLogoKey(shopID.Hex(), ""),
		utils.StoreImageKey(shopID.Hex(), ""),
		utils.MenuItemImageKey(shopID.Hex(), ""),
	} {
		if err := s.storage.DeletePrefix(ctx, prefix); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete shop objects")
		}
	}

	if err := s.shopRepo.Delete(ctx, shopID); err != nil {
		return err
	}

	s.invalidatePublicMenu(ctx, shop.Username)
	s.logger.LogShopAction(shopID, "shop_deleted", map[string]interface{}{"username": shop.Username})

	return nil
}

func (s *shopService) UploadLogo(ctx context.Context, ownerID, shopID primitive.ObjectID, file multipart.File, filename string) (*models.Shop, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
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

	key := utils.ShopLogoKey(shopID.Hex(), utils.GenerateUniqueFilename(filename))
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, err
	}

	if shop.LogoKey != "" {
		if err := s.storage.Delete(ctx, shop.LogoKey); err != nil {
			s.logger.WithError(err).WithShopID(shopID).Warn("failed to delete old logo")
		}
	}

	updates := map[string]interface{}{
		"logo_url": uploaded.URL,
		"logo_key": uploaded.Key,
	}
	if err := s.shopRepo.Update(ctx, shopID, updates); err != nil {
		return nil, err
	}

	s.invalidatePublicMenu(ctx, shop.Username)

	return s.shopRepo.GetByID(ctx, shopID)
}

// GetPublicMenu assembles the customer-facing menu page for a shop handle.
// Unavailable items and inactive stores are filtered out before caching.
func (s *shopService) GetPublicMenu(ctx context.Context, username string) (*models.PublicMenu, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var cached models.PublicMenu
	if err := s.cache.Get(ctx, PublicMenuCacheKey(username), &cached); err == nil && cached.Shop != nil {
		return &cached, nil
	}

	shop, err := s.shopRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if !shop.IsActive {
		return nil, ErrShopNotFound
	}

	menu := &models.PublicMenu{Shop: shop, Items: []*models.MenuItem{}, Rewards: []*models.Reward{}}

	if shop.Type == models.ShopTypeFoodCourt {
		stores, err := s.storeRepo.GetByShop(ctx, shop.ID)
		if err != nil {
			return nil, err
		}
		for _, store := range stores {
			if store.IsActive {
				menu.Stores = append(menu.Stores, store)
			}
		}
	}

	items, err := s.menuRepo.GetByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.IsAvailable {
			menu.Items = append(menu.Items, item)
		}
	}

	rewards, err := s.rewardRepo.GetActiveByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	menu.Rewards = rewards

	if err := s.cache.Set(ctx, PublicMenuCacheKey(username), menu, utils.PublicMenuCacheTTL); err != nil {
		s.logger.WithError(err).Warn("failed to cache public menu")
	}

	return menu, nil
}

func (s *shopService) invalidatePublicMenu(ctx context.Context, username string) {
	if err := s.cache.Delete(ctx, PublicMenuCacheKey(username)); err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("failed to invalidate public menu cache")
	}
}

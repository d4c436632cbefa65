package services

import (
	"context"
	"errors"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, menuItemID primitive.ObjectID) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, menuItemID primitive.ObjectID) error
	GetFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error)
}

type favoriteService struct {
	favoriteRepo interfaces.FavoriteRepository
	menuRepo     interfaces.MenuItemRepository
	shopRepo     interfaces.ShopRepository
	logger       *logger.Logger
}

func NewFavoriteService(
	favoriteRepo interfaces.FavoriteRepository,
	menuRepo interfaces.MenuItemRepository,
	shopRepo interfaces.ShopRepository,
	log *logger.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		menuRepo:     menuRepo,
		shopRepo:     shopRepo,
		logger:       log,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID, menuItemID primitive.ObjectID) (*models.Favorite, error) {
	item, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}

	shop, err := s.shopRepo.GetByID(ctx, item.ShopID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	favorite := &models.Favorite{
		UserID:       userID,
		ShopID:       shop.ID,
		MenuItemID:   item.ID,
		ShopName:     shop.Name,
		ShopUsername: shop.Username,
		ItemName:     item.Name,
		ItemPrice:    item.Price,
		Currency:     shop.Currency,
		ItemImageURL: item.ImageURL,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, menuItemID primitive.ObjectID) error {
	exists, err := s.favoriteRepo.Exists(ctx, userID, menuItemID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}

	return s.favoriteRepo.Delete(ctx, userID, menuItemID)
}

func (s *favoriteService) GetFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error) {
	return s.favoriteRepo.GetByUser(ctx, userID)
}

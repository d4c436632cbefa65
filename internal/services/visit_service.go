package services

import (
	"context"
	"errors"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VisitService interface {
	// RecordVisit upserts the user's visit to a shop so the app can show a
	// "recently visited" list. Only the latest visit per shop is kept.
	RecordVisit(ctx context.Context, userID, shopID primitive.ObjectID) error
	GetRecentShops(ctx context.Context, userID primitive.ObjectID) ([]*models.Visit, error)
}

type visitService struct {
	visitRepo interfaces.VisitRepository
	shopRepo  interfaces.ShopRepository
	logger    *logger.Logger
}

func NewVisitService(visitRepo interfaces.VisitRepository, shopRepo interfaces.ShopRepository, log *logger.Logger) VisitService {
	return &visitService{
		visitRepo: visitRepo,
		shopRepo:  shopRepo,
		logger:    log,
	}
}

func (s *visitService) RecordVisit(ctx context.Context, userID, shopID primitive.ObjectID) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrShopNotFound
		}
		return err
	}
	if !shop.IsActive {
		return ErrShopNotFound
	}

	return s.visitRepo.Upsert(ctx, &models.Visit{
		UserID:       userID,
		ShopID:       shop.ID,
		ShopName:     shop.Name,
		ShopUsername: shop.Username,
		ShopLogoURL:  shop.LogoURL,
		VisitedAt:    time.Now(),
	})
}

func (s *visitService) GetRecentShops(ctx context.Context, userID primitive.ObjectID) ([]*models.Visit, error) {
	return s.visitRepo.GetRecentByUser(ctx, userID, utils.RecentShopsLimit)
}

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

// Transactor runs a function inside a MongoDB transaction. Implemented by
// pkg/database.MongoDB; tests substitute a pass-through.
type Transactor interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier pushes loyalty events to shop dashboards. Implemented by
// pkg/websocket.Handler.
type Notifier interface {
	NotifyShop(shopID primitive.ObjectID, eventType string, data map[string]interface{})
}

type StampService interface {
	// IssueStamp handles a counter scan: the shop owner scans the
	// customer's QR code and a stamp is written to the customer's card.
	IssueStamp(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.ScanStampRequest) (*models.Stamp, error)

	// TransferStamps converts three of the caller's stamps into one stamp
	// on another customer's card for the same reward.
	TransferStamps(ctx context.Context, senderEmail string, req *models.TransferStampsRequest) (*models.Stamp, error)

	GetMyStamps(ctx context.Context, email string) ([]*models.Stamp, error)
	GetCardProgress(ctx context.Context, email string, shopID, rewardID primitive.ObjectID) (*CardProgress, error)
}

// CardProgress is the customer's standing against one reward card.
type CardProgress struct {
	RewardID       primitive.ObjectID `json:"reward_id"`
	StampsRequired int                `json:"stamps_required"`
	ActiveStamps   int                `json:"active_stamps"`
	Stamps         []*models.Stamp    `json:"stamps"`
}

type stampService struct {
	db         Transactor
	shopRepo   interfaces.ShopRepository
	rewardRepo interfaces.RewardRepository
	stampRepo  interfaces.StampRepository
	userRepo   interfaces.UserRepository
	cache      CacheService
	notifier   Notifier
	logger     *logger.Logger
	now        func() time.Time
}

func NewStampService(
	db Transactor,
	shopRepo interfaces.ShopRepository,
	rewardRepo interfaces.RewardRepository,
	stampRepo interfaces.StampRepository,
	userRepo interfaces.UserRepository,
	cacheService CacheService,
	notifier Notifier,
	log *logger.Logger,
) StampService {
	return &stampService{
		db:         db,
		shopRepo:   shopRepo,
		rewardRepo: rewardRepo,
		stampRepo:  stampRepo,
		userRepo:   userRepo,
		cache:      cacheService,
		notifier:   notifier,
		logger:     log,
		now:        time.Now,
	}
}

func (s *stampService) IssueStamp(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.ScanStampRequest) (*models.Stamp, error) {
	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID); err != nil {
		return nil, err
	}

	payload, err := utils.ParseQRPayload(req.QRPayload)
	if err != nil {
		return nil, err
	}

	// Stamps only go to registered customers.
	customer, err := s.userRepo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	reward, err := s.activeShopReward(ctx, shopID, req.RewardID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	count, err := s.stampRepo.CountActiveForReward(ctx, payload.Email, shopID, reward.ID, now)
	if err != nil {
		return nil, err
	}
	if count >= int64(reward.StampsRequired) {
		return nil, ErrCardFull
	}

	// First scan within the window wins; a second scan of the same card is
	// treated as an accidental double-tap.
	fresh, err := s.cache.SetNX(ctx, ScanGuardKey(shopID, reward.ID, payload.Email), now.Unix(), utils.DuplicateScanWindow)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, ErrDuplicateScan
	}

	stamp := &models.Stamp{
		Code:          utils.GenerateStampCode(payload.Email, now),
		CustomerEmail: payload.Email,
		ShopID:        shopID,
		RewardID:      reward.ID,
		Status:        models.StampStatusActive,
		SpendAmount:   req.SpendAmount,
		IssuedAt:      now,
		ExpiresAt:     reward.StampExpiry(now),
	}
	if err := s.stampRepo.Create(ctx, stamp); err != nil {
		return nil, err
	}

	s.logger.LogStampEvent(shopID, "stamp_issued", map[string]interface{}{
		"stamp_code": stamp.Code,
		"reward_id":  reward.ID.Hex(),
		"customer":   customer.Email,
	})
	s.notifier.NotifyShop(shopID, "stamp_issued", map[string]interface{}{
		"stamp_code":  stamp.Code,
		"reward_id":   reward.ID.Hex(),
		"reward_name": reward.Name,
		"customer":    customer.Email,
	})

	return stamp, nil
}

func (s *stampService) TransferStamps(ctx context.Context, senderEmail string, req *models.TransferStampsRequest) (*models.Stamp, error) {
	senderEmail = utils.NormalizeEmail(senderEmail)
	recipientEmail := utils.NormalizeEmail(req.RecipientEmail)
	if recipientEmail == senderEmail {
		return nil, ErrTransferToSelf
	}

	if _, err := s.userRepo.GetByEmail(ctx, recipientEmail); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	reward, err := s.activeShopReward(ctx, req.ShopID, req.RewardID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	// Transferred stamps are excluded at the query level, so a received
	// stamp can never be forwarded again.
	transferable, err := s.stampRepo.GetTransferable(ctx, senderEmail, req.ShopID, reward.ID, now)
	if err != nil {
		return nil, err
	}
	if len(transferable) < utils.TransferStampCount {
		return nil, ErrNotEnoughStamps
	}

	recipientCount, err := s.stampRepo.CountActiveForReward(ctx, recipientEmail, req.ShopID, reward.ID, now)
	if err != nil {
		return nil, err
	}
	if recipientCount >= int64(reward.StampsRequired) {
		return nil, ErrCardFull
	}

	// The list is sorted by expiry ascending, so the consumed stamps are
	// the ones closest to expiring and the first carries the minimum
	// expiry, which the new stamp inherits.
	consumed := transferable[:utils.TransferStampCount]
	ids := make([]primitive.ObjectID, 0, len(consumed))
	snapshots := make([]models.StampSnapshot, 0, len(consumed))
	for _, st := range consumed {
		ids = append(ids, st.ID)
		snapshots = append(snapshots, st.Snapshot())
	}

	received := &models.Stamp{
		Code:            utils.GenerateStampCode(recipientEmail, now),
		CustomerEmail:   recipientEmail,
		ShopID:          req.ShopID,
		RewardID:        reward.ID,
		Status:          models.StampStatusActive,
		IssuedAt:        now,
		ExpiresAt:       consumed[0].ExpiresAt,
		IsTransferred:   true,
		TransferredFrom: senderEmail,
		SourceStamps:    snapshots,
	}

	err = s.db.RunTransaction(ctx, func(txCtx context.Context) error {
		if err := s.stampRepo.DeleteMany(txCtx, ids); err != nil {
			return err
		}
		return s.stampRepo.Create(txCtx, received)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogStampEvent(req.ShopID, "stamps_transferred", map[string]interface{}{
		"from":      senderEmail,
		"to":        recipientEmail,
		"reward_id": reward.ID.Hex(),
		"consumed":  len(consumed),
	})

	return received, nil
}

func (s *stampService) GetMyStamps(ctx context.Context, email string) ([]*models.Stamp, error) {
	return s.stampRepo.GetByCustomer(ctx, email)
}

func (s *stampService) GetCardProgress(ctx context.Context, email string, shopID, rewardID primitive.ObjectID) (*CardProgress, error) {
	reward, err := s.shopReward(ctx, shopID, rewardID)
	if err != nil {
		return nil, err
	}

	stamps, err := s.stampRepo.GetActiveForReward(ctx, email, shopID, rewardID, s.now())
	if err != nil {
		return nil, err
	}

	return &CardProgress{
		RewardID:       rewardID,
		StampsRequired: reward.StampsRequired,
		ActiveStamps:   len(stamps),
		Stamps:         stamps,
	}, nil
}

func (s *stampService) shopReward(ctx context.Context, shopID, rewardID primitive.ObjectID) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if reward.ShopID != shopID {
		return nil, ErrRewardNotFound
	}

	return reward, nil
}

func (s *stampService) activeShopReward(ctx context.Context, shopID, rewardID primitive.ObjectID) (*models.Reward, error) {
	reward, err := s.shopReward(ctx, shopID, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	return reward, nil
}

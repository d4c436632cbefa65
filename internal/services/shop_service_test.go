package services

import (
	"context"
	"io"
	"testing"
	"time"

	"menustamp/internal/models"
	"menustamp/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeStorage struct {
	deleted  []string
	prefixes []string
}

func (s *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	return &storage.UploadResponse{Key: request.Key, URL: "http://cdn.test/" + request.Key}, nil
}

func (s *fakeStorage) Download(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	return nil, io.EOF
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) DeletePrefix(ctx context.Context, prefix string) error {
	s.prefixes = append(s.prefixes, prefix)
	return nil
}

func (s *fakeStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "http://cdn.test/" + key, nil
}

func (s *fakeStorage) FileExists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

type fakeStoreRepo struct {
	stores map[primitive.ObjectID]*models.Store
}

func newFakeStoreRepo(stores ...*models.Store) *fakeStoreRepo {
	repo := &fakeStoreRepo{stores: map[primitive.ObjectID]*models.Store{}}
	for _, store := range stores {
		if store.ID.IsZero() {
			store.ID = primitive.NewObjectID()
		}
		repo.stores[store.ID] = store
	}
	return repo
}

func (r *fakeStoreRepo) Create(ctx context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	r.stores[store.ID] = store
	return nil
}

func (r *fakeStoreRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	if store, ok := r.stores[id]; ok {
		return store, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeStoreRepo) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Store, error) {
	var result []*models.Store
	for _, store := range r.stores {
		if store.ShopID == shopID {
			result = append(result, store)
		}
	}
	return result, nil
}

func (r *fakeStoreRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeStoreRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.stores, id)
	return nil
}

func (r *fakeStoreRepo) DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error {
	for id, store := range r.stores {
		if store.ShopID == shopID {
			delete(r.stores, id)
		}
	}
	return nil
}

type fakeMenuRepo struct {
	items map[primitive.ObjectID]*models.MenuItem
}

func newFakeMenuRepo(items ...*models.MenuItem) *fakeMenuRepo {
	repo := &fakeMenuRepo{items: map[primitive.ObjectID]*models.MenuItem{}}
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	item.ID = primitive.NewObjectID()
	r.items[item.ID] = item
	return nil
}

func (r *fakeMenuRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeMenuRepo) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.MenuItem, error) {
	var result []*models.MenuItem
	for _, item := range r.items {
		if item.ShopID == shopID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeMenuRepo) GetByStore(ctx context.Context, storeID primitive.ObjectID) ([]*models.MenuItem, error) {
	var result []*models.MenuItem
	for _, item := range r.items {
		if item.StoreID != nil && *item.StoreID == storeID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeMenuRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) DeleteByShop(ctx context.Context, shopID primitive.ObjectID) error {
	for id, item := range r.items {
		if item.ShopID == shopID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeMenuRepo) DeleteByStore(ctx context.Context, storeID primitive.ObjectID) error {
	for id, item := range r.items {
		if item.StoreID != nil && *item.StoreID == storeID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeMenuRepo) IsCodeTaken(ctx context.Context, shopID primitive.ObjectID, code string, excludeID *primitive.ObjectID) (bool, error) {
	for _, item := range r.items {
		if item.ShopID != shopID || item.Code != code {
			continue
		}
		if excludeID != nil && item.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func newShopServiceForTest(shopRepo *fakeShopRepo, storeRepo *fakeStoreRepo, menuRepo *fakeMenuRepo, rewardRepo *fakeRewardRepo, store *fakeStorage) ShopService {
	return NewShopService(shopRepo, storeRepo, menuRepo, rewardRepo, store, newFakeCache(), testLogger())
}

func TestCreateShopRejectsTakenUsername(t *testing.T) {
	ownerID := primitive.NewObjectID()
	shopRepo := newFakeShopRepo(&models.Shop{OwnerID: ownerID, Username: "brewlab", IsActive: true})
	svc := newShopServiceForTest(shopRepo, newFakeStoreRepo(), newFakeMenuRepo(), newFakeRewardRepo(), &fakeStorage{})

	_, err := svc.CreateShop(context.Background(), ownerID, &models.CreateShopRequest{
		Name:     "Second Brew",
		Username: "BrewLab",
		Currency: "USD",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateShopDefaults(t *testing.T) {
	ownerID := primitive.NewObjectID()
	svc := newShopServiceForTest(newFakeShopRepo(), newFakeStoreRepo(), newFakeMenuRepo(), newFakeRewardRepo(), &fakeStorage{})

	shop, err := svc.CreateShop(context.Background(), ownerID, &models.CreateShopRequest{
		Name:     "Brew Lab",
		Username: "brewlab",
		Currency: "usd",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ShopTemplateClassic, shop.Template)
	assert.Equal(t, models.ShopTypeStandard, shop.Type)
	assert.Equal(t, "USD", shop.Currency)
	assert.True(t, shop.IsActive)
}

func TestGetPublicMenuFiltersHiddenEntries(t *testing.T) {
	ownerID := primitive.NewObjectID()
	shop := &models.Shop{OwnerID: ownerID, Name: "Court", Username: "court", Type: models.ShopTypeFoodCourt, IsActive: true}
	shopRepo := newFakeShopRepo(shop)

	storeRepo := newFakeStoreRepo(
		&models.Store{ShopID: shop.ID, Name: "Noodles", IsActive: true},
		&models.Store{ShopID: shop.ID, Name: "Closed Stall", IsActive: false},
	)
	menuRepo := newFakeMenuRepo(
		&models.MenuItem{ShopID: shop.ID, Name: "Ramen", IsAvailable: true},
		&models.MenuItem{ShopID: shop.ID, Name: "Sold Out", IsAvailable: false},
	)
	rewardRepo := newFakeRewardRepo(
		&models.Reward{ShopID: shop.ID, Name: "Free Bowl", StampsRequired: 5, IsActive: true},
		&models.Reward{ShopID: shop.ID, Name: "Retired", StampsRequired: 5, IsActive: false},
	)

	svc := newShopServiceForTest(shopRepo, storeRepo, menuRepo, rewardRepo, &fakeStorage{})

	menu, err := svc.GetPublicMenu(context.Background(), "court")
	require.NoError(t, err)

	require.Len(t, menu.Stores, 1)
	assert.Equal(t, "Noodles", menu.Stores[0].Name)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, "Ramen", menu.Items[0].Name)
	require.Len(t, menu.Rewards, 1)
	assert.Equal(t, "Free Bowl", menu.Rewards[0].Name)
}

func TestGetPublicMenuHidesInactiveShop(t *testing.T) {
	shopRepo := newFakeShopRepo(&models.Shop{OwnerID: primitive.NewObjectID(), Username: "gone", IsActive: false})
	svc := newShopServiceForTest(shopRepo, newFakeStoreRepo(), newFakeMenuRepo(), newFakeRewardRepo(), &fakeStorage{})

	_, err := svc.GetPublicMenu(context.Background(), "gone")

	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestDeleteShopCascades(t *testing.T) {
	ownerID := primitive.NewObjectID()
	shop := &models.Shop{OwnerID: ownerID, Username: "brewlab", IsActive: true}
	shopRepo := newFakeShopRepo(shop)

	storeRepo := newFakeStoreRepo(&models.Store{ShopID: shop.ID, Name: "Stall"})
	menuRepo := newFakeMenuRepo(&models.MenuItem{ShopID: shop.ID, Name: "Ramen"})
	objectStore := &fakeStorage{}

	svc := newShopServiceForTest(shopRepo, storeRepo, menuRepo, newFakeRewardRepo(), objectStore)

	require.NoError(t, svc.DeleteShop(context.Background(), ownerID, shop.ID))

	assert.Empty(t, shopRepo.shops)
	assert.Empty(t, storeRepo.stores)
	assert.Empty(t, menuRepo.items)
	// All three object prefixes for the tenant are swept.
	assert.Len(t, objectStore.prefixes, 3)
}

func TestDeleteShopRequiresOwnership(t *testing.T) {
	shop := &models.Shop{OwnerID: primitive.NewObjectID(), Username: "brewlab", IsActive: true}
	shopRepo := newFakeShopRepo(shop)
	svc := newShopServiceForTest(shopRepo, newFakeStoreRepo(), newFakeMenuRepo(), newFakeRewardRepo(), &fakeStorage{})

	err := svc.DeleteShop(context.Background(), primitive.NewObjectID(), shop.ID)

	assert.ErrorIs(t, err, ErrNotShopOwner)
	assert.Len(t, shopRepo.shops, 1)
}

package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrShopNotFound     = errors.New("shop not found")
	ErrStoreNotFound    = errors.New("store not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrRewardNotFound   = errors.New("reward not found")
	ErrClaimNotFound    = errors.New("claim not found")

	ErrNotShopOwner  = errors.New("shop does not belong to this user")
	ErrUsernameTaken = errors.New("shop username is already taken")
	ErrItemCodeTaken = errors.New("this item code is already in use")
	ErrNotFoodCourt  = errors.New("stores can only be added to food court shops")
	ErrStoreLimit    = errors.New("store limit reached for this shop")

	ErrCustomerNotFound = errors.New("customer is not registered")
	ErrRewardInactive   = errors.New("reward is not active")
	ErrCardFull         = errors.New("loyalty card is already full")
	ErrDuplicateScan    = errors.New("stamp was already issued moments ago")
	ErrRewardHasStamps  = errors.New("reward has active stamps and cannot be deleted")

	ErrNotEnoughStamps    = errors.New("not enough stamps")
	ErrTransferToSelf     = errors.New("cannot transfer stamps to yourself")
	ErrRecipientNotFound  = errors.New("recipient is not registered")
	ErrInvalidTransition  = errors.New("claim cannot move to the requested status")
	ErrAlreadyFavorite    = errors.New("item is already in favorites")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

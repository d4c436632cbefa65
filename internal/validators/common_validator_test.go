package validators

import (
	"testing"

	"menustamp/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateShopRequest(t *testing.T) {
	valid := &models.CreateShopRequest{
		Name:     "Brew Lab",
		Username: "brewlab",
		Currency: "USD",
	}
	assert.Empty(t, ValidateStruct(valid))

	badUsername := &models.CreateShopRequest{
		Name:     "Brew Lab",
		Username: "No Spaces Allowed",
		Currency: "USD",
	}
	errs := ValidateStruct(badUsername)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "username")

	badCurrency := &models.CreateShopRequest{
		Name:     "Brew Lab",
		Username: "brewlab",
		Currency: "ZZZ",
	}
	errs = ValidateStruct(badCurrency)
	assert.Contains(t, errs.Fields(), "currency")
}

func TestValidateCreateReward(t *testing.T) {
	valid := &models.CreateRewardRequest{
		Name:           "Free Coffee",
		StampsRequired: 8,
		ExpiryDays:     365,
	}
	assert.Empty(t, ValidateCreateReward(valid))

	lifetime := &models.CreateRewardRequest{
		Name:           "Forever Card",
		StampsRequired: 10,
		Lifetime:       true,
	}
	assert.Empty(t, ValidateCreateReward(lifetime))

	// Non-lifetime rewards must name a positive expiry window.
	missingExpiry := &models.CreateRewardRequest{
		Name:           "Free Coffee",
		StampsRequired: 8,
	}
	errs := ValidateCreateReward(missingExpiry)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "expiry_days")

	badFollowURL := &models.CreateRewardRequest{
		Name:           "Free Coffee",
		StampsRequired: 8,
		ExpiryDays:     30,
		EarnCriteria: models.EarnCriteria{
			SocialFollow:    true,
			SocialFollowURL: "not a url",
		},
	}
	errs = ValidateCreateReward(badFollowURL)
	assert.Contains(t, errs.Fields(), "earn_criteria.social_follow_url")
}

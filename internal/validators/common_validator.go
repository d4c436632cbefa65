package validators

import (
	"fmt"
	"reflect"
	"strings"

	"menustamp/internal/models"
	"menustamp/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("shop_username", validateShopUsername)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("expiry_window", validateExpiryWindow)

	// Report the json field name instead of the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields flattens the errors into the field-to-message map used by API
// error responses.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "url":
		return "Invalid URL format"
	case "shop_username":
		return fmt.Sprintf("Username must be %d-%d characters of lowercase letters, digits, dot or underscore", utils.UsernameMinLength, utils.UsernameMaxLength)
	case "currency_code":
		return "Invalid currency code"
	case "expiry_window":
		return fmt.Sprintf("Expiry must be between 1 and %d days", utils.MaxExpiryDays)
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func validateShopUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // required handles empty values
	}
	return utils.IsValidShopUsername(strings.ToLower(value))
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return utils.IsValidCurrency(strings.ToUpper(value))
}

// validateExpiryWindow applies to the expiry_days field of a reward. Zero is
// only acceptable for lifetime rewards, which the struct-level check below
// sorts out.
func validateExpiryWindow(fl validator.FieldLevel) bool {
	days := fl.Field().Int()
	return days >= 0 && days <= utils.MaxExpiryDays
}

// ValidateCreateReward layers the lifetime/expiry rule on top of the field
// tags: a reward either lives forever or names a positive expiry window.
func ValidateCreateReward(req *models.CreateRewardRequest) ValidationErrors {
	errs := ValidateStruct(req)

	if !req.Lifetime && req.ExpiryDays < 1 {
		errs = append(errs, ValidationError{
			Field:   "expiry_days",
			Tag:     "expiry_window",
			Message: "Non-lifetime rewards need expiry_days of at least 1",
		})
	}
	if req.EarnCriteria.SocialFollow && req.EarnCriteria.SocialFollowURL != "" && !utils.IsValidURL(req.EarnCriteria.SocialFollowURL) {
		errs = append(errs, ValidationError{
			Field:   "earn_criteria.social_follow_url",
			Tag:     "url",
			Message: "Invalid URL format",
		})
	}

	return errs
}

package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopService services.ShopService
}

func NewShopHandler(shopService services.ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

func (h *ShopHandler) CreateShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.CreateShopRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), userID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Shop created", shop)
}

func (h *ShopHandler) GetMyShops(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shops, err := h.shopService.GetMyShops(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shops retrieved", shops)
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	shop, err := h.shopService.GetShop(c.Request.Context(), userID, shopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shop retrieved", shop)
}

func (h *ShopHandler) UpdateShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	var request models.UpdateShopRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), userID, shopID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shop updated", shop)
}

func (h *ShopHandler) DeleteShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	if err := h.shopService.DeleteShop(c.Request.Context(), userID, shopID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shop deleted", nil)
}

func (h *ShopHandler) UploadLogo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		utils.BadRequestResponse(c, "Logo file is required")
		return
	}
	if fileHeader.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, "Image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	defer file.Close()

	shop, err := h.shopService.UploadLogo(c.Request.Context(), userID, shopID, file, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Logo uploaded", shop)
}

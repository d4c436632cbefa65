package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	var request models.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), userID, shopID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Menu item created", item)
}

func (h *MenuHandler) GetItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	items, err := h.menuService.GetItems(c.Request.Context(), userID, shopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Menu items retrieved", items)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}
	itemID, ok := objectIDParam(c, "itemId")
	if !ok {
		return
	}

	var request models.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	item, err := h.menuService.UpdateItem(c.Request.Context(), userID, shopID, itemID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Menu item updated", item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}
	itemID, ok := objectIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), userID, shopID, itemID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Menu item deleted", nil)
}

func (h *MenuHandler) UploadItemImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}
	itemID, ok := objectIDParam(c, "itemId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required")
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

	item, err := h.menuService.UploadItemImage(c.Request.Context(), userID, shopID, itemID, file, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item image uploaded", item)
}

package handlers

import (
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicHandler serves the unauthenticated menu page. When a signed-in
// customer opens the page, their visit is recorded as a side effect.
type PublicHandler struct {
	shopService  services.ShopService
	visitService services.VisitService
	logger       *logger.Logger
}

func NewPublicHandler(shopService services.ShopService, visitService services.VisitService, log *logger.Logger) *PublicHandler {
	return &PublicHandler{
		shopService:  shopService,
		visitService: visitService,
		logger:       log,
	}
}

func (h *PublicHandler) GetMenu(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		utils.BadRequestResponse(c, "Shop username is required")
		return
	}

	menu, err := h.shopService.GetPublicMenu(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if value, exists := c.Get("user_id"); exists {
		if userID, ok := value.(primitive.ObjectID); ok {
			if err := h.visitService.RecordVisit(c.Request.Context(), userID, menu.Shop.ID); err != nil {
				h.logger.WithError(err).WithUserID(userID).Warn("failed to record visit")
			}
		}
	}

	utils.SuccessResponse(c, "Menu retrieved", menu)
}

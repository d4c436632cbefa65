package routes

import (
	"menustamp/internal/handlers"
	"menustamp/internal/middleware"
	"menustamp/internal/services"
	"menustamp/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetupShopRoutes wires the owner-facing dashboard API: shop CRUD, stores,
// menu items, rewards, counter scanning and claim processing.
func SetupShopRoutes(
	r *gin.RouterGroup,
	shopHandler *handlers.ShopHandler,
	storeHandler *handlers.StoreHandler,
	menuHandler *handlers.MenuHandler,
	rewardHandler *handlers.RewardHandler,
	stampHandler *handlers.StampHandler,
	claimHandler *handlers.ClaimHandler,
	wsHandler *websocket.Handler,
	shopService services.ShopService,
	cache services.CacheService,
	jwtSecret string,
	scanRatePerMinute int,
) {
	shops := r.Group("/shops")
	shops.Use(middleware.AuthRequired(jwtSecret))
	{
		shops.POST("", shopHandler.CreateShop)
		shops.GET("", shopHandler.GetMyShops)
		shops.GET("/:shopId", shopHandler.GetShop)
		shops.PUT("/:shopId", shopHandler.UpdateShop)
		shops.DELETE("/:shopId", shopHandler.DeleteShop)
		shops.POST("/:shopId/logo", shopHandler.UploadLogo)

		shops.POST("/:shopId/stores", storeHandler.CreateStore)
		shops.GET("/:shopId/stores", storeHandler.GetStores)
		shops.PUT("/:shopId/stores/:storeId", storeHandler.UpdateStore)
		shops.DELETE("/:shopId/stores/:storeId", storeHandler.DeleteStore)
		shops.POST("/:shopId/stores/:storeId/image", storeHandler.UploadImage)

		shops.POST("/:shopId/menu-items", menuHandler.CreateItem)
		shops.GET("/:shopId/menu-items", menuHandler.GetItems)
		shops.PUT("/:shopId/menu-items/:itemId", menuHandler.UpdateItem)
		shops.DELETE("/:shopId/menu-items/:itemId", menuHandler.DeleteItem)
		shops.POST("/:shopId/menu-items/:itemId/image", menuHandler.UploadItemImage)

		shops.POST("/:shopId/rewards", rewardHandler.CreateReward)
		shops.GET("/:shopId/rewards", rewardHandler.GetRewards)
		shops.PUT("/:shopId/rewards/:rewardId", rewardHandler.UpdateReward)
		shops.DELETE("/:shopId/rewards/:rewardId", rewardHandler.DeleteReward)

		shops.POST("/:shopId/scan",
			middleware.RateLimitMiddleware(cache, "scan", scanRatePerMinute),
			stampHandler.ScanStamp)

		shops.GET("/:shopId/claims", claimHandler.GetShopClaims)
	}

	claims := r.Group("/claims")
	claims.Use(middleware.AuthRequired(jwtSecret))
	{
		claims.PUT("/:claimId/approve", claimHandler.ApproveClaim)
		claims.PUT("/:claimId/reject", claimHandler.RejectClaim)
		claims.PUT("/:claimId/complete", claimHandler.CompleteClaim)
	}

	// Dashboard websocket. The owner joins a room per shop they own so
	// stamp and claim events reach the right dashboard.
	r.GET("/ws", middleware.AuthRequired(jwtSecret), func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if exists {
			if ownerID, ok := userID.(primitive.ObjectID); ok {
				if shops, err := shopService.GetMyShops(c.Request.Context(), ownerID); err == nil {
					ids := make([]primitive.ObjectID, 0, len(shops))
					for _, shop := range shops {
						ids = append(ids, shop.ID)
					}
					c.Set("shop_ids", ids)
				}
			}
		}
		wsHandler.HandleWebSocket(c)
	})
}

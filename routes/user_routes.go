package routes

import (
	"menustamp/internal/handlers"
	"menustamp/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes wires the customer-facing API: stamp wallet, transfers,
// claims, favorites and visit history.
func SetupUserRoutes(
	r *gin.RouterGroup,
	stampHandler *handlers.StampHandler,
	claimHandler *handlers.ClaimHandler,
	favoriteHandler *handlers.FavoriteHandler,
	visitHandler *handlers.VisitHandler,
	jwtSecret string,
) {
	me := r.Group("/me")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("/stamps", stampHandler.GetMyStamps)
		me.GET("/progress/:shopId/:rewardId", stampHandler.GetCardProgress)
		me.GET("/claims", claimHandler.GetMyClaims)
		me.GET("/favorites", favoriteHandler.GetFavorites)
		me.GET("/visits", visitHandler.GetRecentShops)
	}

	stamps := r.Group("/stamps")
	stamps.Use(middleware.AuthRequired(jwtSecret))
	{
		stamps.POST("/transfer", stampHandler.TransferStamps)
	}

	claims := r.Group("/claims")
	claims.Use(middleware.AuthRequired(jwtSecret))
	{
		claims.POST("", claimHandler.CreateClaim)
	}

	favorites := r.Group("/favorites")
	favorites.Use(middleware.AuthRequired(jwtSecret))
	{
		favorites.POST("", favoriteHandler.AddFavorite)
		favorites.DELETE("/:itemId", favoriteHandler.RemoveFavorite)
	}

	visits := r.Group("/visits")
	visits.Use(middleware.AuthRequired(jwtSecret))
	{
		visits.POST("", visitHandler.RecordVisit)
	}
}

package routes

import (
	"menustamp/internal/handlers"
	"menustamp/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes exposes the menu page lookup by shop handle. Auth is
// optional; a signed-in customer gets a visit recorded.
func SetupPublicRoutes(r *gin.RouterGroup, publicHandler *handlers.PublicHandler, jwtSecret string) {
	public := r.Group("/public")
	public.Use(middleware.OptionalAuth(jwtSecret))
	{
		public.GET("/menu/:username", publicHandler.GetMenu)
	}
}

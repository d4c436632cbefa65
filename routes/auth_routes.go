package routes

import (
	"menustamp/internal/handlers"
	"menustamp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.GET("/google/url", authHandler.GetGoogleAuthURL)
		auth.POST("/google", authHandler.LoginWithGoogle)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	me := r.Group("/auth/me")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("", authHandler.GetProfile)
		me.PUT("", authHandler.UpdateProfile)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menustamp/internal/config"
	"menustamp/internal/handlers"
	"menustamp/internal/middleware"
	"menustamp/internal/repositories/mongodb"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/pkg/cache"
	"menustamp/pkg/database"
	"menustamp/pkg/logger"
	"menustamp/pkg/oauth"
	"menustamp/pkg/storage"
	"menustamp/pkg/websocket"
	"menustamp/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	googleOAuth := oauth.NewGoogleProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.RedirectURL,
	)

	wsHandler := websocket.NewHandler()

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	shopRepo := mongodb.NewShopRepository(db.Database, redisCache)
	storeRepo := mongodb.NewStoreRepository(db.Database)
	menuRepo := mongodb.NewMenuItemRepository(db.Database)
	rewardRepo := mongodb.NewRewardRepository(db.Database)
	stampRepo := mongodb.NewStampRepository(db.Database)
	claimRepo := mongodb.NewClaimRepository(db.Database)
	favoriteRepo := mongodb.NewFavoriteRepository(db.Database)
	visitRepo := mongodb.NewVisitRepository(db.Database)

	// Services
	cacheService := services.NewCacheService(redisCache)
	authService := services.NewAuthService(userRepo, googleOAuth, cfg.Security.JWTSecret, appLogger)
	shopService := services.NewShopService(shopRepo, storeRepo, menuRepo, rewardRepo, storageProvider, cacheService, appLogger)
	storeService := services.NewStoreService(shopRepo, storeRepo, menuRepo, storageProvider, cacheService, appLogger)
	menuService := services.NewMenuService(shopRepo, storeRepo, menuRepo, storageProvider, cacheService, appLogger)
	rewardService := services.NewRewardService(shopRepo, rewardRepo, stampRepo, cacheService, appLogger)
	stampService := services.NewStampService(db, shopRepo, rewardRepo, stampRepo, userRepo, cacheService, wsHandler, appLogger)
	claimService := services.NewClaimService(db, shopRepo, rewardRepo, stampRepo, claimRepo, wsHandler, appLogger)
	favoriteService := services.NewFavoriteService(favoriteRepo, menuRepo, shopRepo, appLogger)
	visitService := services.NewVisitService(visitRepo, shopRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	shopHandler := handlers.NewShopHandler(shopService)
	storeHandler := handlers.NewStoreHandler(storeService)
	menuHandler := handlers.NewMenuHandler(menuService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	stampHandler := handlers.NewStampHandler(stampService)
	claimHandler := handlers.NewClaimHandler(claimService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	visitHandler := handlers.NewVisitHandler(visitService)
	publicHandler := handlers.NewPublicHandler(shopService, visitService, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(cacheService, "api", cfg.Security.RateLimitPerMinute))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	// Local storage serves uploads straight from disk.
	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg.Security.JWTSecret)
		routes.SetupShopRoutes(v1,
			shopHandler, storeHandler, menuHandler, rewardHandler, stampHandler, claimHandler,
			wsHandler, shopService, cacheService,
			cfg.Security.JWTSecret, cfg.Security.ScanRatePerMinute)
		routes.SetupUserRoutes(v1, stampHandler, claimHandler, favoriteHandler, visitHandler, cfg.Security.JWTSecret)
		routes.SetupPublicRoutes(v1, publicHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK

		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": utils.AppName,
			"version": utils.AppVersion,
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.Provider, error) {
	switch cfg.Provider {
	case "s3", "aws":
		return storage.NewAWSS3Storage(cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}

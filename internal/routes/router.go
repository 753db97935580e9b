package routes

import (
	"context"
	"net/http"

	"cargolinked/internal/config"
	"cargolinked/internal/delivery/http/handler"
	"cargolinked/internal/infrastructure/database/postgres"
	"cargolinked/internal/logger"
	"cargolinked/internal/middleware"
	quoteUsecase "cargolinked/internal/usecase/quote"
	requestUsecase "cargolinked/internal/usecase/request"
	userUsecase "cargolinked/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(ctx context.Context, cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(1 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	agentProfileRepository := postgres.NewAgentProfileRepository(db)
	userService := userUsecase.NewService(userRepository, agentProfileRepository, cfg)
	userHandler := handler.NewUserHandler(userService)

	requestRepository := postgres.NewRequestRepository(db)
	requestService := requestUsecase.NewService(requestRepository, userRepository)
	requestHandler := handler.NewRequestHandler(requestService)

	quoteRepository := postgres.NewQuoteRepository(db)
	quoteService := quoteUsecase.NewService(quoteRepository, requestRepository, userRepository, agentProfileRepository)
	quoteHandler := handler.NewQuoteHandler(quoteService)

	// Background job: age out stale pending quotes
	go quoteService.StartExpirySweep(ctx, cfg.QuoteExpiry.SweepInterval, cfg.QuoteExpiry.TTL)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		requestHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			requestHandler.RegisterAuthenticatedRoutes(protected)
			quoteHandler.RegisterAuthenticatedRoutes(protected)

			shipper := protected.Group("")
			shipper.Use(middleware.ShipperOnly())
			{
				requestHandler.RegisterShipperRoutes(shipper)
				quoteHandler.RegisterShipperRoutes(shipper)
			}

			agent := protected.Group("")
			agent.Use(middleware.AgentOnly())
			{
				userHandler.RegisterAgentRoutes(agent)
				quoteHandler.RegisterAgentRoutes(agent)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lease-backend/internal/config"
	"lease-backend/internal/handlers"
	"lease-backend/internal/middleware"
	"lease-backend/internal/services"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(60))

	accessService := services.NewAccessService(db)
	authService := services.NewAuthService(db)
	leaseService := services.NewLeaseService(db, accessService)
	shareService := services.NewShareService(db, accessService)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(authService)
	leaseHandler := handlers.NewLeaseHandler(leaseService)
	shareHandler := handlers.NewShareHandler(shareService, cfg)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// 匿名通过分享令牌访问租约摘要
		public.GET("/shared/:token", shareHandler.GetSharedLease)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
			user.POST("/logout", authHandler.Logout)
		}

		protected.GET("/users", userHandler.GetUsers)

		leases := protected.Group("/leases")
		{
			leases.GET("", leaseHandler.GetLeases)
			leases.POST("", leaseHandler.CreateLease)

			leases.POST("/:id/share-token", shareHandler.CreateShareToken)
			leases.POST("/:id/share", shareHandler.ShareLease)

			leases.GET("/:id", leaseHandler.GetLease)
			leases.PUT("/:id", leaseHandler.UpdateLease)
			leases.DELETE("/:id", leaseHandler.DeleteLease)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}

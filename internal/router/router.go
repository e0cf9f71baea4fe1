package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/controller"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"golang.org/x/time/rate"
)

type Router struct {
	authController  *controller.AuthController
	adminController *controller.AdminController
	storeController *controller.StoreController
	userController  *controller.UserController
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	adminController *controller.AdminController,
	storeController *controller.StoreController,
	userController *controller.UserController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:  authController,
		adminController: adminController,
		storeController: storeController,
		userController:  userController,
		authMiddleware:  authMiddleware,
		config:          cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "RateHub API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			loginLimiter := middleware.RateLimit(
				rate.Limit(r.config.Auth.LoginRatePerSecond),
				r.config.Auth.LoginBurst,
			)
			auth.POST("/login", loginLimiter, r.authController.Login)
			auth.POST("/signup", r.authController.Signup)
			auth.PUT("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		admin := api.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(string(model.RoleAdmin)))
		{
			admin.GET("/dashboard", r.adminController.Dashboard)
			admin.GET("/users", r.adminController.ListUsers)
			admin.GET("/users/:id", r.adminController.GetUserDetails)
			admin.GET("/stores", r.adminController.ListStores)
			admin.POST("/user", r.adminController.AddUser)
			admin.POST("/store", r.adminController.AddStore)
		}

		store := api.Group("/store")
		store.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(string(model.RoleStoreOwner)))
		{
			store.GET("/ratings", r.storeController.GetRatings)
			store.GET("/average", r.storeController.GetAverageRating)
		}

		user := api.Group("/user")
		user.Use(r.authMiddleware.Authenticate())
		{
			user.GET("/stores", r.userController.ListStores)
			user.POST("/rate", r.userController.SubmitRating)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

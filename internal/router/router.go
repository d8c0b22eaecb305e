package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jylee/minimart-backend/config"
	"github.com/jylee/minimart-backend/internal/app/controller"
	"github.com/jylee/minimart-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	itemController     *controller.ItemController
	cartController     *controller.CartController
	purchaseController *controller.PurchaseController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	itemController *controller.ItemController,
	cartController *controller.CartController,
	purchaseController *controller.PurchaseController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		itemController:     itemController,
		cartController:     cartController,
		purchaseController: purchaseController,
		authMiddleware:     authMiddleware,
		config:             cfg,
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
			"message": "Minimart API is running",
		})
	})

	// Public storefront endpoints
	router.GET("/items/:class", r.itemController.ListByCategory)
	router.GET("/detail/:iid", r.itemController.Detail)
	router.GET("/search", r.itemController.Search)
	router.POST("/login", r.authController.Login)
	router.POST("/register", r.authController.Register)

	// Endpoints that act on a user's data require a session token
	authed := router.Group("/")
	authed.Use(r.authMiddleware.Authenticate())
	{
		authed.POST("/purchase", r.purchaseController.Purchase)
		authed.GET("/transactions/:uid", r.purchaseController.Transactions)
		authed.POST("/addcart", r.cartController.AddToCart)
		authed.GET("/showcart/:uid", r.cartController.ShowCart)
		authed.GET("/bulk/:uid", r.purchaseController.BulkCheckout)
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

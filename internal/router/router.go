// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/multishop/multishop-backend/internal/config"
	"github.com/multishop/multishop-backend/internal/handlers"
	"github.com/multishop/multishop-backend/internal/middleware"
	"github.com/multishop/multishop-backend/internal/services"
	"github.com/multishop/multishop-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db, cfg)
	cartService := services.NewCartService(db, cfg)
	checkoutService := services.NewCheckoutService(db, cfg)
	orderService := services.NewOrderService(db)
	vendorService := services.NewVendorService(db)
	userService := services.NewUserService(db, cfg)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	profileHandler := handlers.NewProfileHandler(userService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, orderService, vendorService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Public catalog routes
		v1.GET("/shop", middleware.OptionalAuth(), catalogHandler.ListProducts)
		v1.GET("/shop/featured", catalogHandler.FeaturedProducts)
		v1.GET("/product/:slug", middleware.OptionalAuth(), catalogHandler.GetProduct)

		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:slug", catalogHandler.GetCategory)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items/:productId", cartHandler.AddToCart)
			cart.POST("/items/:itemId/update", cartHandler.UpdateCartItem)
			cart.DELETE("/items/:itemId", cartHandler.RemoveCartItem)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired())
		{
			checkout.GET("", checkoutHandler.Preview)
			checkout.POST("", middleware.CheckoutRateLimit(), checkoutHandler.Checkout)
		}

		// Order history routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Profile routes
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Vendor routes
		vendors := v1.Group("/vendors")
		vendors.Use(middleware.AuthRequired())
		{
			vendors.POST("", vendorHandler.RegisterVendor)
			vendors.GET("/me", vendorHandler.GetMyVendor)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", adminHandler.CreateCategory)
				adminCategories.PUT("/:id", adminHandler.UpdateCategory)
				adminCategories.DELETE("/:id", adminHandler.DeleteCategory)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", adminHandler.CreateProduct)
				adminProducts.PUT("/:id", adminHandler.UpdateProduct)
				adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
			}

			adminVendors := admin.Group("/vendors")
			{
				adminVendors.PUT("/:id/approval", adminHandler.SetVendorApproval)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", adminHandler.ListOrders)
				adminOrders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
			}

			admin.POST("/uploads", middleware.UploadRateLimit(), adminHandler.UploadFile)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

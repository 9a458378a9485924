package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/handlers"
	"github.com/SadiqJ21/Tawsil-Webapp/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every endpoint onto a gin engine.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS for the storefront and admin frontends.
	allowedOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded product images are served straight from disk.
	router.Static("/uploads", "./uploads")

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// --- Public Routes ---
		v1.POST("/signup", h.Signup)
		v1.POST("/login", h.Login)
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)

		// --- Authenticated Routes ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/user", h.GetProfile)
			auth.PUT("/user", h.UpdateProfile)

			auth.GET("/addresses", h.ListAddresses)
			auth.POST("/addresses", h.CreateAddress)
			auth.PUT("/addresses/:id", h.UpdateAddress)
			auth.DELETE("/addresses/:id", h.DeleteAddress)

			auth.GET("/cart", h.GetCart)
			auth.POST("/cart", h.AddToCart)
			auth.DELETE("/cart", h.ClearCart)
			auth.PUT("/cart/items/:product_id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:product_id", h.DeleteCartItem)

			auth.GET("/wishlist", h.GetWishlist)
			auth.POST("/wishlist", h.AddToWishlist)
			auth.DELETE("/wishlist/:product_id", h.DeleteWishlistItem)

			auth.GET("/orders", h.GetMyOrders)
			auth.POST("/orders", h.PlaceOrder)
			auth.GET("/orders/:id", h.GetOrderDetails)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

			admin.POST("/admin/categories", h.CreateCategory)
			admin.PUT("/admin/categories/:id", h.UpdateCategory)
			admin.DELETE("/admin/categories/:id", h.DeleteCategory)

			admin.POST("/admin/products", h.CreateProduct)
			admin.PUT("/admin/products/:id", h.UpdateProduct)
			admin.DELETE("/admin/products/:id", h.DeleteProduct)
			admin.POST("/admin/upload", h.UploadImage)

			admin.GET("/admin/orders", h.ListAllOrders)
			admin.GET("/admin/analytics", h.GetAnalytics)
			admin.GET("/admin/logs", h.GetActivityLogs)
			admin.GET("/admin/users", h.ListUsers)
		}
	}

	return router
}

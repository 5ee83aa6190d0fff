package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/charddss/mcbyte-cafe/controllers/cart"
	favoriteControllers "github.com/charddss/mcbyte-cafe/controllers/favorite"
	orderControllers "github.com/charddss/mcbyte-cafe/controllers/order"
	paymentControllers "github.com/charddss/mcbyte-cafe/controllers/payment"
	productcontroller "github.com/charddss/mcbyte-cafe/controllers/product"
	userControllers "github.com/charddss/mcbyte-cafe/controllers/user"
	"github.com/charddss/mcbyte-cafe/middleware"
)

// SetupUserRoutes registers all customer-facing endpoints. Requires JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Profile
		userGroup.GET("/", userControllers.GetProfile(db))
		userGroup.PUT("/", userControllers.UpdateProfile(db))

		// Menu
		userGroup.GET("/products", productcontroller.GetProducts(db))
		userGroup.GET("/products/:id", productcontroller.GetProductByID(db))

		// Active cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCartHandler(db))
			cartGroup.POST("/", cartControllers.AddItemHandler(db))
			cartGroup.PUT("/items/:itemID", cartControllers.UpdateQuantityHandler(db))
			cartGroup.DELETE("/items/:itemID", cartControllers.RemoveItemHandler(db))
		}

		// Checkout & receipts
		userGroup.POST("/checkout", paymentControllers.RecordPaymentHandler(db))
		userGroup.GET("/payments/:orderID", paymentControllers.GetOrderPaymentHandler(db))

		// Order history
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
		userGroup.POST("/orders/:orderID/reorder", cartControllers.ReorderHandler(db))

		// Favorites
		userGroup.GET("/favorites", favoriteControllers.ListHandler(db))
		userGroup.POST("/favorites/:productID", favoriteControllers.ToggleHandler(db))
	}
}

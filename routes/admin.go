package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/auth"
	adminController "github.com/charddss/mcbyte-cafe/controllers/admin"
	analyticsControllers "github.com/charddss/mcbyte-cafe/controllers/analytics"
	productcontroller "github.com/charddss/mcbyte-cafe/controllers/product"
	"github.com/charddss/mcbyte-cafe/middleware"
)

// SetupAdminRoutes registers catalog management, user management, and the
// analytics dashboard.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminOnly)
	{
		// Catalog management
		adminGroup.POST("/products", productcontroller.CreateProduct(db))
		adminGroup.PUT("/products/:id", productcontroller.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productcontroller.DeleteProduct(db))
		adminGroup.GET("/menu/export", productcontroller.ExportMenuToExcel(db))
		adminGroup.POST("/menu/import", productcontroller.ImportMenuFromExcel(db))

		// User management
		adminGroup.GET("/users", adminController.GetAllUsers(db))
		adminGroup.POST("/users", auth.RegisterStaffHandler(db))
		adminGroup.PUT("/users/:userID/role", adminController.UpdateUserRole(db))
		adminGroup.PUT("/users/:userID/status", adminController.UpdateUserStatus(db))
		adminGroup.DELETE("/users/:userID", adminController.DeleteUser(db))

		// Analytics
		adminGroup.GET("/analytics", analyticsControllers.GetSummaryHandler(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/charddss/mcbyte-cafe/controllers/order"
	"github.com/charddss/mcbyte-cafe/middleware"
	"github.com/charddss/mcbyte-cafe/models"
)

// SetupStaffRoutes registers the fulfillment dashboard endpoints.
func SetupStaffRoutes(r *gin.Engine, db *gorm.DB) {
	staffGroup := r.Group("/staff")
	staffGroup.Use(middleware.ValidateToken,
		middleware.RequireRole(string(models.RoleStaff), string(models.RoleAdmin)))
	{
		staffGroup.GET("/orders", orderControllers.GetOrderBoardHandler(db))
		staffGroup.GET("/counts", orderControllers.StatusCountsHandler(db))
		staffGroup.GET("/ws", orderControllers.OrderWebSocketHandler)
		staffGroup.PUT("/orders/:orderID/advance", orderControllers.AdvanceStatusHandler(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the Auth, User, Staff,
// and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Customer routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Staff routes (JWT + staff/admin role)
	SetupStaffRoutes(r, db)

	// Admin routes (JWT admin role or API key)
	SetupAdminRoutes(r, db)
}

// Package analyticsControllers derives the admin dashboard figures from the
// raw order and user tables on demand. It is a pure read-side projection:
// nothing is cached and nothing is mutated.
package analyticsControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/models"
)

// ReferenceTimezone fixes the calendar day used by the "today" figures.
const ReferenceTimezone = "Asia/Manila"

type Summary struct {
	TotalSales   float64          `json:"total_sales"`
	TotalOrders  int64            `json:"total_orders"`
	TodayRevenue float64          `json:"today_revenue"`
	TodayOrders  int64            `json:"today_orders"`
	Roles        map[string]int64 `json:"roles"`
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Compute builds the summary from loaded rows. Only completed orders count
// toward sales figures; every order counts toward order totals. Role strings
// are normalized before bucketing and anything unrecognized lands in "other".
func Compute(orders []models.Order, users []models.User, now time.Time, loc *time.Location) Summary {
	s := Summary{
		Roles: map[string]int64{"admin": 0, "staff": 0, "customer": 0, "other": 0},
	}

	for _, o := range orders {
		s.TotalOrders++
		completed := o.Status == models.OrderStatusCompleted
		if completed {
			s.TotalSales += o.TotalPrice
		}
		if sameDay(o.CreatedAt, now, loc) {
			s.TodayOrders++
			if completed {
				s.TodayRevenue += o.TotalPrice
			}
		}
	}

	for _, u := range users {
		role := strings.ToLower(strings.TrimSpace(string(u.Role)))
		switch role {
		case "admin", "staff", "customer":
			s.Roles[role]++
		default:
			s.Roles["other"]++
		}
	}
	return s
}

// GET /admin/analytics
func GetSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		var users []models.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		loc, err := time.LoadLocation(ReferenceTimezone)
		if err != nil {
			loc = time.UTC
		}
		c.JSON(http.StatusOK, Compute(orders, users, time.Now(), loc))
	}
}

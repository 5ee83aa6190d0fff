// Package orderControllers covers the staff side of an order's life: the
// strict pending -> preparing -> ready -> completed progression, the status
// board, and the customer-facing order history.
package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/apperr"
	"github.com/charddss/mcbyte-cafe/models"
)

// AdvanceStatus moves an order to the next fulfillment stage. The terminal
// status fails with an invalid-transition error and leaves the row unchanged.
// Two staff advancing the same order concurrently is last-write-wins.
func AdvanceStatus(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrOrderNotFound
		}
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, apperr.ErrInvalidTransition
	}

	if err := db.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}
	order.Status = next

	BroadcastOrderEvent("status_updated", order)
	return &order, nil
}

// StatusCounts returns the number of orders in each fulfillment stage for the
// staff board header.
func StatusCounts(db *gorm.DB) (map[models.OrderStatus]int64, error) {
	counts := map[models.OrderStatus]int64{
		models.OrderStatusPending:   0,
		models.OrderStatusPreparing: 0,
		models.OrderStatusReady:     0,
		models.OrderStatusCompleted: 0,
	}

	var rows []struct {
		Status models.OrderStatus
		Total  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// -------- Handlers --------

// GET /staff/orders
func GetOrderBoardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /staff/counts
func StatusCountsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := StatusCounts(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}

// PUT /staff/orders/:orderID/advance
func AdvanceStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		order, err := AdvanceStatus(db, uint(orderID))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

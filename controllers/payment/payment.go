// Package paymentControllers records financial intent at checkout. No real
// payment network is involved: a Payment row is a status flag, and recording
// one never advances fulfillment.
package paymentControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/apperr"
	orderControllers "github.com/charddss/mcbyte-cafe/controllers/order"
	"github.com/charddss/mcbyte-cafe/models"
)

const DefaultMethod = "Cash on Delivery"

type RecordPaymentInput struct {
	OrderID           uint    `json:"order_id"` // optional, inferred from the pending order when zero
	Amount            float64 `json:"amount" binding:"required"`
	Method            string  `json:"method"`
	Paid              bool    `json:"paid"`
	CaptureOnDelivery bool    `json:"capture_on_delivery"`
}

// paymentRef builds a unique receipt reference, e.g. 20250614123000-<uuid>.
func paymentRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// RecordPayment updates the order first (total set to the charged amount,
// status stays pending; payment never advances fulfillment) and then inserts
// the Payment row, both inside one transaction so a payment can never exist
// without its order update.
func RecordPayment(db *gorm.DB, userID string, in RecordPaymentInput) (*models.Payment, error) {
	if userID == "" {
		return nil, apperr.ErrAuthenticationRequired
	}
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}

	// Only a pending order can be paid for; targeting anything further along
	// the workflow resolves to not-found rather than rewinding its status.
	var order models.Order
	var err error
	if in.OrderID != 0 {
		err = db.Where("id = ? AND user_id = ? AND status = ?", in.OrderID, userID, models.OrderStatusPending).
			First(&order).Error
	} else {
		err = db.Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
			Order("created_at ASC").
			First(&order).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrOrderNotFound
		}
		return nil, err
	}

	method := in.Method
	if method == "" {
		method = DefaultMethod
	}

	payment := models.Payment{
		OrderID:           order.ID,
		Amount:            in.Amount,
		Method:            method,
		Paid:              in.Paid,
		CaptureOnDelivery: in.CaptureOnDelivery,
		Reference:         paymentRef(),
		CreatedAt:         time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("total_price", in.Amount).Error; err != nil {
			return err
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	order.TotalPrice = in.Amount
	orderControllers.BroadcastOrderEvent("order_created", order)
	return &payment, nil
}

// -------- Handlers --------

// POST /user/checkout
func RecordPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, _ := userIDVal.(string)

		var in RecordPaymentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		payment, err := RecordPayment(db, userID, in)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

// GET /user/payments/:orderID
func GetOrderPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		orderID := c.Param("orderID")

		var payment models.Payment
		if err := db.
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("payments.order_id = ? AND orders.user_id = ?", orderID, userIDVal).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

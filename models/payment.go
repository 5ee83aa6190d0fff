package models

import "time"

// Payment records financial intent for an order. Created exactly once at
// checkout and never mutated afterward; it does not advance fulfillment.
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OrderID           uint      `gorm:"not null;index" json:"order_id"`
	Amount            float64   `json:"amount"`
	Method            string    `gorm:"default:'Cash on Delivery'" json:"method"`
	Paid              bool      `json:"paid"`
	CaptureOnDelivery bool      `json:"capture_on_delivery"`
	Reference         string    `gorm:"uniqueIndex" json:"reference"`
	CreatedAt         time.Time `json:"created_at"`
}

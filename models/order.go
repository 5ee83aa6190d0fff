package models

import "time"

type OrderStatus string

const (
	// Fulfillment statuses, strictly forward-moving
	OrderStatusPending   OrderStatus = "pending"   // active cart, awaiting checkout/fulfillment
	OrderStatusPreparing OrderStatus = "preparing" // staff started preparing
	OrderStatusReady     OrderStatus = "ready"     // ready for pickup/delivery
	OrderStatusCompleted OrderStatus = "completed" // terminal
)

// Next returns the following fulfillment stage. ok is false on the terminal
// status; stages are never skipped and never move backward.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusCompleted, true
	default:
		return s, false
	}
}

// Order is a user's order. At most one order per user may be "pending" at a
// time (the active cart); Migrate enforces that with a partial unique index.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     string      `gorm:"not null;index" json:"user_id"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status     OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalPrice float64     `json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
}

type CustomizationKind string

const (
	CustomizationDrink CustomizationKind = "drink"
	CustomizationNote  CustomizationKind = "note"
)

type DrinkSize string

const (
	SizeVenti   DrinkSize = "Venti"
	SizeGrande  DrinkSize = "Grande"
	SizeRegular DrinkSize = "Regular"
)

// Customization is a tagged variant chosen once at product-lookup time: drink
// categories carry size/ice/sugar, everything else a free-text request.
type Customization struct {
	Kind  CustomizationKind `gorm:"type:VARCHAR(10)" json:"kind"`
	Size  DrinkSize         `gorm:"type:VARCHAR(10)" json:"size,omitempty"`
	Ice   string            `gorm:"type:VARCHAR(10)" json:"ice,omitempty"`
	Sugar string            `gorm:"type:VARCHAR(10)" json:"sugar,omitempty"`
	Note  string            `json:"note,omitempty"`
}

func DrinkCustomization(size DrinkSize, ice, sugar string) Customization {
	return Customization{Kind: CustomizationDrink, Size: size, Ice: ice, Sugar: sugar}
}

func NoteCustomization(note string) Customization {
	return Customization{Kind: CustomizationNote, Note: note}
}

// OrderItem carries a denormalized product snapshot captured at add-time so
// later catalog edits do not alter placed orders. UnitPrice already includes
// the size surcharge.
type OrderItem struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	OrderID            uint          `gorm:"index" json:"order_id"`
	ProductID          uint          `json:"product_id"`
	ProductName        string        `json:"product_name"`
	ProductDescription string        `json:"product_description"`
	ProductImage       string        `json:"product_image"`
	ProductCategory    Category      `gorm:"type:VARCHAR(20)" json:"product_category"`
	UnitPrice          float64       `json:"unit_price"`
	Quantity           int           `json:"quantity"`
	Customization      Customization `gorm:"embedded;embeddedPrefix:custom_" json:"customization"`
	AddedAt            time.Time     `json:"added_at"`
}

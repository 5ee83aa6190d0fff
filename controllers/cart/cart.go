// Package cartControllers owns the active-cart rules: a user has zero or one
// pending order, and its stored total stays consistent with its line items at
// add time. Every mutating call returns the fresh cart so callers update
// their view directly instead of re-fetching on a side channel.
package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/apperr"
	"github.com/charddss/mcbyte-cafe/models"
	"github.com/charddss/mcbyte-cafe/pricing"
)

// pendingGroup collapses concurrent find-or-create calls for the same user so
// two rapid add-to-cart clicks cannot both observe "no pending order". The
// partial unique index on orders backstops it across processes.
var pendingGroup singleflight.Group

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size,omitempty"`
	Ice       string `json:"ice,omitempty"`
	Sugar     string `json:"sugar,omitempty"`
	Note      string `json:"note,omitempty"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// resolveCustomization picks the variant once, from the product's category,
// never from string comparison at render time.
func resolveCustomization(p models.Product, in AddItemInput) models.Customization {
	if p.Category.IsDrink() {
		size := models.DrinkSize(in.Size)
		if size == "" {
			size = models.SizeRegular
		}
		return models.DrinkCustomization(size, in.Ice, in.Sugar)
	}
	return models.NoteCustomization(in.Note)
}

func findOrCreatePendingOrder(tx *gorm.DB, userID string) (*models.Order, error) {
	v, err, _ := pendingGroup.Do(userID, func() (any, error) {
		var order models.Order
		err := tx.Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
			First(&order).Error
		if err == nil {
			return &order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		order = models.Order{
			UserID:    userID,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
		}
		if createErr := tx.Create(&order).Error; createErr != nil {
			return nil, createErr
		}
		return &order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Order), nil
}

// pendingItem resolves a line item only when it sits on the requesting user's
// pending order. Items on other users' carts or on orders that left the cart
// stage are invisible here, which keeps order history immutable.
func pendingItem(tx *gorm.DB, userID string, itemID uint) (*models.OrderItem, error) {
	if userID == "" {
		return nil, apperr.ErrAuthenticationRequired
	}
	var item models.OrderItem
	err := tx.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND orders.user_id = ? AND orders.status = ?",
			itemID, userID, models.OrderStatusPending).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validationf("cart item does not exist")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddItem locates or creates the user's pending order, appends a line item
// with the denormalized product snapshot, and bumps the stored order total by
// unit_price x quantity. Performs no writes without an authenticated user.
func AddItem(db *gorm.DB, userID string, in AddItemInput) (*models.OrderItem, []models.OrderItem, error) {
	if userID == "" {
		return nil, nil, apperr.ErrAuthenticationRequired
	}
	if in.Quantity < 1 {
		return nil, nil, apperr.Validationf("quantity must be at least 1")
	}

	var product models.Product
	if err := db.First(&product, "id = ?", in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Validationf("product does not exist")
		}
		return nil, nil, err
	}

	customization := resolveCustomization(product, in)
	unitPrice := pricing.UnitPrice(product.Price, customization)

	var item models.OrderItem
	write := func(tx *gorm.DB) error {
		order, err := findOrCreatePendingOrder(tx, userID)
		if err != nil {
			return err
		}
		item = models.OrderItem{
			OrderID:            order.ID,
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			ProductImage:       product.Image,
			ProductCategory:    product.Category,
			UnitPrice:          unitPrice,
			Quantity:           in.Quantity,
			Customization:      customization,
			AddedAt:            time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_price", gorm.Expr("total_price + ?", unitPrice*float64(in.Quantity))).
			Error
	}

	// Order creation, item insert, and the total bump commit together, so a
	// failed insert never strands an empty pending order. When a concurrent
	// request in another process wins the race against the unique pending
	// index, the whole transaction rolls back; the retry then finds the
	// winner's committed order and appends to it.
	if err := db.Transaction(write); err != nil {
		if err = db.Transaction(write); err != nil {
			return nil, nil, err
		}
	}

	cart, err := FetchActiveCart(db, userID)
	if err != nil {
		return nil, nil, err
	}
	return &item, cart, nil
}

// UpdateQuantity overwrites a line item's quantity on the user's own pending
// order. Quantities below 1 are rejected before any write; removal is an
// explicit separate action. The stored order total is intentionally left
// untouched here: displayed totals are always re-derived from live line items
// via the pricing helpers.
func UpdateQuantity(db *gorm.DB, userID string, itemID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, apperr.Validationf("quantity must be at least 1")
	}

	item, err := pendingItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line item from the user's pending order and, when it
// was the last one, the order itself, so empty pending orders never
// accumulate. Both steps run in one transaction.
func RemoveItem(db *gorm.DB, userID string, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		item, err := pendingItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.OrderItem{}).
			Where("order_id = ?", item.OrderID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		return tx.Where("id = ? AND status = ?", item.OrderID, models.OrderStatusPending).
			Delete(&models.Order{}).Error
	})
}

// FetchActiveCart returns the line items of the user's pending order, or an
// empty list when there is none. This is the read path that hydrates cart
// views after any external change.
func FetchActiveCart(db *gorm.DB, userID string) ([]models.OrderItem, error) {
	var order models.Order
	err := db.Preload("Items").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.OrderItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

// Reorder copies a historical order's items into staging inputs for a fresh
// checkout flow. History is never mutated.
func Reorder(db *gorm.DB, userID string, orderID uint) ([]AddItemInput, error) {
	var order models.Order
	if err := db.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrOrderNotFound
		}
		return nil, err
	}

	staged := make([]AddItemInput, 0, len(order.Items))
	for _, it := range order.Items {
		staged = append(staged, AddItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      string(it.Customization.Size),
			Ice:       it.Customization.Ice,
			Sugar:     it.Customization.Sugar,
			Note:      it.Customization.Note,
		})
	}
	return staged, nil
}

// -------- Handlers --------

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}

// POST /user/cart
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, cart, err := AddItem(db, currentUserID(c), in)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		subtotal := pricing.Subtotal(cart)
		c.JSON(http.StatusCreated, gin.H{
			"item":     item,
			"cart":     cart,
			"subtotal": subtotal,
			"tax":      pricing.Tax(subtotal),
			"total":    pricing.Total(subtotal, pricing.DefaultPolicy),
		})
	}
}

// PUT /user/cart/items/:itemID
func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		var in UpdateQuantityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateQuantity(db, currentUserID(c), uint(itemID), in.Quantity)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/items/:itemID
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		if err := RemoveItem(db, currentUserID(c), uint(itemID)); err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		cart, err := FetchActiveCart(db, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed", "cart": cart})
	}
}

// GET /user/cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := FetchActiveCart(db, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		subtotal := pricing.Subtotal(cart)
		c.JSON(http.StatusOK, gin.H{
			"items":    cart,
			"subtotal": subtotal,
			"tax":      pricing.Tax(subtotal),
			"total":    pricing.Total(subtotal, pricing.DefaultPolicy),
		})
	}
}

// POST /user/orders/:orderID/reorder
func ReorderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		staged, err := Reorder(db, currentUserID(c), uint(orderID))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": staged})
	}
}

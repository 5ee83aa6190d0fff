package cartControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/charddss/mcbyte-cafe/apperr"
	"github.com/charddss/mcbyte-cafe/models"
	"github.com/charddss/mcbyte-cafe/pricing"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	t.Helper()
	americano := models.Product{
		Name:        "Hot Americano",
		Category:    models.CategoryHotDrinks,
		Price:       250,
		Description: "Rich espresso with steamed milk",
		Rating:      4.7,
	}
	croissant := models.Product{
		Name:     "Butter Croissant",
		Category: models.CategoryPastries,
		Price:    180,
		Rating:   4.5,
	}
	require.NoError(t, db.Create(&americano).Error)
	require.NoError(t, db.Create(&croissant).Error)
	return americano, croissant
}

func TestAddItemCreatesSinglePendingOrder(t *testing.T) {
	db := openTestDB(t)
	americano, croissant := seedProducts(t, db)

	_, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1, Size: "Venti"})
	require.NoError(t, err)
	_, _, err = AddItem(db, "user-1", AddItemInput{ProductID: croissant.ID, Quantity: 2, Note: "warm please"})
	require.NoError(t, err)
	_, cart, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1})
	require.NoError(t, err)

	var pendingCount int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", "user-1", models.OrderStatusPending).
		Count(&pendingCount).Error)
	assert.Equal(t, int64(1), pendingCount)
	assert.Len(t, cart, 3)
}

func TestAddItemRequiresAuthentication(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	_, _, err := AddItem(db, "", AddItemInput{ProductID: americano.ID, Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestAddItemFoldsSizeSurchargeIntoUnitPrice(t *testing.T) {
	db := openTestDB(t)
	americano, croissant := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{
		ProductID: americano.ID, Quantity: 2, Size: "Venti", Ice: "Less", Sugar: "Normal",
	})
	require.NoError(t, err)
	assert.Equal(t, 280.0, item.UnitPrice)
	assert.Equal(t, models.CustomizationDrink, item.Customization.Kind)
	assert.Equal(t, models.SizeVenti, item.Customization.Size)

	// stored order total tracks unit_price x quantity at add time
	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", "user-1").Error)
	assert.Equal(t, 560.0, order.TotalPrice)

	// non-drink items take the note variant and no surcharge
	pastry, _, err := AddItem(db, "user-1", AddItemInput{
		ProductID: croissant.ID, Quantity: 1, Note: "no bag",
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, pastry.UnitPrice)
	assert.Equal(t, models.CustomizationNote, pastry.Customization.Kind)
	assert.Equal(t, "no bag", pastry.Customization.Note)
}

func TestAddItemSnapshotSurvivesCatalogEdit(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", americano.ID).
		Updates(map[string]any{"name": "Renamed", "price": 999.0}).Error)

	var stored models.OrderItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, "Hot Americano", stored.ProductName)
	assert.Equal(t, 250.0, stored.UnitPrice)
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = UpdateQuantity(db, "user-1", item.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var stored models.OrderItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 3, stored.Quantity)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestUpdateQuantityLeavesStoredTotalAlone(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1})
	require.NoError(t, err)

	updated, err := UpdateQuantity(db, "user-1", item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// the persisted total is only authoritative at add time; display totals
	// are re-derived from live items
	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", "user-1").Error)
	assert.Equal(t, 250.0, order.TotalPrice)

	cart, err := FetchActiveCart(db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, pricing.Subtotal(cart))
}

func TestRemoveLastItemDeletesOrder(t *testing.T) {
	db := openTestDB(t)
	americano, croissant := seedProducts(t, db)

	first, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1})
	require.NoError(t, err)
	second, _, err := AddItem(db, "user-1", AddItemInput{ProductID: croissant.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, "user-1", first.ID))

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", first.OrderID).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	require.NoError(t, RemoveItem(db, "user-1", second.ID))

	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", first.OrderID).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestFailedAddItemLeavesNoEmptyOrder(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	// force the line-item insert to fail; order creation must roll back with it
	require.NoError(t, db.Exec("DROP TABLE order_items").Error)

	_, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 1})
	require.Error(t, err)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCartMutationsScopedToOwnPendingOrder(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 2})
	require.NoError(t, err)

	// another user cannot touch the item
	_, err = UpdateQuantity(db, "user-2", item.ID, 99)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	err = RemoveItem(db, "user-2", item.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var stored models.OrderItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 2, stored.Quantity)
}

func TestCompletedOrderItemsAreImmutable(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", item.OrderID).
		Update("status", models.OrderStatusCompleted).Error)

	// even the owner cannot rewrite or delete line items once the order
	// leaves the cart stage
	_, err = UpdateQuantity(db, "user-1", item.ID, 99)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	err = RemoveItem(db, "user-1", item.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var historic models.Order
	require.NoError(t, db.Preload("Items").First(&historic, "id = ?", item.OrderID).Error)
	require.Len(t, historic.Items, 1)
	assert.Equal(t, 2, historic.Items[0].Quantity)
}

func TestFetchActiveCartEmptyWithoutPendingOrder(t *testing.T) {
	db := openTestDB(t)

	cart, err := FetchActiveCart(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestReorderCopiesWithoutMutatingHistory(t *testing.T) {
	db := openTestDB(t)
	americano, _ := seedProducts(t, db)

	item, _, err := AddItem(db, "user-1", AddItemInput{ProductID: americano.ID, Quantity: 2, Size: "Grande"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", item.OrderID).
		Update("status", models.OrderStatusCompleted).Error)

	staged, err := Reorder(db, "user-1", item.OrderID)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, americano.ID, staged[0].ProductID)
	assert.Equal(t, 2, staged[0].Quantity)
	assert.Equal(t, "Grande", staged[0].Size)

	// history untouched
	var historic models.Order
	require.NoError(t, db.Preload("Items").First(&historic, "id = ?", item.OrderID).Error)
	assert.Equal(t, models.OrderStatusCompleted, historic.Status)
	assert.Len(t, historic.Items, 1)

	// reordering someone else's order is not found
	_, err = Reorder(db, "user-2", item.OrderID)
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)
}

package paymentControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/charddss/mcbyte-cafe/apperr"
	"github.com/charddss/mcbyte-cafe/models"
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

func TestRecordPaymentUpdatesOrderThenInsertsPayment(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{UserID: "user-1", Status: models.OrderStatusPending, TotalPrice: 500}
	require.NoError(t, db.Create(&order).Error)

	payment, err := RecordPayment(db, "user-1", RecordPaymentInput{
		Amount:            891,
		CaptureOnDelivery: true,
	})
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.Equal(t, 891.0, payment.Amount)
	assert.Equal(t, DefaultMethod, payment.Method)
	assert.False(t, payment.Paid)
	assert.NotEmpty(t, payment.Reference)

	// order total reflects the charged amount; status stays pending because
	// payment never advances fulfillment
	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, 891.0, stored.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestRecordPaymentResolvesExplicitOrderID(t *testing.T) {
	db := openTestDB(t)
	completed := models.Order{UserID: "user-1", Status: models.OrderStatusCompleted}
	require.NoError(t, db.Create(&completed).Error)
	pending := models.Order{UserID: "user-1", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&pending).Error)

	payment, err := RecordPayment(db, "user-1", RecordPaymentInput{
		OrderID: pending.ID,
		Amount:  150,
		Method:  "GCash",
		Paid:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, pending.ID, payment.OrderID)
	assert.Equal(t, "GCash", payment.Method)
	assert.True(t, payment.Paid)
}

func TestRecordPaymentRejectsNonPendingOrder(t *testing.T) {
	db := openTestDB(t)
	completed := models.Order{UserID: "user-1", Status: models.OrderStatusCompleted, TotalPrice: 500}
	require.NoError(t, db.Create(&completed).Error)
	pending := models.Order{UserID: "user-1", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&pending).Error)

	_, err := RecordPayment(db, "user-1", RecordPaymentInput{
		OrderID: completed.ID,
		Amount:  150,
	})
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)

	// the completed order keeps its status and total, and no payment exists
	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", completed.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
	assert.Equal(t, 500.0, stored.TotalPrice)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestRecordPaymentWithNoResolvableOrder(t *testing.T) {
	db := openTestDB(t)

	_, err := RecordPayment(db, "user-1", RecordPaymentInput{Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestRecordPaymentRequiresAuthentication(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{UserID: "user-1", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	_, err := RecordPayment(db, "", RecordPaymentInput{Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{UserID: "user-1", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	_, err := RecordPayment(db, "user-1", RecordPaymentInput{Amount: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordPaymentCannotTargetAnotherUsersOrder(t *testing.T) {
	db := openTestDB(t)
	order := models.Order{UserID: "user-1", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	_, err := RecordPayment(db, "user-2", RecordPaymentInput{OrderID: order.ID, Amount: 100})
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)
}

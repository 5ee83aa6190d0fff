package models

import "gorm.io/gorm"

// Migrate creates all tables and the partial unique index that guarantees a
// user never holds more than one pending order, even under racing add-to-cart
// requests. The WHERE-clause index syntax works on both Postgres and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Favorite{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_pending_per_user
		 ON orders (user_id) WHERE status = 'pending'`,
	).Error
}

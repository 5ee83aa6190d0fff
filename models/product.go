package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the fixed menu grouping. Drink categories get size/ice/sugar
// customization, the rest a free-text note.
type Category string

const (
	CategoryHotDrinks  Category = "Hot Drinks"
	CategoryColdDrinks Category = "Cold Drinks"
	CategoryPastries   Category = "Pastries"
	CategoryMeals      Category = "Meals"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHotDrinks, CategoryColdDrinks, CategoryPastries, CategoryMeals:
		return true
	}
	return false
}

func (c Category) IsDrink() bool {
	return c == CategoryHotDrinks || c == CategoryColdDrinks
}

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Category    Category       `gorm:"type:VARCHAR(20);not null;index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"` // pesos
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Rating      float64        `json:"rating"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

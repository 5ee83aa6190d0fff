package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charddss/mcbyte-cafe/models"
)

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating"`
}

// UpdateProduct applies a partial edit to a menu item. Placed orders are not
// affected: line items keep the snapshot captured at add time.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		var in UpdateProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Category != nil {
			if !models.Category(*in.Category).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			updates["category"] = *in.Category
		}
		if in.Price != nil {
			if *in.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			updates["price"] = *in.Price
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Image != nil {
			updates["image"] = *in.Image
		}
		if in.Rating != nil {
			updates["rating"] = *in.Rating
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}

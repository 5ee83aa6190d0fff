// Package favoriteControllers toggles the (user, product) favorite relation.
// Optimistic toggling is fine here; nothing financial depends on it and the
// unique index keeps double-toggles harmless.
package favoriteControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charddss/mcbyte-cafe/apperr"
	"github.com/charddss/mcbyte-cafe/models"
)

// Toggle flips membership for the pair and reports the resulting state.
func Toggle(db *gorm.DB, userID string, productID uint) (bool, error) {
	if userID == "" {
		return false, apperr.ErrAuthenticationRequired
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.Validationf("product does not exist")
		}
		return false, err
	}

	var existing models.Favorite
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	if err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	fav := models.Favorite{UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	// racing double-clicks collapse onto the unique (user, product) index
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}

// List returns the user's favorited products with the product rows embedded.
func List(db *gorm.DB, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// -------- Handlers --------

// POST /user/favorites/:productID
func ToggleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, _ := userIDVal.(string)

		productID, err := strconv.ParseUint(c.Param("productID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		favorited, err := Toggle(db, userID, uint(productID))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorited": favorited})
	}
}

// GET /user/favorites
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, _ := userIDVal.(string)

		favorites, err := List(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, favorites)
	}
}

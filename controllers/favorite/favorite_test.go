package favoriteControllers

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

func TestToggleFlipsMembership(t *testing.T) {
	db := openTestDB(t)
	product := models.Product{Name: "Iced Latte", Category: models.CategoryColdDrinks, Price: 285}
	require.NoError(t, db.Create(&product).Error)

	favorited, err := Toggle(db, "user-1", product.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorites, err := List(db, "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Iced Latte", favorites[0].Product.Name)

	favorited, err = Toggle(db, "user-1", product.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	favorites, err = List(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleUnknownProduct(t *testing.T) {
	db := openTestDB(t)

	_, err := Toggle(db, "user-1", 99)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestToggleRequiresAuthentication(t *testing.T) {
	db := openTestDB(t)

	_, err := Toggle(db, "", 1)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

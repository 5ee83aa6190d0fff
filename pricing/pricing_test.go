package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charddss/mcbyte-cafe/models"
)

func TestUnitPriceSizeSurcharge(t *testing.T) {
	venti := models.DrinkCustomization(models.SizeVenti, "Less", "Normal")
	assert.Equal(t, 280.0, UnitPrice(250, venti))

	// ice/sugar selections never change the price
	ventiOther := models.DrinkCustomization(models.SizeVenti, "Normal", "Less")
	assert.Equal(t, UnitPrice(250, venti), UnitPrice(250, ventiOther))

	grande := models.DrinkCustomization(models.SizeGrande, "Normal", "Normal")
	assert.Equal(t, 270.0, UnitPrice(250, grande))

	regular := models.DrinkCustomization(models.SizeRegular, "Normal", "Normal")
	assert.Equal(t, 250.0, UnitPrice(250, regular))

	// non-drinks carry no size surcharge
	note := models.NoteCustomization("no onions")
	assert.Equal(t, 180.0, UnitPrice(180, note))
}

func TestCartTotals(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 250, Quantity: 1},
		{UnitPrice: 280, Quantity: 2},
	}

	subtotal := Subtotal(items)
	assert.Equal(t, 810.0, subtotal)
	assert.Equal(t, 81.0, Tax(subtotal))
	assert.Equal(t, 891.0, Total(subtotal, DefaultPolicy))
}

func TestDiscountPolicy(t *testing.T) {
	items := []models.OrderItem{{UnitPrice: 100, Quantity: 10}}
	subtotal := Subtotal(items)

	charged := Policy{Rate: 0.2}
	assert.Equal(t, 900.0, Total(subtotal, charged))

	// a display-only promotional rate never reaches the charged total
	banner := Policy{Rate: 0.2, DisplayOnly: true}
	assert.Equal(t, 1100.0, Total(subtotal, banner))
}

// Package pricing centralizes every figure that touches a total: the size
// surcharge table, the tax rate, and the single discount policy. Displayed
// totals must always be recomputed from live line items with these helpers;
// Order.TotalPrice is only authoritative at the moment it was written.
package pricing

import "github.com/charddss/mcbyte-cafe/models"

// TaxRate is applied to the subtotal on every cart, payment, and receipt view.
const TaxRate = 0.10

// Size surcharges, folded into the unit price once per unit at add time.
var sizeSurcharge = map[models.DrinkSize]float64{
	models.SizeVenti:   30,
	models.SizeGrande:  20,
	models.SizeRegular: 0,
}

// SizeSurcharge returns the per-unit surcharge for a drink size. Unknown
// sizes (and non-drink items, which carry no size) add nothing.
func SizeSurcharge(size models.DrinkSize) float64 {
	return sizeSurcharge[size]
}

// UnitPrice resolves the charged per-unit price for a product and its
// customization. Ice and sugar selections never affect price.
func UnitPrice(base float64, c models.Customization) float64 {
	if c.Kind == models.CustomizationDrink {
		return base + SizeSurcharge(c.Size)
	}
	return base
}

// Policy is the one centrally-defined discount policy. The original app
// showed 20% in one view and charged 0% in another; rather than guessing,
// the rate a view displays and the rate folded into the charged total are
// the same field, and DisplayOnly marks a promotional banner rate that must
// never reach a charged amount.
type Policy struct {
	Rate        float64
	DisplayOnly bool
}

// DefaultPolicy charges no discount. The promotional 20% banner is opted into
// per deployment via DisplayOnly.
var DefaultPolicy = Policy{Rate: 0, DisplayOnly: false}

// Subtotal sums unit price times quantity over line items.
func Subtotal(items []models.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// Tax returns the tax due on a subtotal.
func Tax(subtotal float64) float64 {
	return subtotal * TaxRate
}

// Total is subtotal plus tax, minus the policy discount when it is a real
// charged discount rather than a display-only banner.
func Total(subtotal float64, p Policy) float64 {
	total := subtotal + Tax(subtotal)
	if p.DisplayOnly {
		return total
	}
	return total - subtotal*p.Rate
}

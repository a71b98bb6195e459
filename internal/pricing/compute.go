package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Compute returns the storefront price for one carat selection:
// base price scaled by the carat multiplier, then discounted.
// The result is rounded to cents.
func Compute(basePrice, multiplier, discountPercent decimal.Decimal) decimal.Decimal {
	price := basePrice.Mul(multiplier)
	if discountPercent.Sign() > 0 {
		factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
		price = price.Mul(factor)
	}
	return price.Round(2)
}

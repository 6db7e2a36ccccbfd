package domain

import (
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PricingConfig carries the discount multipliers. The 25% subscription and
// 20% promotional discounts are defaults, not business law baked into code.
type PricingConfig struct {
	SubscriptionRate decimal.Decimal
	PromoRate        decimal.Decimal
	CurrencyLabel    string
}

// BasePrice converts the catalog price from minor units. A missing price
// yields zero, which produces a zero quote rather than an error.
func BasePrice(product *catalogdomain.Product) decimal.Decimal {
	if product == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(product.PriceCents).Div(oneHundred)
}

// UnitPrice applies both discounts to the base price of a single item.
func (c PricingConfig) UnitPrice(product *catalogdomain.Product) decimal.Decimal {
	return BasePrice(product).Mul(c.SubscriptionRate).Mul(c.PromoRate)
}

// ComputeQuote derives the full quote for a plan and quantity.
func (c PricingConfig) ComputeQuote(product *catalogdomain.Product, plan PlanType, quantity int) Quote {
	if quantity < 1 {
		quantity = 1
	}
	base := BasePrice(product)
	unit := c.UnitPrice(product)
	itemCount := plan.ItemCount()
	two := decimal.NewFromInt(2)

	return Quote{
		UnitPrice: unit,
		ItemCount: itemCount,
		Quantity:  quantity,
		LineTotal: unit.Mul(decimal.NewFromInt(int64(itemCount))).Mul(decimal.NewFromInt(int64(quantity))),
		SingleNow: unit,
		SingleWas: base,
		DoubleNow: unit.Mul(two),
		DoubleWas: base.Mul(two),
	}
}

// DiscountDescriptor renders the applied discounts, e.g.
// "25% subscription + 20% sale".
func (c PricingConfig) DiscountDescriptor() string {
	one := decimal.NewFromInt(1)
	sub := one.Sub(c.SubscriptionRate).Mul(oneHundred)
	promo := one.Sub(c.PromoRate).Mul(oneHundred)
	return sub.String() + "% subscription + " + promo.String() + "% sale"
}

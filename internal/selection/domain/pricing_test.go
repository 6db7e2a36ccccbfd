package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
)

func testPricing() PricingConfig {
	return PricingConfig{
		SubscriptionRate: decimal.RequireFromString("0.75"),
		PromoRate:        decimal.RequireFromString("0.8"),
		CurrencyLabel:    "Rs.",
	}
}

func TestComputeQuoteKeepsPrecisionUntilRender(t *testing.T) {
	// 9999 cents stresses rounding: 99.99 * 0.75 * 0.8 = 59.994.
	product := &catalogdomain.Product{PriceCents: 9999}
	quote := testPricing().ComputeQuote(product, PlanSingle, 1)

	if got := quote.UnitPrice.String(); got != "59.994" {
		t.Fatalf("expected full-precision unit price 59.994, got %s", got)
	}
	view := quote.Render("Rs.")
	if view.UnitPrice != "59.99" {
		t.Fatalf("expected rendered unit price 59.99, got %s", view.UnitPrice)
	}
}

func TestComputeQuoteZeroPriceProduct(t *testing.T) {
	quote := testPricing().ComputeQuote(&catalogdomain.Product{}, PlanDouble, 2)
	if !quote.LineTotal.IsZero() {
		t.Fatalf("expected zero line total for zero-price product, got %s", quote.LineTotal)
	}
	if quote.ItemCount != 2 || quote.Quantity != 2 {
		t.Fatalf("unexpected counts: items %d quantity %d", quote.ItemCount, quote.Quantity)
	}
}

func TestComputeQuoteNormalizesQuantity(t *testing.T) {
	product := &catalogdomain.Product{PriceCents: 10000}
	quote := testPricing().ComputeQuote(product, PlanSingle, -3)
	if quote.Quantity != 1 {
		t.Fatalf("expected quantity normalized to 1, got %d", quote.Quantity)
	}
}

func TestDiscountDescriptor(t *testing.T) {
	if got := testPricing().DiscountDescriptor(); got != "25% subscription + 20% sale" {
		t.Fatalf("unexpected descriptor: %q", got)
	}
}

func TestParsePlanType(t *testing.T) {
	if plan, err := ParsePlanType("  Double "); err != nil || plan != PlanDouble {
		t.Fatalf("expected double, got %v (%v)", plan, err)
	}
	if _, err := ParsePlanType("triple"); err == nil {
		t.Fatalf("expected error for unknown plan type")
	}
}

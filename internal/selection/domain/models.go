// Package domain holds the selection state and pricing contract for the
// subscription product page.
package domain

import (
	"context"
	"errors"
	"strings"

	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// PlanType selects how many items one subscription line represents.
type PlanType string

const (
	PlanSingle PlanType = "single"
	PlanDouble PlanType = "double"
)

// ParsePlanType validates a plan type received from the outside.
func ParsePlanType(value string) (PlanType, error) {
	switch PlanType(strings.ToLower(strings.TrimSpace(value))) {
	case PlanSingle:
		return PlanSingle, nil
	case PlanDouble:
		return PlanDouble, nil
	default:
		return "", ErrInvalidPlanType
	}
}

// ItemCount is 1 for Single and 2 for Double.
func (p PlanType) ItemCount() int {
	if p == PlanDouble {
		return 2
	}
	return 1
}

// Quote is the derived price for the current selection. Values keep full
// precision; rounding to two decimals happens only when rendering.
type Quote struct {
	UnitPrice decimal.Decimal
	ItemCount int
	Quantity  int
	LineTotal decimal.Decimal

	// Card prices mirror the plan cards on the page: discounted and base
	// price for one item (single) and for two (double).
	SingleNow decimal.Decimal
	SingleWas decimal.Decimal
	DoubleNow decimal.Decimal
	DoubleWas decimal.Decimal
}

// QuoteView is the rendered form of a Quote: two-decimal strings, half-up.
type QuoteView struct {
	Currency  string `json:"currency"`
	UnitPrice string `json:"unit_price"`
	ItemCount int    `json:"item_count"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	SingleNow string `json:"single_now"`
	SingleWas string `json:"single_was"`
	DoubleNow string `json:"double_now"`
	DoubleWas string `json:"double_was"`
}

// Render rounds the quote for display.
func (q Quote) Render(currency string) QuoteView {
	return QuoteView{
		Currency:  currency,
		UnitPrice: q.UnitPrice.StringFixed(2),
		ItemCount: q.ItemCount,
		Quantity:  q.Quantity,
		LineTotal: q.LineTotal.StringFixed(2),
		SingleNow: q.SingleNow.StringFixed(2),
		SingleWas: q.SingleWas.StringFixed(2),
		DoubleNow: q.DoubleNow.StringFixed(2),
		DoubleWas: q.DoubleWas.StringFixed(2),
	}
}

// SessionView is the externally visible selection session state.
type SessionView struct {
	ID              string                    `json:"id"`
	PlanType        PlanType                  `json:"plan_type"`
	SelectedFlavors []string                  `json:"selected_flavors"`
	Quantity        int                       `json:"quantity"`
	ImageIndex      int                       `json:"image_index"`
	Valid           bool                      `json:"valid"`
	Quote           QuoteView                 `json:"quote"`
	Content         catalogdomain.PlanContent `json:"content"`
}

// Service manages selection sessions and derives quotes and cart submissions
// from them.
type Service interface {
	Create(ctx context.Context) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	SetPlanType(ctx context.Context, id string, plan PlanType) (*SessionView, error)
	SetFlavor(ctx context.Context, id string, slot int, flavor string) (*SessionView, error)
	SetQuantity(ctx context.Context, id string, quantity int) (*SessionView, error)
	SetImage(ctx context.Context, id string, index int) (*SessionView, error)
	NavigateImage(ctx context.Context, id string, direction int) (*SessionView, error)
	BuildLineItems(ctx context.Context, id string) ([]cartdomain.LineItem, *SessionView, error)
}

var (
	ErrSessionNotFound       = errors.New("session_not_found")
	ErrInvalidPlanType       = errors.New("invalid_plan_type")
	ErrInvalidFlavorSlot     = errors.New("invalid_flavor_slot")
	ErrNotValidForSubmission = errors.New("not_valid_for_submission")
	ErrNoVariantMatch        = errors.New("no_variant_match")
)

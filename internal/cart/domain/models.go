// Package domain models the external cart collaborator. The cart stores line
// item properties verbatim and always prices lines at the variant's catalog
// price; subscription pricing intent travels exclusively through properties.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Line item property keys. These are the only channel carrying subscription
// pricing into the cart, so their names are part of the wire contract.
const (
	PropSubscriptionType  = "_subscription_type"
	PropSubscriptionPrice = "_subscription_price"
	PropOriginalPrice     = "_original_price"
	PropDiscountApplied   = "_discount_applied"
	PropFlavorPosition    = "_flavor_position"
	PropLineKey           = "_line_key"
)

// LineItem is one entry submitted to the cart add endpoint.
type LineItem struct {
	VariantID  string            `json:"id"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Item is one entry read back from the live cart.
type Item struct {
	Key          string            `json:"key"`
	ProductTitle string            `json:"product_title"`
	VariantID    string            `json:"variant_id"`
	Quantity     int               `json:"quantity"`
	PriceCents   int64             `json:"price"`
	Properties   map[string]string `json:"properties"`
}

// LineKey returns the stable identity of this line for display lookups: the
// _line_key property injected at submission time, falling back to the cart's
// own line key for items this service did not submit.
func (i Item) LineKey() string {
	if key, ok := i.Properties[PropLineKey]; ok && key != "" {
		return key
	}
	return i.Key
}

// CartState is a read-only snapshot of the live cart.
type CartState struct {
	Items           []Item `json:"items"`
	TotalPriceCents int64  `json:"total_price"`
	ItemCount       int    `json:"item_count"`
}

// Client talks to the external cart API. Calls are single-attempt; retry
// policy is deliberately out of scope.
type Client interface {
	AddItems(ctx context.Context, items []LineItem) (*CartState, error)
	GetCart(ctx context.Context) (*CartState, error)
}

// APIError is a non-2xx response from the cart API.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cart_api_error: status %d", e.Status)
}

var ErrEmptySubmission = errors.New("empty_submission")

package events

// Cart notification topics. The host page publishes EventCartUpdated whenever
// the external cart changes; the service itself publishes EventCartItemsAdded
// after a successful add-to-cart submission.
const (
	EventCartUpdated    = "cart.updated"
	EventCartItemsAdded = "cart.items_added"
)

// ItemsAddedPayload captures the minimal data describing a completed
// add-to-cart submission.
type ItemsAddedPayload struct {
	SessionID string `json:"session_id"`
	PlanType  string `json:"plan_type"`
	ItemCount int    `json:"item_count"`
}

// ToMap converts the payload into an event-friendly map.
func (p ItemsAddedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"item_count": p.ItemCount,
	}
	if p.SessionID != "" {
		payload["session_id"] = p.SessionID
	}
	if p.PlanType != "" {
		payload["plan_type"] = p.PlanType
	}
	return payload
}

// CartUpdatedPayload identifies the source of an external cart change.
type CartUpdatedPayload struct {
	Source string `json:"source"`
}

// ToMap converts the payload into an event-friendly map.
func (p CartUpdatedPayload) ToMap() map[string]any {
	payload := map[string]any{}
	if p.Source != "" {
		payload["source"] = p.Source
	}
	return payload
}

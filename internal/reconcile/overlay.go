package reconcile

import "errors"

// LineOverlay asks the rendering surface to show subscription pricing for one
// cart line, identified by its stable line key. The authoritative server-side
// price is untouched; this is display-only.
type LineOverlay struct {
	LineKey string `json:"line_key"`

	OriginalUnitPrice     string `json:"original_unit_price"`
	SubscriptionUnitPrice string `json:"subscription_unit_price"`
	OriginalLineTotal     string `json:"original_line_total"`
	SubscriptionLineTotal string `json:"subscription_line_total"`
}

// TotalOverlay replaces the displayed cart total with the recomputed
// effective total.
type TotalOverlay struct {
	OriginalTotal string `json:"original_total"`
	DisplayTotal  string `json:"display_total"`
}

// Surface is the rendering collaborator. Lookup is by line identity; applying
// an overlay that matches what is already shown must be a no-op, since the
// agent re-runs on every cart notification.
type Surface interface {
	ApplyLine(overlay LineOverlay) error
	ApplyTotal(overlay TotalOverlay)
	ClearLines(keep map[string]struct{})
}

// ErrOverlayTargetNotFound means the surface has no display node for the
// line key. The agent skips that line and keeps going.
var ErrOverlayTargetNotFound = errors.New("overlay_target_not_found")

// Package reconcile derives display prices for subscription-tagged cart
// lines and hands them to the rendering surface. The server-side cart total
// used at checkout is never touched; every pass is cosmetic and idempotent.
package reconcile

import (
	"context"
	"errors"
	"sync/atomic"

	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	"github.com/smallbiznis/storefront/internal/events"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

type Agent struct {
	cart    cartdomain.Client
	surface Surface
	log     *zap.Logger
	cfg     Config
	metrics *metrics.AgentMetrics

	// inFlight is a cooperative guard: a pass started while another runs is
	// skipped, not queued. Passes are idempotent and re-triggered by the next
	// cart notification, so dropping one loses nothing.
	inFlight atomic.Bool
}

type AgentParam struct {
	fx.In

	Cart    cartdomain.Client
	Surface Surface
	Log     *zap.Logger
	Config  Config `optional:"true"`
}

func NewAgent(p AgentParam) *Agent {
	return &Agent{
		cart:    p.Cart,
		surface: p.Surface,
		log:     p.Log.Named("reconcile.agent"),
		cfg:     p.Config.withDefaults(),
		metrics: metrics.Agent(),
	}
}

// Subscribe registers the agent on the cart notification channel. Dispatch is
// synchronous, so by the time a publisher's Publish returns the pass for that
// notification has already run (or been skipped as redundant).
func (a *Agent) Subscribe(bus *events.Bus) error {
	handler := func(ctx context.Context, event events.Event) {
		if err := a.RunOnce(ctx); err != nil {
			a.log.Warn("reconcile pass failed",
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
		}
	}
	if err := bus.Subscribe(events.EventCartUpdated, handler); err != nil {
		return err
	}
	return bus.Subscribe(events.EventCartItemsAdded, handler)
}

// RunOnce executes a single overlay pass: fetch the live cart, compute
// effective prices for subscription lines, and apply overlays by line
// identity. Failures are logged, never surfaced; the authoritative price
// remains correct regardless.
func (a *Agent) RunOnce(ctx context.Context) error {
	if !a.inFlight.CompareAndSwap(false, true) {
		a.log.Debug("overlay pass already in flight, skipping")
		a.metrics.IncPass(metrics.PassSkippedInFlight)
		return nil
	}
	defer a.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()

	cart, err := a.cart.GetCart(ctx)
	if err != nil {
		a.log.Warn("cart fetch failed, aborting overlay pass", zap.Error(err))
		a.metrics.IncPass(metrics.PassFailed)
		return err
	}

	overlays, keep, displayTotal, hasSubscription := a.computePass(cart)

	a.surface.ClearLines(keep)
	applied := 0
	for _, overlay := range overlays {
		if err := a.surface.ApplyLine(overlay); err != nil {
			if errors.Is(err, ErrOverlayTargetNotFound) {
				a.log.Debug("overlay target not found, skipping line",
					zap.String("line_key", overlay.LineKey))
				continue
			}
			a.log.Warn("overlay apply failed", zap.String("line_key", overlay.LineKey), zap.Error(err))
			continue
		}
		applied++
	}

	if hasSubscription {
		a.surface.ApplyTotal(TotalOverlay{
			OriginalTotal: centsToPrice(cart.TotalPriceCents).StringFixed(2),
			DisplayTotal:  displayTotal.StringFixed(2),
		})
	}

	a.metrics.IncPass(metrics.PassApplied)
	a.metrics.AddOverlays(applied)
	return nil
}

// computePass derives the overlays and the recomputed display grand total.
// Non-subscription items get no overlay but still count at their own price
// toward the total.
func (a *Agent) computePass(cart *cartdomain.CartState) ([]LineOverlay, map[string]struct{}, decimal.Decimal, bool) {
	overlays := make([]LineOverlay, 0, len(cart.Items))
	keep := make(map[string]struct{}, len(cart.Items))
	displayTotal := decimal.Zero
	hasSubscription := false

	for _, item := range cart.Items {
		quantity := decimal.NewFromInt(int64(item.Quantity))
		catalogUnit := centsToPrice(item.PriceCents)

		raw, tagged := item.Properties[cartdomain.PropSubscriptionPrice]
		if !tagged || raw == "" {
			displayTotal = displayTotal.Add(catalogUnit.Mul(quantity))
			continue
		}
		hasSubscription = true

		originalUnit := parsePrice(item.Properties[cartdomain.PropOriginalPrice], catalogUnit)
		subscriptionUnit := parsePrice(raw, originalUnit)

		displayTotal = displayTotal.Add(subscriptionUnit.Mul(quantity))
		keep[item.LineKey()] = struct{}{}
		overlays = append(overlays, LineOverlay{
			LineKey:               item.LineKey(),
			OriginalUnitPrice:     originalUnit.StringFixed(2),
			SubscriptionUnitPrice: subscriptionUnit.StringFixed(2),
			OriginalLineTotal:     originalUnit.Mul(quantity).StringFixed(2),
			SubscriptionLineTotal: subscriptionUnit.Mul(quantity).StringFixed(2),
		})
	}

	return overlays, keep, displayTotal, hasSubscription
}

// parsePrice parses a decimal property value, falling back when absent or
// unparseable.
func parsePrice(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func centsToPrice(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(oneHundred)
}

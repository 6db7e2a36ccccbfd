package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/cache"
	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	selectiondomain "github.com/smallbiznis/storefront/internal/selection/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// session is the single-owner mutable selection state. All mutation goes
// through withSession, which serializes access per session.
type session struct {
	mu sync.Mutex

	id         snowflake.ID
	product    *catalogdomain.Product
	plan       selectiondomain.PlanType
	flavors    []string
	quantity   int
	imageIndex int
	createdAt  time.Time
}

type Service struct {
	catalog catalogdomain.Service
	log     *zap.Logger
	clk     clock.Clock

	genID    *snowflake.Node
	pricing  selectiondomain.PricingConfig
	ttl      time.Duration
	sessions *cache.TTLCache[string, *session]
}

type ServiceParam struct {
	fx.In

	Catalog catalogdomain.Service
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Cfg     config.Config
}

func NewService(p ServiceParam) selectiondomain.Service {
	return &Service{
		catalog: p.Catalog,
		log:     p.Log.Named("selection.service"),
		clk:     p.Clock,
		genID:   p.GenID,
		pricing: selectiondomain.PricingConfig{
			SubscriptionRate: p.Cfg.SubscriptionRate,
			PromoRate:        p.Cfg.PromoRate,
			CurrencyLabel:    p.Cfg.CurrencyLabel,
		},
		ttl:      p.Cfg.SessionTTL,
		sessions: cache.NewTTLCache[string, *session](),
	}
}

// Create starts a session with page-load defaults: Single plan, first catalog
// flavor, quantity 1, image 0. The catalog snapshot is pinned for the
// session's lifetime.
func (s *Service) Create(ctx context.Context) (*selectiondomain.SessionView, error) {
	product, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	defaultFlavor := ""
	if tags := product.FlavorTags(); len(tags) > 0 {
		defaultFlavor = tags[0]
	}

	sess := &session{
		id:        s.genID.Generate(),
		product:   product,
		plan:      selectiondomain.PlanSingle,
		flavors:   []string{defaultFlavor},
		quantity:  1,
		createdAt: s.clk.Now(),
	}
	s.sessions.Set(sess.id.String(), sess, s.ttl)

	s.log.Debug("selection session created", zap.String("session_id", sess.id.String()))
	return s.view(sess), nil
}

func (s *Service) Get(_ context.Context, id string) (*selectiondomain.SessionView, error) {
	return s.withSession(id, func(sess *session) error { return nil })
}

// SetPlanType switches the plan. Switching to Double with fewer than two
// flavors duplicates slot 0 into slot 1 as a placeholder; switching to Single
// collapses to slot 0. Validity is re-derived in the returned view, so a
// duplicated placeholder still blocks submission.
func (s *Service) SetPlanType(_ context.Context, id string, plan selectiondomain.PlanType) (*selectiondomain.SessionView, error) {
	if plan != selectiondomain.PlanSingle && plan != selectiondomain.PlanDouble {
		return nil, selectiondomain.ErrInvalidPlanType
	}
	return s.withSession(id, func(sess *session) error {
		sess.plan = plan
		if plan == selectiondomain.PlanDouble {
			if len(sess.flavors) < 2 {
				sess.flavors = append(sess.flavors, sess.flavors[0])
			}
		} else {
			sess.flavors = sess.flavors[:1]
		}
		return nil
	})
}

// SetFlavor writes a flavor tag into a slot. Under Single only slot 0 is
// meaningful regardless of the requested index.
func (s *Service) SetFlavor(_ context.Context, id string, slot int, flavor string) (*selectiondomain.SessionView, error) {
	if slot < 0 || slot > 1 {
		return nil, selectiondomain.ErrInvalidFlavorSlot
	}
	flavor = strings.TrimSpace(flavor)
	return s.withSession(id, func(sess *session) error {
		if sess.plan == selectiondomain.PlanSingle {
			sess.flavors[0] = flavor
			return nil
		}
		for len(sess.flavors) <= slot {
			sess.flavors = append(sess.flavors, "")
		}
		sess.flavors[slot] = flavor
		return nil
	})
}

// SetQuantity clamps to a positive integer; anything invalid becomes 1.
func (s *Service) SetQuantity(_ context.Context, id string, quantity int) (*selectiondomain.SessionView, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.withSession(id, func(sess *session) error {
		sess.quantity = quantity
		return nil
	})
}

func (s *Service) SetImage(_ context.Context, id string, index int) (*selectiondomain.SessionView, error) {
	return s.withSession(id, func(sess *session) error {
		sess.imageIndex = wrapIndex(index, len(sess.product.Images))
		return nil
	})
}

// NavigateImage moves the gallery index with wrap-around in either direction.
func (s *Service) NavigateImage(_ context.Context, id string, direction int) (*selectiondomain.SessionView, error) {
	return s.withSession(id, func(sess *session) error {
		sess.imageIndex = wrapIndex(sess.imageIndex+direction, len(sess.product.Images))
		return nil
	})
}

// BuildLineItems resolves the selected flavors into cart line items carrying
// the subscription pricing properties. An empty result is a hard failure
// (ErrNoVariantMatch), never a silent no-op.
func (s *Service) BuildLineItems(_ context.Context, id string) ([]cartdomain.LineItem, *selectiondomain.SessionView, error) {
	var items []cartdomain.LineItem
	view, err := s.withSession(id, func(sess *session) error {
		if !isValid(sess.plan, sess.flavors) {
			return selectiondomain.ErrNotValidForSubmission
		}

		unitPrice := s.pricing.UnitPrice(sess.product)
		baseProps := map[string]string{
			cartdomain.PropSubscriptionType:  string(sess.plan),
			cartdomain.PropSubscriptionPrice: unitPrice.StringFixed(2),
			cartdomain.PropOriginalPrice:     selectiondomain.BasePrice(sess.product).StringFixed(2),
			cartdomain.PropDiscountApplied:   s.pricing.DiscountDescriptor(),
		}

		slots := sess.flavors[:1]
		if sess.plan == selectiondomain.PlanDouble {
			slots = sess.flavors[:2]
		}
		for position, flavor := range slots {
			variant := resolveVariant(sess.product, flavor)
			if variant == nil {
				s.log.Warn("no variant matches flavor",
					zap.String("session_id", sess.id.String()),
					zap.String("flavor", flavor),
				)
				continue
			}
			props := make(map[string]string, len(baseProps)+2)
			for key, value := range baseProps {
				props[key] = value
			}
			props[cartdomain.PropLineKey] = s.genID.Generate().String()
			if sess.plan == selectiondomain.PlanDouble {
				props[cartdomain.PropFlavorPosition] = "Flavor " + strconv.Itoa(position+1)
			}
			items = append(items, cartdomain.LineItem{
				VariantID:  variant.ID.String(),
				Quantity:   sess.quantity,
				Properties: props,
			})
		}
		if len(items) == 0 {
			return selectiondomain.ErrNoVariantMatch
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return items, view, nil
}

// withSession loads a session, runs fn under its lock and returns the fresh
// view. The cache entry is re-set to slide the TTL on activity.
func (s *Service) withSession(id string, fn func(*session) error) (*selectiondomain.SessionView, error) {
	sess, ok := s.sessions.Get(strings.TrimSpace(id))
	if !ok {
		return nil, selectiondomain.ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess); err != nil {
		return nil, err
	}
	s.sessions.Set(sess.id.String(), sess, s.ttl)
	return s.view(sess), nil
}

func (s *Service) view(sess *session) *selectiondomain.SessionView {
	flavors := make([]string, len(sess.flavors))
	copy(flavors, sess.flavors)

	content := sess.product.SinglePlanContent()
	if sess.plan == selectiondomain.PlanDouble {
		content = sess.product.DoublePlanContent()
	}

	return &selectiondomain.SessionView{
		ID:              sess.id.String(),
		PlanType:        sess.plan,
		SelectedFlavors: flavors,
		Quantity:        sess.quantity,
		ImageIndex:      sess.imageIndex,
		Valid:           isValid(sess.plan, sess.flavors),
		Quote:           s.pricing.ComputeQuote(sess.product, sess.plan, sess.quantity).Render(s.pricing.CurrencyLabel),
		Content:         content,
	}
}

// isValid is the sole gate on enabling checkout: Single needs slot 0, Double
// needs two distinct non-empty slots.
func isValid(plan selectiondomain.PlanType, flavors []string) bool {
	if plan == selectiondomain.PlanDouble {
		return len(flavors) >= 2 &&
			flavors[0] != "" &&
			flavors[1] != "" &&
			flavors[0] != flavors[1]
	}
	return len(flavors) >= 1 && flavors[0] != ""
}

// resolveVariant matches a flavor tag against variant titles by
// case-insensitive substring; first match wins.
func resolveVariant(product *catalogdomain.Product, flavor string) *catalogdomain.Variant {
	needle := strings.ToLower(strings.TrimSpace(flavor))
	if product == nil || needle == "" {
		return nil
	}
	for i := range product.Variants {
		if strings.Contains(strings.ToLower(product.Variants[i].Title), needle) {
			return &product.Variants[i]
		}
	}
	return nil
}

func wrapIndex(index, total int) int {
	if total < 1 {
		total = 1
	}
	wrapped := index % total
	if wrapped < 0 {
		wrapped += total
	}
	return wrapped
}

package domain

// PlanContent describes what a subscription plan includes, derived from
// product metafields with static fallbacks.
type PlanContent struct {
	Title    string   `json:"title"`
	Delivery string   `json:"delivery"`
	Items    []string `json:"items"`
	Benefits []string `json:"benefits"`
}

var (
	defaultSingleBenefits = []string{
		"25% subscription discount",
		"20% sales discount",
		"Free shipping",
		"Cancel anytime",
		"Premium quality ingredients",
	}
	defaultDoubleBenefits = []string{
		"25% subscription discount",
		"20% sales discount",
		"Free shipping",
		"Cancel anytime",
		"Mix and match flavors",
		"Premium quality ingredients",
	}
)

// SinglePlanContent derives the single-plan description from metafields.
func (p *Product) SinglePlanContent() PlanContent {
	meta := p.meta()
	return PlanContent{
		Title:    metaOr(meta, "single_title", "Single Drink Subscription"),
		Delivery: metaOr(meta, "delivery_frequency", "Every 30 Days"),
		Items:    []string{metaOr(meta, "single_included", "1 Premium Drink per month")},
		Benefits: metaListOr(meta, "single_benefits", defaultSingleBenefits),
	}
}

// DoublePlanContent derives the double-plan description from metafields.
func (p *Product) DoublePlanContent() PlanContent {
	meta := p.meta()
	return PlanContent{
		Title:    metaOr(meta, "double_title", "Double Drink Subscription"),
		Delivery: metaOr(meta, "delivery_frequency", "Every 30 Days"),
		Items:    []string{metaOr(meta, "double_included", "2 Premium Drinks per month")},
		Benefits: metaListOr(meta, "double_benefits", defaultDoubleBenefits),
	}
}

func (p *Product) meta() map[string]any {
	if p == nil || p.Metafields == nil {
		return map[string]any{}
	}
	return p.Metafields
}

func metaOr(meta map[string]any, key, fallback string) string {
	if value := MetaString(meta[key]); value != "" {
		return value
	}
	return fallback
}

func metaListOr(meta map[string]any, key string, fallback []string) []string {
	if values := MetaList(meta[key]); len(values) > 0 {
		return values
	}
	out := make([]string, len(fallback))
	copy(out, fallback)
	return out
}

package domain

import "testing"

func TestPlanContentFallbacks(t *testing.T) {
	product := &Product{}

	single := product.SinglePlanContent()
	if single.Title != "Single Drink Subscription" {
		t.Fatalf("unexpected single title: %q", single.Title)
	}
	if single.Delivery != "Every 30 Days" {
		t.Fatalf("unexpected delivery: %q", single.Delivery)
	}
	if len(single.Benefits) != 5 {
		t.Fatalf("expected 5 single benefits, got %d", len(single.Benefits))
	}

	double := product.DoublePlanContent()
	if double.Title != "Double Drink Subscription" {
		t.Fatalf("unexpected double title: %q", double.Title)
	}
	if len(double.Benefits) != 6 {
		t.Fatalf("expected 6 double benefits, got %d", len(double.Benefits))
	}
}

func TestPlanContentFromMetafields(t *testing.T) {
	product := &Product{Metafields: map[string]any{
		"single_title":    "Monthly Drink",
		"single_benefits": "Free shipping\nCancel anytime",
	}}

	content := product.SinglePlanContent()
	if content.Title != "Monthly Drink" {
		t.Fatalf("expected metafield title, got %q", content.Title)
	}
	if len(content.Benefits) != 2 || content.Benefits[0] != "Free shipping" {
		t.Fatalf("expected metafield benefits, got %v", content.Benefits)
	}
}

func TestFlavorTagsDedupAndOrder(t *testing.T) {
	product := &Product{Variants: []Variant{
		{Title: "Drink - Chocolate", FlavorTag: "Chocolate"},
		{Title: "Drink - Vanilla", FlavorTag: "Vanilla"},
		{Title: "Drink - Chocolate XL", FlavorTag: "Chocolate"},
		{Title: "Drink - Plain"},
	}}

	tags := product.FlavorTags()
	if len(tags) != 2 || tags[0] != "Chocolate" || tags[1] != "Vanilla" {
		t.Fatalf("unexpected flavor tags: %v", tags)
	}
}

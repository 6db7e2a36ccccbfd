package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.SubscriptionRate.String() != "0.75" {
		t.Fatalf("unexpected subscription rate: %s", cfg.SubscriptionRate)
	}
	if cfg.PromoRate.String() != "0.8" {
		t.Fatalf("unexpected promo rate: %s", cfg.PromoRate)
	}
	if cfg.CurrencyLabel != "Rs." {
		t.Fatalf("unexpected currency label: %s", cfg.CurrencyLabel)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
	}
}

func TestRateRejectsOutOfRange(t *testing.T) {
	t.Setenv("STOREFRONT_SUBSCRIPTION_RATE", "1.5")
	t.Setenv("STOREFRONT_PROMO_RATE", "-0.2")

	cfg := Load()
	if cfg.SubscriptionRate.String() != "0.75" {
		t.Fatalf("rate above 1 must fall back, got %s", cfg.SubscriptionRate)
	}
	if cfg.PromoRate.String() != "0.8" {
		t.Fatalf("negative rate must fall back, got %s", cfg.PromoRate)
	}
}

func TestRateOverride(t *testing.T) {
	t.Setenv("STOREFRONT_SUBSCRIPTION_RATE", "0.5")

	cfg := Load()
	if cfg.SubscriptionRate.String() != "0.5" {
		t.Fatalf("expected override 0.5, got %s", cfg.SubscriptionRate)
	}
}

func TestDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_TTL", "soon")

	cfg := Load()
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("garbage duration must fall back, got %s", cfg.SessionTTL)
	}
}

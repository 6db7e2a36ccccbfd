package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/smallbiznis/storefront/internal/cache"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
)

type stubRepository struct {
	product *catalogdomain.Product
	err     error
	loads   int
}

func (s *stubRepository) Load(context.Context) (*catalogdomain.Product, error) {
	s.loads++
	return s.product, s.err
}

func newCatalogService(repo catalogdomain.Repository, ttl time.Duration) *Service {
	return &Service{
		repo:      repo,
		log:       zap.NewNop(),
		ttl:       ttl,
		snapshots: cache.NewTTLCache[string, *catalogdomain.Product](),
	}
}

func TestSnapshotCachesWithinTTL(t *testing.T) {
	repo := &stubRepository{product: &catalogdomain.Product{Title: "Drink", PriceCents: 10000}}
	svc := newCatalogService(repo, time.Minute)

	for i := 0; i < 3; i++ {
		product, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if product.Title != "Drink" {
			t.Fatalf("unexpected product: %+v", product)
		}
	}
	if repo.loads != 1 {
		t.Fatalf("expected a single repository load, got %d", repo.loads)
	}
}

func TestSnapshotErrorNotCached(t *testing.T) {
	repo := &stubRepository{err: errors.New("db down")}
	svc := newCatalogService(repo, time.Minute)

	if _, err := svc.Snapshot(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}

	repo.err = nil
	repo.product = &catalogdomain.Product{Title: "Drink"}
	product, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot after recovery: %v", err)
	}
	if product.Title != "Drink" {
		t.Fatalf("expected fresh load after error, got %+v", product)
	}
	if repo.loads != 2 {
		t.Fatalf("expected 2 loads, got %d", repo.loads)
	}
}

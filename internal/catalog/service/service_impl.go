package service

import (
	"context"
	"time"

	"github.com/smallbiznis/storefront/internal/cache"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const snapshotCacheKey = "active_product"

type Service struct {
	repo catalogdomain.Repository
	log  *zap.Logger
	ttl  time.Duration

	snapshots *cache.TTLCache[string, *catalogdomain.Product]
}

type ServiceParam struct {
	fx.In

	Repo catalogdomain.Repository
	Log  *zap.Logger
	Cfg  config.Config
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		repo:      p.Repo,
		log:       p.Log.Named("catalog.service"),
		ttl:       p.Cfg.CatalogTTL,
		snapshots: cache.NewTTLCache[string, *catalogdomain.Product](),
	}
}

// Snapshot returns the current catalog snapshot, reusing a cached one within
// the configured TTL. A selection session pins whichever snapshot it was
// created with, so a refresh never mutates state under an open session.
func (s *Service) Snapshot(ctx context.Context) (*catalogdomain.Product, error) {
	if cached, ok := s.snapshots.Get(snapshotCacheKey); ok {
		return cached, nil
	}
	product, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshots.Set(snapshotCacheKey, product, s.ttl)
	return product, nil
}

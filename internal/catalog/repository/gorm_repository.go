package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

type RepositoryParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewRepository(p RepositoryParam) catalogdomain.Repository {
	return &Repository{
		db:  p.DB,
		log: p.Log.Named("catalog.repository"),
	}
}

// Load reads the active product with its variants and images. Missing or
// malformed data degrades to an empty snapshot; it never fails startup.
func (r *Repository) Load(ctx context.Context) (*catalogdomain.Product, error) {
	var row productRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, title, price_cents, metafields
		 FROM products
		 WHERE active = true
		 ORDER BY id
		 LIMIT 1`,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		r.log.Warn("no active product in catalog, serving empty snapshot")
		return &catalogdomain.Product{Metafields: map[string]any{}}, nil
	}

	product := &catalogdomain.Product{
		ID:         row.ID,
		Title:      row.Title,
		PriceCents: row.PriceCents,
		Metafields: parseMetafields(r.log, row.Metafields),
	}

	variants, err := r.loadVariants(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	images, err := r.loadImages(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return product, nil
}

type productRow struct {
	ID         snowflake.ID
	Title      string
	PriceCents int64
	Metafields []byte
}

func (r *Repository) loadVariants(ctx context.Context, productID snowflake.ID) ([]catalogdomain.Variant, error) {
	var rows []struct {
		ID        snowflake.ID
		Title     string
		FlavorTag string
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, title, flavor_tag
		 FROM variants
		 WHERE product_id = ?
		 ORDER BY position ASC, id ASC`,
		productID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	variants := make([]catalogdomain.Variant, 0, len(rows))
	for _, row := range rows {
		variants = append(variants, catalogdomain.Variant{
			ID:        row.ID,
			Title:     row.Title,
			FlavorTag: strings.TrimSpace(row.FlavorTag),
		})
	}
	return variants, nil
}

func (r *Repository) loadImages(ctx context.Context, productID snowflake.ID) ([]catalogdomain.Image, error) {
	var rows []struct {
		Src string
		Alt string
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT src, alt
		 FROM product_images
		 WHERE product_id = ?
		 ORDER BY position ASC, id ASC`,
		productID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	images := make([]catalogdomain.Image, 0, len(rows))
	for _, row := range rows {
		images = append(images, catalogdomain.Image{Src: row.Src, Alt: row.Alt})
	}
	return images, nil
}

func parseMetafields(log *zap.Logger, raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		log.Warn("malformed product metafields, substituting empty", zap.Error(err))
		return map[string]any{}
	}
	return meta
}

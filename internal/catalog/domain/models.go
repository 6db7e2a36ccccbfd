// Package domain contains the read-only product catalog snapshot consumed by
// the selection engine.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is an immutable catalog snapshot. PriceCents is the base price in
// minor units; a missing price is represented as 0 and treated as a
// data-integrity warning by callers, never as a failure.
type Product struct {
	ID         snowflake.ID
	Title      string
	PriceCents int64
	Variants   []Variant
	Images     []Image
	Metafields map[string]any
}

// Variant is a purchasable flavor of the product. Order follows the catalog.
type Variant struct {
	ID        snowflake.ID
	Title     string
	FlavorTag string
}

// Image is one gallery entry. Order follows the catalog.
type Image struct {
	Src string
	Alt string
}

// FlavorTags returns the ordered, de-duplicated flavor tags of all variants.
func (p *Product) FlavorTags() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(p.Variants))
	tags := make([]string, 0, len(p.Variants))
	for _, variant := range p.Variants {
		if variant.FlavorTag == "" {
			continue
		}
		if _, ok := seen[variant.FlavorTag]; ok {
			continue
		}
		seen[variant.FlavorTag] = struct{}{}
		tags = append(tags, variant.FlavorTag)
	}
	return tags
}

// Repository loads the active product snapshot.
type Repository interface {
	Load(ctx context.Context) (*Product, error)
}

// Service hands out catalog snapshots, caching between loads.
type Service interface {
	Snapshot(ctx context.Context) (*Product, error)
}

var ErrCatalogUnavailable = errors.New("catalog_unavailable")

// persistence rows

type ProductRow struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	Title      string       `gorm:"type:text;not null"`
	PriceCents int64        `gorm:"not null;default:0"`
	Metafields datatypes.JSON `gorm:"type:jsonb"`
	Active     bool         `gorm:"not null;default:true"`
}

func (ProductRow) TableName() string { return "products" }

type VariantRow struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ProductID snowflake.ID `gorm:"not null"`
	Position  int          `gorm:"not null;default:0"`
	Title     string       `gorm:"type:text;not null"`
	FlavorTag string       `gorm:"type:text;not null"`
}

func (VariantRow) TableName() string { return "variants" }

type ImageRow struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ProductID snowflake.ID `gorm:"not null"`
	Position  int          `gorm:"not null;default:0"`
	Src       string       `gorm:"type:text;not null"`
	Alt       string       `gorm:"type:text"`
}

func (ImageRow) TableName() string { return "product_images" }

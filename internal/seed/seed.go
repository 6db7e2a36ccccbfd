// Package seed provisions a demo catalog so the service is usable out of the
// box against an empty database.
package seed

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
)

const demoProductTitle = "Premium Protein Drink"

var demoFlavors = []string{"Chocolate", "Vanilla", "Mocha", "Strawberry"}

// EnsureDemoCatalog seeds a demo product when the catalog is empty. Reruns
// against a seeded database are no-ops.
func EnsureDemoCatalog(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed snowflake node is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.ProductRow{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return seedDemoProduct(tx, node)
	})
}

func seedDemoProduct(tx *gorm.DB, node *snowflake.Node) error {
	metafields, err := json.Marshal(map[string]any{
		"delivery_frequency": "Every 30 Days",
		"single_title":       "Single Drink Subscription",
		"single_included":    "1 Premium Drink per month",
		"double_title":       "Double Drink Subscription",
		"double_included":    "2 Premium Drinks per month",
	})
	if err != nil {
		return err
	}

	product := catalogdomain.ProductRow{
		ID:         node.Generate(),
		Title:      demoProductTitle,
		PriceCents: 10000,
		Metafields: datatypes.JSON(metafields),
		Active:     true,
	}
	if err := tx.Create(&product).Error; err != nil {
		return err
	}

	for i, flavor := range demoFlavors {
		variant := catalogdomain.VariantRow{
			ID:        node.Generate(),
			ProductID: product.ID,
			Position:  i,
			Title:     demoProductTitle + " - " + flavor,
			FlavorTag: flavor,
		}
		if err := tx.Create(&variant).Error; err != nil {
			return err
		}
		image := catalogdomain.ImageRow{
			ID:        node.Generate(),
			ProductID: product.ID,
			Position:  i,
			Src:       "/assets/products/drink-" + flavor + ".png",
			Alt:       demoProductTitle + " " + flavor,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

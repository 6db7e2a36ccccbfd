package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/migration"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := migration.RunMigrations(sqlDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestEnsureDemoCatalogSeedsOnce(t *testing.T) {
	db := setupSeedTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	if err := EnsureDemoCatalog(db, node); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := EnsureDemoCatalog(db, node); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var products int64
	if err := db.Model(&catalogdomain.ProductRow{}).Count(&products).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if products != 1 {
		t.Fatalf("expected exactly 1 product after reseeding, got %d", products)
	}

	var variants int64
	if err := db.Model(&catalogdomain.VariantRow{}).Count(&variants).Error; err != nil {
		t.Fatalf("count variants: %v", err)
	}
	if variants != int64(len(demoFlavors)) {
		t.Fatalf("expected %d variants, got %d", len(demoFlavors), variants)
	}
}

func TestSeededProductIsLoadable(t *testing.T) {
	db := setupSeedTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	if err := EnsureDemoCatalog(db, node); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var row catalogdomain.ProductRow
	if err := db.WithContext(context.Background()).First(&row).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if row.PriceCents != 10000 || !row.Active {
		t.Fatalf("unexpected seeded product: %+v", row)
	}
	if len(row.Metafields) == 0 {
		t.Fatalf("expected seeded metafields")
	}
}

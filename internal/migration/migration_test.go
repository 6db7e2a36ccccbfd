package migration

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("second run: %v", err)
	}

	for _, table := range []string{"products", "variants", "product_images", "schema_migrations"} {
		var count int
		row := sqlDB.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err := row.Scan(&count); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	var versions int
	if err := sqlDB.QueryRow(`SELECT count(*) FROM schema_migrations`).Scan(&versions); err != nil {
		t.Fatalf("scan versions: %v", err)
	}
	if versions != 1 {
		t.Fatalf("expected exactly 1 applied version, got %d", versions)
	}
}

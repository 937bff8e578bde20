package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"seller_id   BIGINT NOT NULL REFERENCES sellers(id)",
		"price       NUMERIC(10,2) NOT NULL",
		"aesthetic   TEXT NOT NULL DEFAULT 'noir'",
		"CREATE INDEX IF NOT EXISTS idx_products_seller_created",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
	if strings.Contains(content, "status") || strings.Contains(content, "sold_at") {
		t.Errorf("base products table must not carry status or sold_at")
	}
}

func TestStatusMigrationAddsOptionalColumns(t *testing.T) {
	content := readMigration(t, "*_add_product_status_sold_at.sql")

	checks := []string{
		"ADD COLUMN IF NOT EXISTS status TEXT NOT NULL DEFAULT 'available'",
		"ADD COLUMN IF NOT EXISTS sold_at TIMESTAMPTZ",
		"DROP COLUMN IF EXISTS sold_at",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSellersMigrationEnforcesUniqueEmail(t *testing.T) {
	content := readMigration(t, "*_create_sellers_table.sql")
	if !strings.Contains(content, "CONSTRAINT sellers_email_key UNIQUE (email)") {
		t.Fatalf("expected unique email constraint")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Seller Avatar!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_seller_avatar.sql") {
		t.Fatalf("unexpected migration path %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

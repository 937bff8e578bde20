// Package dbtest opens throwaway SQLite databases shaped like the marketplace schema.
package dbtest

import (
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ProductColumns selects which optional products columns exist.
type ProductColumns struct {
	Status    bool
	SoldAt    bool
	UpdatedAt bool
}

// AllColumns mirrors a fully migrated products table.
var AllColumns = ProductColumns{Status: true, SoldAt: true, UpdatedAt: true}

const sellersDDL = `
CREATE TABLE sellers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  password TEXT NOT NULL,
  reset_token TEXT,
  reset_token_expires DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`

// Open returns an in-memory database private to t with the sellers and
// products tables created.
func Open(t *testing.T, cols ProductColumns) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{sellersDDL, productsDDL(cols)} {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func productsDDL(cols ProductColumns) string {
	var b strings.Builder
	b.WriteString(`CREATE TABLE products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  seller_id INTEGER NOT NULL REFERENCES sellers(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  description TEXT NOT NULL,
  image_url TEXT NOT NULL,
  aesthetic TEXT NOT NULL DEFAULT 'noir',
  created_at DATETIME`)
	if cols.Status {
		b.WriteString(",\n  status TEXT NOT NULL DEFAULT 'available'")
	}
	if cols.SoldAt {
		b.WriteString(",\n  sold_at DATETIME")
	}
	if cols.UpdatedAt {
		b.WriteString(",\n  updated_at DATETIME")
	}
	b.WriteString("\n);")
	return b.String()
}

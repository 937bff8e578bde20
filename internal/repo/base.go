package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the GORM handle shared by the sellers, products and catalog repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base bound to the provided connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Bind returns a copy of b that issues every query through tx.
func (b Base) Bind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// Table starts a query against table name bound to ctx.
func (b Base) Table(ctx context.Context, name string) *gorm.DB {
	return b.DB(ctx).Table(name)
}

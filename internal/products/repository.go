package products

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/aestheticmarket-backend/internal/repo"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
)

// Repository is the schema-tolerant product store. Every call takes the
// Capabilities snapshot the caller resolved, so one operation never mixes
// two views of the schema.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Bind(tx)}
}

// Columns returns the select list for a products row. Missing optional
// columns are synthesized: status as the statusFallback literal, sold_at
// and updated_at as NULL. alias prefixes real columns when non-empty.
func Columns(caps Capabilities, statusFallback, alias string) []string {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	cols := []string{
		col("id"), col("seller_id"), col("name"), col("price"),
		col("description"), col("image_url"), col("aesthetic"), col("created_at"),
	}
	if caps.HasStatus {
		cols = append(cols, col("status"))
	} else {
		cols = append(cols, "'"+statusFallback+"' AS status")
	}
	if caps.HasSoldAt {
		cols = append(cols, col("sold_at"))
	} else {
		cols = append(cols, "NULL AS sold_at")
	}
	if caps.HasUpdatedAt {
		cols = append(cols, col("updated_at"))
	} else {
		cols = append(cols, "NULL AS updated_at")
	}
	return cols
}

func (r *Repository) owned(ctx context.Context, caps Capabilities, sellerID, id int64) *gorm.DB {
	return r.Table(ctx, productsTable).
		Select(Columns(caps, models.ProductStatusPublished, "")).
		Where("id = ? AND seller_id = ?", id, sellerID)
}

// FindOwned loads product id when it belongs to sellerID.
// gorm.ErrRecordNotFound covers both a missing id and another seller's product.
func (r *Repository) FindOwned(ctx context.Context, caps Capabilities, sellerID, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.owned(ctx, caps, sellerID, id).Take(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// LockOwned is FindOwned with SELECT ... FOR UPDATE. It must run inside a transaction.
func (r *Repository) LockOwned(ctx context.Context, caps Capabilities, sellerID, id int64) (*models.Product, error) {
	var product models.Product
	err := r.owned(ctx, caps, sellerID, id).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Take(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListBySeller returns the seller's products, newest first.
func (r *Repository) ListBySeller(ctx context.Context, caps Capabilities, sellerID int64) ([]models.Product, error) {
	var rows []models.Product
	err := r.Table(ctx, productsTable).
		Select(Columns(caps, models.ProductStatusPublished, "")).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert writes product, leaving out the optional columns the schema lacks.
// product.ID is populated on success.
func (r *Repository) Insert(ctx context.Context, caps Capabilities, product *models.Product) error {
	omit := make([]string, 0, 3)
	if !caps.HasStatus {
		omit = append(omit, "status")
	}
	if !caps.HasSoldAt {
		omit = append(omit, "sold_at")
	}
	if !caps.HasUpdatedAt {
		omit = append(omit, "updated_at")
	}
	tx := r.DB(ctx)
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	return tx.Create(product).Error
}

// UpdateOwned applies assignments to product id scoped by sellerID and
// reports how many rows changed.
func (r *Repository) UpdateOwned(ctx context.Context, sellerID, id int64, assignments map[string]any) (int64, error) {
	res := r.Table(ctx, productsTable).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Updates(assignments)
	return res.RowsAffected, res.Error
}

// DeleteOwned removes product id scoped by sellerID and reports how many rows went away.
func (r *Repository) DeleteOwned(ctx context.Context, sellerID, id int64) (int64, error) {
	res := r.DB(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&models.Product{})
	return res.RowsAffected, res.Error
}

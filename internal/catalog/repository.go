package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/internal/products"
	"github.com/angelmondragon/aestheticmarket-backend/internal/repo"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
)

// Repository reads products for the storefront. It never filters by owner.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) joined(ctx context.Context, caps products.Capabilities) *gorm.DB {
	cols := append(products.Columns(caps, models.ProductStatusAvailable, "p"),
		"s.full_name AS seller_name",
		"s.phone AS seller_phone",
		"s.email AS seller_email",
	)
	return r.Table(ctx, "products AS p").
		Select(cols).
		Joins("JOIN sellers s ON s.id = p.seller_id")
}

// ListAvailable returns available products, newest first. An empty aesthetic
// matches every aesthetic. Without a status column every row counts as available.
func (r *Repository) ListAvailable(ctx context.Context, caps products.Capabilities, aesthetic string) ([]models.ProductWithSeller, error) {
	q := r.joined(ctx, caps)
	if caps.HasStatus {
		q = q.Where("p.status = ?", models.ProductStatusAvailable)
	}
	if aesthetic != "" {
		q = q.Where("p.aesthetic = ?", aesthetic)
	}

	var rows []models.ProductWithSeller
	if err := q.Order("p.created_at DESC").Order("p.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindWithSeller loads product id in any status.
func (r *Repository) FindWithSeller(ctx context.Context, caps products.Capabilities, id int64) (*models.ProductWithSeller, error) {
	var row models.ProductWithSeller
	if err := r.joined(ctx, caps).Where("p.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Aesthetics lists the distinct aesthetics of available products.
func (r *Repository) Aesthetics(ctx context.Context, caps products.Capabilities) ([]string, error) {
	q := r.Table(ctx, "products")
	if caps.HasStatus {
		q = q.Where("status = ?", models.ProductStatusAvailable)
	}
	var values []string
	if err := q.Distinct("aesthetic").Order("aesthetic").Pluck("aesthetic", &values).Error; err != nil {
		return nil, err
	}
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

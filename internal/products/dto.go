package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/types"
)

// ProductDTO is the product payload returned to sellers and the storefront.
type ProductDTO struct {
	ID          int64           `json:"id"`
	SellerID    int64           `json:"seller_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Aesthetic   string          `json:"aesthetic"`
	Status      string          `json:"status"`
	SoldAt      *time.Time      `json:"sold_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// CreateInput is a create-product request after transport decoding.
// Image is the chosen image source, already resolved from image_url or image.
type CreateInput struct {
	Name        string
	Price       *decimal.Decimal
	Description string
	Image       string
	Aesthetic   string
}

// UpdateInput is a partial update; nil fields are left untouched.
// SoldAt distinguishes an absent key from an explicit null.
type UpdateInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
	Aesthetic   *string
	Status      *string
	SoldAt      types.NullableTime
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Aesthetic:   p.Aesthetic,
		Status:      p.Status,
		SoldAt:      p.SoldAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

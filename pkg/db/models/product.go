package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/enums"
)

const (
	ProductStatusAvailable = string(enums.ProductStatusAvailable)
	ProductStatusSold      = string(enums.ProductStatusSold)
	// ProductStatusPublished is reported for seller-scoped reads on deployments without a status column.
	ProductStatusPublished = "published"
)

// Product is a single listing owned by a seller.
// Status, SoldAt and UpdatedAt map to optional columns; the products
// repository decides per query whether they are read or synthesized.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SellerID    int64           `gorm:"column:seller_id;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description string          `gorm:"column:description;not null"`
	ImageURL    string          `gorm:"column:image_url;not null"`
	Aesthetic   string          `gorm:"column:aesthetic;not null;default:noir"`
	Status      string          `gorm:"column:status"`
	SoldAt      *time.Time      `gorm:"column:sold_at"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   *time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Product) TableName() string { return "products" }

// ProductWithSeller is a product row joined with its owner's contact details.
type ProductWithSeller struct {
	Product
	SellerName  *string `gorm:"column:seller_name"`
	SellerPhone *string `gorm:"column:seller_phone"`
	SellerEmail *string `gorm:"column:seller_email"`
}

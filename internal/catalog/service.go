package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/internal/products"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

// AllAesthetics disables the aesthetic filter on ListProducts.
const AllAesthetics = "all"

// ProductDTO is a storefront product with its seller's contact details.
type ProductDTO struct {
	products.ProductDTO
	SellerName  *string `json:"seller_name"`
	SellerPhone *string `json:"seller_phone"`
	SellerEmail *string `json:"seller_email"`
}

// Service is the unauthenticated read API over products.
type Service interface {
	ListProducts(ctx context.Context, aesthetic string) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	ListAesthetics(ctx context.Context) ([]string, error)
}

type capabilitySource interface {
	Capabilities(ctx context.Context) (products.Capabilities, error)
}

type service struct {
	repo   *Repository
	schema capabilitySource
}

func NewService(repo *Repository, schema capabilitySource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if schema == nil {
		return nil, fmt.Errorf("schema probe required")
	}
	return &service{repo: repo, schema: schema}, nil
}

func (s *service) ListProducts(ctx context.Context, aesthetic string) ([]ProductDTO, error) {
	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	aesthetic = strings.TrimSpace(aesthetic)
	if aesthetic == AllAesthetics {
		aesthetic = ""
	}
	rows, err := s.repo.ListAvailable(ctx, caps, aesthetic)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.FindWithSeller(ctx, caps, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch product")
	}
	dto := fromModel(row)
	return &dto, nil
}

func (s *service) ListAesthetics(ctx context.Context) ([]string, error) {
	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	values, err := s.repo.Aesthetics(ctx, caps)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch aesthetics")
	}
	return values, nil
}

func (s *service) capabilities(ctx context.Context) (products.Capabilities, error) {
	caps, err := s.schema.Capabilities(ctx)
	if err != nil {
		return products.Capabilities{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "product schema unavailable")
	}
	return caps, nil
}

func fromModel(row *models.ProductWithSeller) ProductDTO {
	return ProductDTO{
		ProductDTO:  *products.FromModel(&row.Product),
		SellerName:  row.SellerName,
		SellerPhone: row.SellerPhone,
		SellerEmail: row.SellerEmail,
	}
}

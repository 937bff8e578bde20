package products

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/db"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

const (
	// DefaultAesthetic is stored when a create request names none.
	DefaultAesthetic = "noir"
	maxImageBytes    = 2 * 1024 * 1024
	imagePrefix      = "data:image/"
)

var dataURIPattern = regexp.MustCompile(`^data:image/([A-Za-z+/-]+);base64,(.+)$`)

// Service is the seller-scoped product mutation pipeline.
type Service interface {
	Create(ctx context.Context, sellerID int64, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, sellerID, productID int64, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, sellerID, productID int64) error
	List(ctx context.Context, sellerID int64) ([]ProductDTO, error)
	Get(ctx context.Context, sellerID, productID int64) (*ProductDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type capabilitySource interface {
	Capabilities(ctx context.Context) (Capabilities, error)
}

type mutationRecorder interface {
	Record(op, outcome string)
}

// ServiceParams bundles the dependencies of the product service.
type ServiceParams struct {
	Repo    *Repository
	DB      txRunner
	Schema  capabilitySource
	Metrics mutationRecorder
	Now     func() time.Time
}

type service struct {
	repo    *Repository
	db      txRunner
	schema  capabilitySource
	metrics mutationRecorder
	now     func() time.Time
}

// NewService constructs the product service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Schema == nil {
		return nil, fmt.Errorf("schema probe required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		schema:  params.Schema,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, sellerID int64, input CreateInput) (dto *ProductDTO, err error) {
	defer func() { s.record("create", err) }()

	if sellerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}

	aesthetic := strings.TrimSpace(input.Aesthetic)
	if aesthetic == "" {
		aesthetic = DefaultAesthetic
	}
	now := s.now()
	product := &models.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(input.Name),
		Price:       *input.Price,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    input.Image,
		Aesthetic:   aesthetic,
		Status:      models.ProductStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}

	var created *models.Product
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Insert(ctx, caps, product); err != nil {
			return err
		}
		row, err := txRepo.FindOwned(ctx, caps, sellerID, product.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeInternal, "Failed to create product - no product returned from database")
			}
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "Failed to create product")
	}
	if !caps.HasStatus {
		created.Status = models.ProductStatusAvailable
	}
	return FromModel(created), nil
}

// Update applies a partial update under a row lock. A soldAt key sets
// sold_at and derives status from it; a bare status sets status only and
// leaves sold_at as it was. Neither is written when sold_at does not exist.
func (s *service) Update(ctx context.Context, sellerID, productID int64, input UpdateInput) (dto *ProductDTO, err error) {
	defer func() { s.record("update", err) }()

	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}

	var result *models.Product
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		locked, err := txRepo.LockOwned(ctx, caps, sellerID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFoundOrNotOwned()
			}
			return err
		}

		assignments := s.assignments(caps, input)
		if len(assignments) == 0 {
			result = locked
			return nil
		}
		if caps.HasUpdatedAt {
			assignments["updated_at"] = s.now()
		}

		affected, err := txRepo.UpdateOwned(ctx, sellerID, productID, assignments)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeInternal, "update affected no rows")
		}

		result, err = txRepo.FindOwned(ctx, caps, sellerID, productID)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err, "Failed to update product")
	}
	return FromModel(result), nil
}

func (s *service) assignments(caps Capabilities, input UpdateInput) map[string]any {
	set := map[string]any{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
	}
	if input.Aesthetic != nil {
		set["aesthetic"] = *input.Aesthetic
	}

	if !caps.HasSoldAt {
		return set
	}
	switch {
	case input.SoldAt.Set && input.SoldAt.Value != nil:
		set["sold_at"] = *input.SoldAt.Value
		set["status"] = models.ProductStatusSold
	case input.SoldAt.Set:
		set["sold_at"] = nil
		set["status"] = models.ProductStatusAvailable
	case input.Status != nil && *input.Status != "":
		set["status"] = *input.Status
	}
	return set
}

// Delete checks ownership with a plain read, then deletes.
func (s *service) Delete(ctx context.Context, sellerID, productID int64) (err error) {
	defer func() { s.record("delete", err) }()

	caps, err := s.capabilities(ctx)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindOwned(ctx, caps, sellerID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFoundOrNotOwned()
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to delete product")
	}

	affected, err := s.repo.DeleteOwned(ctx, sellerID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to delete product")
	}
	if affected == 0 {
		return errNotFoundOrNotOwned()
	}
	return nil
}

func (s *service) List(ctx context.Context, sellerID int64) ([]ProductDTO, error) {
	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBySeller(ctx, caps, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch products")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, sellerID, productID int64) (*ProductDTO, error) {
	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.FindOwned(ctx, caps, sellerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFoundOrNotOwned()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch product")
	}
	return FromModel(row), nil
}

func (s *service) capabilities(ctx context.Context) (Capabilities, error) {
	caps, err := s.schema.Capabilities(ctx)
	if err != nil {
		return Capabilities{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "product schema unavailable")
	}
	return caps, nil
}

func (s *service) record(op string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(string(pkgerrors.CodeOf(err)))
	}
	s.metrics.Record(op, outcome)
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Name) == "" || input.Price == nil || strings.TrimSpace(input.Description) == "" || input.Image == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Name, price, description, and image are required")
	}
	if !input.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Price must be a positive number")
	}
	if !strings.HasPrefix(input.Image, imagePrefix) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid image format. Must be a data URL starting with data:image/")
	}
	if !dataURIPattern.MatchString(input.Image) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid image data URL format")
	}
	if estimatedImageBytes(input.Image) > maxImageBytes {
		return pkgerrors.New(pkgerrors.CodeValidation, "Image size exceeds 2MB limit")
	}
	return nil
}

func validateUpdate(input UpdateInput) error {
	if input.Price != nil && !input.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Price must be a positive number")
	}
	if input.Status != nil && *input.Status != "" {
		if _, err := enums.ParseProductStatus(*input.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status must be one of: available, sold").
				WithDetails(map[string]string{"status": *input.Status})
		}
	}
	return nil
}

// estimatedImageBytes approximates the decoded size of a base64 data URI.
func estimatedImageBytes(dataURI string) float64 {
	return float64(len(dataURI)) * 0.75
}

// errNotFoundOrNotOwned is the single error for a product that is missing or
// belongs to another seller.
func errNotFoundOrNotOwned() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found or unauthorized")
}

// mapStoreError translates failures inside a product write. Typed errors pass through.
func mapStoreError(err error, fallback string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	switch {
	case db.IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "A product with this name already exists")
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid reference in product data")
	case db.IsInvalidTextRepresentation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid data format")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fallback)
	}
}

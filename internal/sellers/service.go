package sellers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/db"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

// Service exposes seller profile reads and edits.
type Service interface {
	Profile(ctx context.Context, sellerID int64) (*SellerDTO, error)
	UpdateProfile(ctx context.Context, sellerID int64, input UpdateProfileInput) (*SellerDTO, error)
	Get(ctx context.Context, id int64) (*SellerDTO, error)
	PublicProfile(ctx context.Context, id int64) (*PublicSellerDTO, error)
}

type sellerStore interface {
	FindByID(ctx context.Context, id int64) (*models.Seller, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Seller, error)
}

type service struct {
	repo sellerStore
}

// NewService constructs the seller profile service.
func NewService(repo sellerStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Profile(ctx context.Context, sellerID int64) (*SellerDTO, error) {
	return s.load(ctx, sellerID)
}

// Get returns the seller with id to an authenticated caller.
func (s *service) Get(ctx context.Context, id int64) (*SellerDTO, error) {
	return s.load(ctx, id)
}

// PublicProfile returns the seller with id to anonymous callers.
func (s *service) PublicProfile(ctx context.Context, id int64) (*PublicSellerDTO, error) {
	seller, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return PublicFromModel(seller), nil
}

// UpdateProfile edits name, email and phone. Passwords cannot change through this path.
func (s *service) UpdateProfile(ctx context.Context, sellerID int64, input UpdateProfileInput) (*SellerDTO, error) {
	updates := input.assignments()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid fields to update")
	}

	seller, err := s.repo.Update(ctx, sellerID, updates)
	switch {
	case err == nil:
		return FromModel(seller), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errSellerNotFound()
	case db.IsUniqueViolation(err):
		return nil, ErrEmailInUse(err)
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update profile")
	}
}

func (s *service) load(ctx context.Context, id int64) (*SellerDTO, error) {
	seller, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(seller), nil
}

func (s *service) find(ctx context.Context, id int64) (*models.Seller, error) {
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSellerNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load seller")
	}
	return seller, nil
}

func errSellerNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "Seller not found")
}

// ErrEmailInUse maps a duplicate email on the sellers table to a conflict.
func ErrEmailInUse(cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeConflict, cause, "Email already in use")
}

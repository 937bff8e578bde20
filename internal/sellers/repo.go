package sellers

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/internal/repo"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
)

// Repository is the credential store: seller identities and password hashes.
type Repository struct {
	repo.Base
}

// NewRepository constructs a sellers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new seller and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateSellerDTO) (*models.Seller, error) {
	seller := dto.ToModel()
	if err := r.DB(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// FindByEmail retrieves the seller whose email matches exactly.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB(ctx).Where("email = ?", email).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// FindByID loads a seller by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// Update applies the column assignments in updates and returns the fresh row.
// gorm.ErrRecordNotFound is returned when no seller has the id.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Seller, error) {
	res := r.DB(ctx).Model(&models.Seller{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

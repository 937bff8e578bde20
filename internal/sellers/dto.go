package sellers

import (
	"strings"
	"time"

	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
)

// SellerDTO is the transport shape; it never carries the password hash or reset token.
type SellerDTO struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicSellerDTO is the anonymous projection. It keeps the column names of the
// sellers table.
type PublicSellerDTO struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSellerDTO holds the data required by the repo to persist a new seller.
type CreateSellerDTO struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
}

// UpdateProfileInput carries the editable profile fields; nil means untouched.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
	Phone    *string
}

func FromModel(s *models.Seller) *SellerDTO {
	if s == nil {
		return nil
	}
	return &SellerDTO{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func PublicFromModel(s *models.Seller) *PublicSellerDTO {
	if s == nil {
		return nil
	}
	return &PublicSellerDTO{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (c CreateSellerDTO) ToModel() *models.Seller {
	return &models.Seller{
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: c.PasswordHash,
	}
}

// assignments skips absent and blank fields, so an all-empty patch stages nothing.
func (in UpdateProfileInput) assignments() map[string]any {
	updates := map[string]any{}
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		if trimmed := strings.TrimSpace(*value); trimmed != "" {
			updates[column] = trimmed
		}
	}
	set("full_name", in.FullName)
	set("email", in.Email)
	set("phone", in.Phone)
	return updates
}

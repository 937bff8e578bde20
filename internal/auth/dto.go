package auth

import "github.com/angelmondragon/aestheticmarket-backend/internal/sellers"

// RegisterRequest is the seller signup payload.
type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest carries credentials for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by both register and login.
type Session struct {
	Seller *sellers.SellerDTO `json:"seller"`
	Token  string             `json:"token"`
}

package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and wrong issuers.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned once a well-formed token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SellerID int64
	Email    string
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to sellers.
type AccessTokenClaims struct {
	SellerID int64  `json:"id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/api/validators"
	pkgAuth "github.com/angelmondragon/aestheticmarket-backend/pkg/auth"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
)

const (
	msgNotLoggedIn   = "You are not logged in! Please log in to get access."
	msgInvalidToken  = "Invalid token. Please log in again!"
	msgExpiredToken  = "Your token has expired! Please log in again."
	msgSellerMissing = "The seller belonging to this token no longer exists."
)

// SellerResolver loads the seller a token was issued to.
type SellerResolver interface {
	FindByID(ctx context.Context, id int64) (*models.Seller, error)
}

// Auth validates a bearer token, re-resolves the seller on every request and
// seeds the request context with the principal.
func Auth(cfg config.JWTConfig, sellers SellerResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := validators.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgNotLoggedIn))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				msg := msgInvalidToken
				if errors.Is(err, pkgAuth.ErrExpiredToken) {
					msg = msgExpiredToken
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			if sellers == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller lookup unavailable"))
				return
			}
			seller, err := sellers.FindByID(ctx, claims.SellerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msgSellerMissing))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve seller"))
				return
			}
			if seller == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgSellerMissing))
				return
			}

			ctx = WithPrincipal(ctx, Principal{SellerID: seller.ID, Email: seller.Email})
			if logg != nil {
				ctx = logg.WithSellerID(ctx, seller.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

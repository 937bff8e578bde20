package controllers

import (
	"net/http"

	"github.com/angelmondragon/aestheticmarket-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
)

func requireSeller(r *http.Request) (int64, error) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}
	return principal.SellerID, nil
}

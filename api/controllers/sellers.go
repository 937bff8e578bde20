package controllers

import (
	"net/http"

	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/api/validators"
	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
)

type sellerEnvelope struct {
	Seller *sellers.SellerDTO `json:"seller"`
}

type publicSellerEnvelope struct {
	Seller *sellers.PublicSellerDTO `json:"seller"`
}

// updateProfileRequest has no password field; a password in the body is dropped.
type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func SellerProfile(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.Profile(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sellerEnvelope{Seller: seller})
	}
}

func SellerUpdateProfile(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.UpdateProfile(r.Context(), sellerID, sellers.UpdateProfileInput{
			FullName: body.FullName,
			Email:    body.Email,
			Phone:    body.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sellerEnvelope{Seller: seller})
	}
}

// SellerByID returns the bare seller object without the success envelope.
func SellerByID(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, seller)
	}
}

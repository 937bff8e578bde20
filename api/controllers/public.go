package controllers

import (
	"net/http"

	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/api/validators"
	"github.com/angelmondragon/aestheticmarket-backend/internal/catalog"
	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
)

type catalogListEnvelope struct {
	Products []catalog.ProductDTO `json:"products"`
}

type catalogProductEnvelope struct {
	Product *catalog.ProductDTO `json:"product"`
}

type aestheticsEnvelope struct {
	Aesthetics []string `json:"aesthetics"`
}

// PublicProducts lists available products, optionally filtered by ?aesthetic=.
func PublicProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		list, err := svc.ListProducts(r.Context(), r.URL.Query().Get("aesthetic"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(list), catalogListEnvelope{Products: list})
	}
}

func PublicProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalogProductEnvelope{Product: product})
	}
}

func PublicAesthetics(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		list, err := svc.ListAesthetics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, aestheticsEnvelope{Aesthetics: list})
	}
}

func PublicSeller(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
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
		seller, err := svc.PublicProfile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, publicSellerEnvelope{Seller: seller})
	}
}

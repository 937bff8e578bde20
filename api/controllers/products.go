package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/api/validators"
	productsvc "github.com/angelmondragon/aestheticmarket-backend/internal/products"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/types"
)

type productEnvelope struct {
	Product *productsvc.ProductDTO `json:"product"`
}

type productListEnvelope struct {
	Products []productsvc.ProductDTO `json:"products"`
}

type createProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Image       string           `json:"image"`
	Aesthetic   string           `json:"aesthetic"`
}

func (r createProductRequest) toCreateInput() productsvc.CreateInput {
	image := r.ImageURL
	if image == "" {
		image = r.Image
	}
	return productsvc.CreateInput{
		Name:        strings.TrimSpace(r.Name),
		Price:       r.Price,
		Description: strings.TrimSpace(r.Description),
		Image:       image,
		Aesthetic:   strings.TrimSpace(r.Aesthetic),
	}
}

// updateProductRequest keeps every field optional. soldAt tracks presence so
// an explicit null can be told apart from an omitted key.
type updateProductRequest struct {
	Name        *string            `json:"name"`
	Price       *decimal.Decimal   `json:"price"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"image_url"`
	Aesthetic   *string            `json:"aesthetic"`
	Status      *string            `json:"status"`
	SoldAt      types.NullableTime `json:"soldAt"`
}

func (r updateProductRequest) toUpdateInput() productsvc.UpdateInput {
	return productsvc.UpdateInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Aesthetic:   r.Aesthetic,
		Status:      r.Status,
		SoldAt:      r.SoldAt,
	}
}

// SellerListProducts lists the caller's products, newest first.
func SellerListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(list), productListEnvelope{Products: list})
	}
}

func SellerGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), sellerID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productEnvelope{Product: product})
	}
}

// SellerCreateProduct handles product creation for the authenticated seller.
func SellerCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), sellerID, payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, productEnvelope{Product: product})
	}
}

func SellerUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), sellerID, productID, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productEnvelope{Product: product})
	}
}

func SellerDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		sellerID, err := requireSeller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), sellerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/api/responses"
	"github.com/liorgem/diamondlab-backend/api/validators"
	"github.com/liorgem/diamondlab-backend/internal/carats"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
)

// ListProductCarats returns a product's carat options for the storefront
// weight selector.
func ListProductCarats(svc carats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carat service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		links, err := svc.List(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, links)
	}
}

// AddProductCarat links one catalog weight to a product.
func AddProductCarat(svc carats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carat service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addProductCaratRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.Add(r.Context(), productID, payload.CaratPricingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

// AddAllProductCarats links every active catalog weight to a product.
func AddAllProductCarats(svc carats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carat service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddAll(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RemoveProductCarat unlinks a catalog weight from a product.
func RemoveProductCarat(svc carats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carat service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entryID, err := validators.ParsePathUUID(chi.URLParam(r, "caratPricingID"), "caratPricingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), productID, entryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// SetDefaultProductCarat marks one linked weight as the product default.
func SetDefaultProductCarat(svc carats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carat service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entryID, err := validators.ParsePathUUID(chi.URLParam(r, "caratPricingID"), "caratPricingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.SetDefault(r.Context(), productID, entryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, link)
	}
}

type addProductCaratRequest struct {
	CaratPricingID uuid.UUID `json:"carat_pricing_id" validate:"required"`
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/liorgem/diamondlab-backend/api/responses"
	"github.com/liorgem/diamondlab-backend/api/validators"
	"github.com/liorgem/diamondlab-backend/internal/catalog"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// ListCaratPricing returns the carat catalog. Admins may pass
// ?include_inactive=true to see disabled weights.
func ListCaratPricing(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		includeInactive := strings.EqualFold(r.URL.Query().Get("include_inactive"), "true")
		entries, err := svc.List(r.Context(), includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// GetCaratPricingByWeight resolves one catalog entry by its exact weight.
func GetCaratPricingByWeight(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		weight, err := validators.ParsePathDecimal(chi.URLParam(r, "weight"), "weight")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.GetByWeight(r.Context(), weight)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// CreateCaratPricing handles admin creation of a catalog entry.
func CreateCaratPricing(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createCaratPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// UpdateCaratPricing handles admin mutation of a catalog entry.
func UpdateCaratPricing(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCaratPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// DeleteCaratPricing handles admin removal of a catalog entry.
func DeleteCaratPricing(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createCaratPricingRequest struct {
	CaratWeight decimal.Decimal `json:"carat_weight" validate:"required"`
	Multiplier  decimal.Decimal `json:"multiplier" validate:"required"`
	DisplayName *string         `json:"display_name,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

func (r createCaratPricingRequest) toInput() catalog.CreateEntryInput {
	return catalog.CreateEntryInput{
		CaratWeight: r.CaratWeight,
		Multiplier:  r.Multiplier,
		DisplayName: r.DisplayName,
		IsActive:    r.IsActive,
	}
}

type updateCaratPricingRequest struct {
	Multiplier  *decimal.Decimal `json:"multiplier,omitempty"`
	DisplayName *string          `json:"display_name,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r updateCaratPricingRequest) toInput() catalog.UpdateEntryInput {
	return catalog.UpdateEntryInput{
		Multiplier:  r.Multiplier,
		DisplayName: r.DisplayName,
		IsActive:    r.IsActive,
	}
}

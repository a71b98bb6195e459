package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/liorgem/diamondlab-backend/api/responses"
	"github.com/liorgem/diamondlab-backend/api/validators"
	"github.com/liorgem/diamondlab-backend/internal/variants"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
)

// ListVariants returns a product's color variants.
func ListVariants(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// ListAvailableColors returns palette colors the product has not used.
func ListAvailableColors(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		colors, err := svc.AvailableColors(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, colors)
	}
}

// AddVariant creates a color variant for a product.
func AddVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Add(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// UpdateVariant mutates a variant's code, images or ordering.
func UpdateVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "variantID"), "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Update(r.Context(), productID, variantID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

// RemoveVariant deletes a variant.
func RemoveVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "variantID"), "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), productID, variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// SetDefaultVariant marks one variant as the product default.
func SetDefaultVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variant service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "variantID"), "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.SetDefault(r.Context(), productID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

type addVariantRequest struct {
	ColorName string   `json:"color_name" validate:"required"`
	ColorCode string   `json:"color_code,omitempty" validate:"omitempty,hexcolor"`
	Images    []string `json:"images,omitempty" validate:"omitempty,dive,required"`
	IsDefault bool     `json:"is_default,omitempty"`
}

func (r addVariantRequest) toInput() variants.AddVariantInput {
	return variants.AddVariantInput{
		ColorName: r.ColorName,
		ColorCode: r.ColorCode,
		Images:    r.Images,
		IsDefault: r.IsDefault,
	}
}

type updateVariantRequest struct {
	ColorCode *string   `json:"color_code,omitempty" validate:"omitempty,hexcolor"`
	Images    *[]string `json:"images,omitempty" validate:"omitempty,dive,required"`
	SortOrder *int      `json:"sort_order,omitempty" validate:"omitempty,min=0"`
}

func (r updateVariantRequest) toInput() variants.UpdateVariantInput {
	return variants.UpdateVariantInput{
		ColorCode: r.ColorCode,
		Images:    r.Images,
		SortOrder: r.SortOrder,
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/api/responses"
	"github.com/liorgem/diamondlab-backend/api/validators"
	"github.com/liorgem/diamondlab-backend/internal/products"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const maxPageSize = 100

// ListProducts returns the storefront listing with optional filters.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filter, err := listFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// GetProduct returns one product with images, variants and carat options.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// GetProductGallery resolves the image set for a color selection.
func GetProductGallery(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gallery, err := svc.GetGallery(r.Context(), id, r.URL.Query().Get("color"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gallery)
	}
}

// GetProductPrice resolves the storefront price for a carat weight.
func GetProductPrice(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		weight, err := validators.ParsePathDecimal(chi.URLParam(r, "weight"), "weight")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var entryID *uuid.UUID
		if parsed, err := validators.ParseQueryUUID(r, "carat_pricing_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if parsed != uuid.Nil {
			entryID = &parsed
		}

		quote, err := svc.GetPrice(r.Context(), id, weight, entryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CreateProduct handles admin product creation.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles admin product mutation.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles admin product removal.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

// ToggleProductFeatured flips the featured flag.
func ToggleProductFeatured(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.ToggleFeatured(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AddProductImage appends a gallery image.
func AddProductImage(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addProductImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.AddImage(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, image)
	}
}

// ListProductImages returns the product's gallery.
func ListProductImages(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images, err := svc.ListImages(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, images)
	}
}

// DeleteProductImage removes one gallery image.
func DeleteProductImage(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		imageID, err := validators.ParsePathUUID(chi.URLParam(r, "imageID"), "imageID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteImage(r.Context(), id, imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func listFilterFromQuery(r *http.Request) (products.ListFilter, error) {
	filter := products.ListFilter{
		FeaturedOnly:   strings.EqualFold(r.URL.Query().Get("featured"), "true"),
		DiscountedOnly: strings.EqualFold(r.URL.Query().Get("discounted"), "true"),
		AvailableOnly:  !strings.EqualFold(r.URL.Query().Get("include_unavailable"), "true"),
	}

	if categoryID, err := validators.ParseQueryUUID(r, "category_id"); err != nil {
		return products.ListFilter{}, err
	} else if categoryID != uuid.Nil {
		id := categoryID
		filter.CategoryID = &id
	}

	offset, err := validators.ParseQueryInt(r, "skip", 0, 0, 1<<30)
	if err != nil {
		return products.ListFilter{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", maxPageSize, 1, maxPageSize)
	if err != nil {
		return products.ListFilter{}, err
	}
	filter.Offset = offset
	filter.Limit = limit

	return filter, nil
}

type createProductRequest struct {
	Name               string          `json:"name" validate:"required"`
	Description        *string         `json:"description,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price" validate:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage,omitempty"`
	CategoryID         *uuid.UUID      `json:"category_id,omitempty"`
	ImageURL           *string         `json:"image_url,omitempty"`
	IsAvailable        *bool           `json:"is_available,omitempty"`
	IsFeatured         bool            `json:"is_featured,omitempty"`
}

func (r createProductRequest) toInput() products.CreateProductInput {
	return products.CreateProductInput{
		Name:               strings.TrimSpace(r.Name),
		Description:        r.Description,
		BasePrice:          r.BasePrice,
		DiscountPercentage: r.DiscountPercentage,
		CategoryID:         r.CategoryID,
		ImageURL:           r.ImageURL,
		IsAvailable:        r.IsAvailable,
		IsFeatured:         r.IsFeatured,
	}
}

type updateProductRequest struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	BasePrice          *decimal.Decimal `json:"base_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	CategoryID         *uuid.UUID       `json:"category_id,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty"`
	IsAvailable        *bool            `json:"is_available,omitempty"`
	IsFeatured         *bool            `json:"is_featured,omitempty"`
}

func (r updateProductRequest) toInput() products.UpdateProductInput {
	return products.UpdateProductInput{
		Name:               r.Name,
		Description:        r.Description,
		BasePrice:          r.BasePrice,
		DiscountPercentage: r.DiscountPercentage,
		CategoryID:         r.CategoryID,
		ImageURL:           r.ImageURL,
		IsAvailable:        r.IsAvailable,
		IsFeatured:         r.IsFeatured,
	}
}

type addProductImageRequest struct {
	ImageURL  string  `json:"image_url" validate:"required"`
	AltText   *string `json:"alt_text,omitempty"`
	IsPrimary bool    `json:"is_primary,omitempty"`
	SortOrder int     `json:"sort_order,omitempty" validate:"omitempty,min=0"`
}

func (r addProductImageRequest) toInput() products.AddImageInput {
	return products.AddImageInput{
		ImageURL:  r.ImageURL,
		AltText:   r.AltText,
		IsPrimary: r.IsPrimary,
		SortOrder: r.SortOrder,
	}
}

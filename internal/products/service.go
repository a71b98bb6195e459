package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/internal/guard"
	"github.com/liorgem/diamondlab-backend/internal/pricing"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/redis"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes product reads, admin mutations and price resolution.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	GetGallery(ctx context.Context, id uuid.UUID, colorName string) (*Gallery, error)
	GetPrice(ctx context.Context, id uuid.UUID, weight decimal.Decimal, caratPricingID *uuid.UUID) (*pricing.Quote, error)

	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleFeatured(ctx context.Context, id uuid.UUID) (*ProductDTO, error)

	AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*ImageDTO, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]ImageDTO, error)
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name               string
	Description        *string
	BasePrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	CategoryID         *uuid.UUID
	ImageURL           *string
	IsAvailable        *bool
	IsFeatured         bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name               *string
	Description        *string
	BasePrice          *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	CategoryID         *uuid.UUID
	ImageURL           *string
	IsAvailable        *bool
	IsFeatured         *bool
}

// AddImageInput holds the validated payload to add a gallery image.
type AddImageInput struct {
	ImageURL  string
	AltText   *string
	IsPrimary bool
	SortOrder int
}

type caratEntryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.CaratPricingEntry, error)
	FindByWeight(ctx context.Context, weight decimal.Decimal) (*models.CaratPricingEntry, error)
}

type quoteInvalidator interface {
	DelByPrefix(ctx context.Context, prefix string) error
}

// service implements the product service.
type service struct {
	repo     *Repository
	catalog  caratEntryLoader
	resolver *pricing.Resolver
	quotes   quoteInvalidator
}

// NewService constructs a product service instance. A nil quotes cache
// disables quote invalidation on product mutations.
func NewService(repo *Repository, catalog caratEntryLoader, resolver *pricing.Resolver, quotes quoteInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	return &service{repo: repo, catalog: catalog, resolver: resolver, quotes: quotes}, nil
}

// dropQuotes clears cached quotes for the product. Invalidation is best
// effort so a cache outage never blocks an admin mutation.
func (s *service) dropQuotes(ctx context.Context, productID uuid.UUID) {
	if s.quotes == nil {
		return
	}
	_ = s.quotes.DelByPrefix(ctx, redis.PriceQuotePrefix(productID.String()))
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return toDTOs(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(product), nil
}

func (s *service) GetGallery(ctx context.Context, id uuid.UUID, colorName string) (*Gallery, error) {
	product, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	gallery := ResolveGallery(product, colorName)
	return &gallery, nil
}

// GetPrice resolves the storefront price for a carat selection. The
// selection must be one of the product's linked carat options; a linked
// option whose catalog entry has since vanished anchors at the 1.00ct
// multiplier.
func (s *service) GetPrice(ctx context.Context, id uuid.UUID, weight decimal.Decimal, caratPricingID *uuid.UUID) (*pricing.Quote, error) {
	if err := guard.ValidateCaratWeight(weight); err != nil {
		return nil, err
	}

	product, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is not available")
	}

	multiplier := decimal.NewFromInt(1)
	var entryID *uuid.UUID

	if caratPricingID != nil {
		entry, err := s.catalog.FindByID(ctx, *caratPricingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find catalog entry")
		}
		if _, err := s.repo.FindCaratLink(ctx, product.ID, entry.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "carat option is not available for this product").
					WithDetails(map[string]any{"carat_pricing_id": entry.ID})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find carat link")
		}
		multiplier = entry.Multiplier
		entryID = &entry.ID
	} else {
		link, err := s.repo.FindCaratLinkByWeight(ctx, product.ID, weight)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "carat weight is not available for this product").
					WithDetails(map[string]any{"carat_weight": weight.String()})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find carat link")
		}
		if link.Entry != nil {
			multiplier = link.Entry.Multiplier
			entryID = &link.Entry.ID
		}
	}

	quote := s.resolver.Resolve(ctx, pricing.ResolveInput{
		ProductID:          product.ID,
		CaratWeight:        weight,
		CaratPricingID:     entryID,
		BasePrice:          product.BasePrice,
		Multiplier:         multiplier,
		DiscountPercentage: product.DiscountPercentage,
	})
	return quote, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if err := guard.ValidateBasePrice(input.BasePrice); err != nil {
		return nil, err
	}
	if err := guard.ValidateDiscountPercent(input.DiscountPercentage); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:               input.Name,
		Description:        input.Description,
		BasePrice:          input.BasePrice,
		DiscountPercentage: input.DiscountPercentage,
		CategoryID:         input.CategoryID,
		ImageURL:           input.ImageURL,
		IsAvailable:        true,
		IsFeatured:         input.IsFeatured,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return toDTO(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.BasePrice != nil {
		if err := guard.ValidateBasePrice(*input.BasePrice); err != nil {
			return nil, err
		}
		product.BasePrice = *input.BasePrice
	}
	if input.DiscountPercentage != nil {
		if err := guard.ValidateDiscountPercent(*input.DiscountPercentage); err != nil {
			return nil, err
		}
		product.DiscountPercentage = *input.DiscountPercentage
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	s.dropQuotes(ctx, updated.ID)
	return toDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	s.dropQuotes(ctx, id)
	return nil
}

func (s *service) ToggleFeatured(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsFeatured = !product.IsFeatured
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle featured")
	}
	return toDTO(updated), nil
}

func (s *service) AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*ImageDTO, error) {
	if err := guard.ValidateImageURL(input.ImageURL); err != nil {
		return nil, err
	}
	if _, err := s.findByID(ctx, productID); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		ImageURL:  input.ImageURL,
		AltText:   input.AltText,
		IsPrimary: input.IsPrimary,
		SortOrder: input.SortOrder,
	}
	created, err := s.repo.CreateImage(ctx, image)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add product image")
	}
	dto := toImageDTO(created)
	return &dto, nil
}

func (s *service) ListImages(ctx context.Context, productID uuid.UUID) ([]ImageDTO, error) {
	if _, err := s.findByID(ctx, productID); err != nil {
		return nil, err
	}
	images, err := s.repo.ListImages(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list product images")
	}
	out := make([]ImageDTO, 0, len(images))
	for i := range images {
		out = append(out, toImageDTO(&images[i]))
	}
	return out, nil
}

func (s *service) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	image, err := s.repo.FindImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product image not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product image")
	}
	if image.ProductID != productID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product image not found")
	}

	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product image")
	}
	return nil
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

func (s *service) findDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

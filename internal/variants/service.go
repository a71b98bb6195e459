package variants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/internal/guard"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	dbtypes "github.com/liorgem/diamondlab-backend/pkg/db/types"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes product variant management.
type Service interface {
	List(ctx context.Context, productID uuid.UUID) ([]VariantDTO, error)
	Add(ctx context.Context, productID uuid.UUID, input AddVariantInput) (*VariantDTO, error)
	Update(ctx context.Context, productID, variantID uuid.UUID, input UpdateVariantInput) (*VariantDTO, error)
	Remove(ctx context.Context, productID, variantID uuid.UUID) error
	SetDefault(ctx context.Context, productID, variantID uuid.UUID) (*VariantDTO, error)
	AvailableColors(ctx context.Context, productID uuid.UUID) ([]PaletteColor, error)
}

// AddVariantInput holds the validated payload to add a variant. The
// color name must belong to the storefront palette; an empty ColorCode
// falls back to the palette code for the name. The first variant of a
// product is default regardless of IsDefault.
type AddVariantInput struct {
	ColorName string
	ColorCode string
	Images    []string
	IsDefault bool
}

// UpdateVariantInput holds optional mutation values for a variant.
type UpdateVariantInput struct {
	ColorCode *string
	Images    *[]string
	SortOrder *int
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// service implements the variant service.
type service struct {
	repo     *Repository
	products productLoader
	palette  Palette
	tx       txRunner
}

// NewService constructs a variant service instance.
func NewService(repo *Repository, products productLoader, palette Palette, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variant repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("palette required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, palette: palette, tx: tx}, nil
}

func (s *service) List(ctx context.Context, productID uuid.UUID) ([]VariantDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	variants, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list variants")
	}
	return toDTOs(variants), nil
}

// Add creates a color variant. The product's first variant becomes its
// default automatically.
func (s *service) Add(ctx context.Context, productID uuid.UUID, input AddVariantInput) (*VariantDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := guard.ValidateColorName(input.ColorName); err != nil {
		return nil, err
	}

	paletteColor, ok := s.palette.Lookup(input.ColorName)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color is not in the storefront palette").
			WithDetails(map[string]any{"color_name": input.ColorName})
	}
	code := strings.TrimSpace(input.ColorCode)
	if code == "" {
		code = paletteColor.Code
	}
	if err := guard.ValidateColorCode(code); err != nil {
		return nil, err
	}
	for _, img := range input.Images {
		if err := guard.ValidateImageURL(img); err != nil {
			return nil, err
		}
	}

	var created *models.ProductVariant
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByColor(ctx, productID, input.ColorName); err == nil {
			return pkgerrors.New(pkgerrors.CodeDuplicateKey, "color already exists for product").
				WithDetails(map[string]any{"color_name": input.ColorName})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, err := repo.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}

		isDefault := count == 0 || input.IsDefault
		if isDefault && count > 0 {
			if err := repo.ClearDefaults(ctx, productID); err != nil {
				return err
			}
		}

		variant := &models.ProductVariant{
			ProductID: productID,
			ColorName: strings.TrimSpace(input.ColorName),
			ColorCode: code,
			Images:    dbtypes.StringList(input.Images),
			IsDefault: isDefault,
			SortOrder: int(count),
		}
		created, err = repo.Create(ctx, variant)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add variant")
	}
	return toDTO(created), nil
}

func (s *service) Update(ctx context.Context, productID, variantID uuid.UUID, input UpdateVariantInput) (*VariantDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	variant, err := s.findOwnedVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}

	if input.ColorCode != nil {
		if err := guard.ValidateColorCode(*input.ColorCode); err != nil {
			return nil, err
		}
		variant.ColorCode = *input.ColorCode
	}
	if input.Images != nil {
		for _, img := range *input.Images {
			if err := guard.ValidateImageURL(img); err != nil {
				return nil, err
			}
		}
		variant.Images = dbtypes.StringList(*input.Images)
	}
	if input.SortOrder != nil {
		variant.SortOrder = *input.SortOrder
	}

	updated, err := s.repo.Update(ctx, variant)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update variant")
	}
	return toDTO(updated), nil
}

// Remove deletes a variant. Removing the default promotes the first
// surviving variant in display order, in the same transaction.
func (s *service) Remove(ctx context.Context, productID, variantID uuid.UUID) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		variant, err := repo.FindByID(ctx, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return err
		}
		if variant.ProductID != productID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}

		if err := repo.Delete(ctx, variant.ID); err != nil {
			return err
		}

		if !variant.IsDefault {
			return nil
		}

		survivor, err := repo.FindFirstBySortOrder(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // last variant removed, nothing to promote
			}
			return err
		}
		return repo.MarkDefault(ctx, survivor.ID)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove variant")
	}
	return nil
}

// SetDefault moves the default flag to the given variant.
func (s *service) SetDefault(ctx context.Context, productID, variantID uuid.UUID) (*VariantDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	var updated *models.ProductVariant
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		variant, err := repo.FindByID(ctx, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return err
		}
		if variant.ProductID != productID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}

		if err := repo.ClearDefaults(ctx, productID); err != nil {
			return err
		}
		if err := repo.MarkDefault(ctx, variant.ID); err != nil {
			return err
		}

		variant.IsDefault = true
		updated = variant
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set default variant")
	}
	return toDTO(updated), nil
}

// AvailableColors returns palette colors the product has not used yet.
func (s *service) AvailableColors(ctx context.Context, productID uuid.UUID) ([]PaletteColor, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	variants, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list variants")
	}

	used := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		used[strings.ToLower(variant.ColorName)] = struct{}{}
	}

	available := make([]PaletteColor, 0, len(s.palette))
	for _, color := range s.palette {
		if _, taken := used[strings.ToLower(color.Name)]; !taken {
			available = append(available, color)
		}
	}
	return available, nil
}

func (s *service) findOwnedVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	variant, err := s.repo.FindByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find variant")
	}
	if variant.ProductID != productID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return variant, nil
}

func (s *service) requireProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return nil
}

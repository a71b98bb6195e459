package carats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/internal/catalog"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes product carat option management.
type Service interface {
	List(ctx context.Context, productID uuid.UUID) ([]LinkDTO, error)
	Add(ctx context.Context, productID, caratPricingID uuid.UUID) (*LinkDTO, error)
	AddAll(ctx context.Context, productID uuid.UUID) (*AddAllResult, error)
	Remove(ctx context.Context, productID, caratPricingID uuid.UUID) error
	SetDefault(ctx context.Context, productID, caratPricingID uuid.UUID) (*LinkDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type entryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.CaratPricingEntry, error)
	List(ctx context.Context, includeInactive bool) ([]models.CaratPricingEntry, error)
}

// service implements the carat link service.
type service struct {
	repo     *Repository
	products productLoader
	catalog  entryLoader
	tx       txRunner
}

// NewService constructs a carat link service instance.
func NewService(repo *Repository, products productLoader, catalog entryLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("carat link repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, catalog: catalog, tx: tx}, nil
}

func (s *service) List(ctx context.Context, productID uuid.UUID) ([]LinkDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	links, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carat links")
	}
	return toDTOs(links), nil
}

// Add links one catalog entry to the product. The product's first link
// becomes its default automatically.
func (s *service) Add(ctx context.Context, productID, caratPricingID uuid.UUID) (*LinkDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	entry, err := s.catalog.FindByID(ctx, caratPricingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find catalog entry")
	}
	if !entry.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog entry is inactive").
			WithDetails(map[string]any{"carat_pricing_id": caratPricingID})
	}

	var created *models.ProductCaratLink
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindLink(ctx, productID, caratPricingID); err == nil {
			return pkgerrors.New(pkgerrors.CodeAlreadyLinked, "carat weight already linked to product").
				WithDetails(map[string]any{"carat_pricing_id": caratPricingID})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, err := repo.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}

		link := &models.ProductCaratLink{
			ProductID:      productID,
			CaratPricingID: caratPricingID,
			IsDefault:      count == 0,
			SortOrder:      int(count),
		}
		created, err = repo.Create(ctx, link)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add carat link")
	}

	created.Entry = entry
	return toDTO(created), nil
}

// AddAll links every active catalog entry to the product, skipping
// weights that are already linked.
func (s *service) AddAll(ctx context.Context, productID uuid.UUID) (*AddAllResult, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	entries, err := s.catalog.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog entries")
	}

	result := &AddAllResult{}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}

		for i := range entries {
			entry := &entries[i]

			// Each insert gets a savepoint so a duplicate link rolls
			// back alone instead of aborting the whole transaction on
			// Postgres.
			sp := fmt.Sprintf("sp_carat_link_%d", i)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}

			link := &models.ProductCaratLink{
				ProductID:      productID,
				CaratPricingID: entry.ID,
				IsDefault:      count == 0,
				SortOrder:      int(count),
			}
			if _, err := repo.Create(ctx, link); err != nil {
				if !catalog.IsUniqueViolation(err) {
					return err
				}
				if err := tx.RollbackTo(sp).Error; err != nil {
					return err
				}
				result.Skipped++
				continue
			}
			count++
			result.Added++
		}

		links, err := repo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		result.Links = toDTOs(links)
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk link carats")
	}
	return result, nil
}

// Remove unlinks a carat weight. Removing the default promotes the first
// surviving link in display order, in the same transaction.
func (s *service) Remove(ctx context.Context, productID, caratPricingID uuid.UUID) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		link, err := repo.FindLink(ctx, productID, caratPricingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "carat link not found")
			}
			return err
		}

		if err := repo.Delete(ctx, link.ID); err != nil {
			return err
		}

		if !link.IsDefault {
			return nil
		}

		survivor, err := repo.FindFirstBySortOrder(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // last link removed, nothing to promote
			}
			return err
		}
		return repo.MarkDefault(ctx, survivor.ID)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove carat link")
	}
	return nil
}

// SetDefault moves the default flag to the given carat weight.
func (s *service) SetDefault(ctx context.Context, productID, caratPricingID uuid.UUID) (*LinkDTO, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	var updated *models.ProductCaratLink
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		link, err := repo.FindLink(ctx, productID, caratPricingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "carat link not found")
			}
			return err
		}

		if err := repo.ClearDefaults(ctx, productID); err != nil {
			return err
		}
		if err := repo.MarkDefault(ctx, link.ID); err != nil {
			return err
		}

		link.IsDefault = true
		updated = link
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set default carat")
	}
	return toDTO(updated), nil
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

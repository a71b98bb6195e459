package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/internal/guard"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/redis"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes carat pricing catalog management.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]EntryDTO, error)
	GetByWeight(ctx context.Context, weight decimal.Decimal) (*EntryDTO, error)
	Create(ctx context.Context, input CreateEntryInput) (*EntryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*EntryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateEntryInput holds the validated payload to create a catalog entry.
type CreateEntryInput struct {
	CaratWeight decimal.Decimal
	Multiplier  decimal.Decimal
	DisplayName *string
	IsActive    *bool
}

// UpdateEntryInput holds optional mutation values for a catalog entry.
// The carat weight itself is immutable; clients delete and recreate.
type UpdateEntryInput struct {
	Multiplier  *decimal.Decimal
	DisplayName *string
	IsActive    *bool
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type quoteInvalidator interface {
	DelByPrefix(ctx context.Context, prefix string) error
}

type service struct {
	repo   *Repository
	tx     txRunner
	quotes quoteInvalidator
}

// NewService constructs a catalog service instance. A nil quotes cache
// disables quote invalidation on catalog mutations.
func NewService(repo *Repository, tx txRunner, quotes quoteInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, quotes: quotes}, nil
}

// dropQuotes clears every cached quote. Catalog multipliers feed all
// product prices, so the whole quote keyspace goes. Best effort, a
// cache outage never blocks an admin mutation.
func (s *service) dropQuotes(ctx context.Context) {
	if s.quotes == nil {
		return
	}
	_ = s.quotes.DelByPrefix(ctx, redis.AllPriceQuotesPrefix())
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]EntryDTO, error) {
	entries, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog entries")
	}
	return toDTOs(entries), nil
}

func (s *service) GetByWeight(ctx context.Context, weight decimal.Decimal) (*EntryDTO, error) {
	if err := guard.ValidateCaratWeight(weight); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByWeight(ctx, weight)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "carat weight not in catalog").
				WithDetails(map[string]any{"carat_weight": weight.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find catalog entry")
	}
	return toDTO(entry), nil
}

func (s *service) Create(ctx context.Context, input CreateEntryInput) (*EntryDTO, error) {
	if err := guard.ValidateCaratWeight(input.CaratWeight); err != nil {
		return nil, err
	}
	if err := guard.ValidateMultiplier(input.Multiplier); err != nil {
		return nil, err
	}

	entry := &models.CaratPricingEntry{
		CaratWeight: input.CaratWeight,
		Multiplier:  input.Multiplier,
		DisplayName: input.DisplayName,
		IsActive:    true,
	}
	if input.IsActive != nil {
		entry.IsActive = *input.IsActive
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicateKey, err, "carat weight already in catalog").
				WithDetails(map[string]any{"carat_weight": input.CaratWeight.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create catalog entry")
	}
	return toDTO(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*EntryDTO, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find catalog entry")
	}

	if input.Multiplier != nil {
		if err := guard.ValidateMultiplier(*input.Multiplier); err != nil {
			return nil, err
		}
		entry.Multiplier = *input.Multiplier
	}
	if input.DisplayName != nil {
		entry.DisplayName = input.DisplayName
	}
	if input.IsActive != nil {
		entry.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update catalog entry")
	}
	s.dropQuotes(ctx)
	return toDTO(updated), nil
}

// Delete removes an entry. Entries still linked to products are kept,
// the caller must unlink them first. The link check and the delete run
// in one transaction so a concurrent link cannot slip between them.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		links, err := repo.CountLinks(ctx, id)
		if err != nil {
			return err
		}
		if links > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "catalog entry is linked to products").
				WithDetails(map[string]any{"linked_products": links})
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete catalog entry")
	}
	s.dropQuotes(ctx)
	return nil
}

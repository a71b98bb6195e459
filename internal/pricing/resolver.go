package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
	"github.com/liorgem/diamondlab-backend/pkg/metrics"
	"github.com/liorgem/diamondlab-backend/pkg/redis"
	"github.com/shopspring/decimal"
)

// Quote is a fully resolved price for one (product, carat weight) pair.
type Quote struct {
	ProductID          uuid.UUID       `json:"product_id"`
	CaratWeight        decimal.Decimal `json:"carat_weight"`
	CaratPricingID     *uuid.UUID      `json:"carat_pricing_id,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Multiplier         decimal.Decimal `json:"multiplier"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	FinalPrice         decimal.Decimal `json:"final_price"`
	Source             string          `json:"source"`
	Degraded           bool            `json:"degraded"`
}

// ResolveInput carries everything the resolver needs to price one selection.
type ResolveInput struct {
	ProductID          uuid.UUID
	CaratWeight        decimal.Decimal
	CaratPricingID     *uuid.UUID
	BasePrice          decimal.Decimal
	Multiplier         decimal.Decimal
	DiscountPercentage decimal.Decimal
}

// RemoteQuoter fetches an authoritative price from the upstream pricing
// service.
type RemoteQuoter interface {
	Quote(ctx context.Context, input ResolveInput) (decimal.Decimal, error)
}

type quoteCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Resolver prices carat selections remote-first with a local fallback.
// A failing upstream never fails the storefront: the quote degrades to
// the locally computed price instead.
type Resolver struct {
	remote   RemoteQuoter
	cache    quoteCache
	cacheTTL time.Duration
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
}

// NewResolver constructs a resolver. remote and cache may be nil, which
// disables the remote hop and quote caching respectively.
func NewResolver(remote RemoteQuoter, cache quoteCache, cacheTTL time.Duration, m *metrics.PricingMetrics, logg *logger.Logger) *Resolver {
	return &Resolver{
		remote:   remote,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		logg:     logg,
	}
}

// Resolve prices the selection. The cache is consulted first, then the
// remote service, then local computation. Resolve never returns an error
// for upstream failures.
func (r *Resolver) Resolve(ctx context.Context, input ResolveInput) *Quote {
	quote := &Quote{
		ProductID:          input.ProductID,
		CaratWeight:        input.CaratWeight,
		CaratPricingID:     input.CaratPricingID,
		BasePrice:          input.BasePrice,
		Multiplier:         input.Multiplier,
		DiscountPercentage: input.DiscountPercentage,
	}

	if cached, ok := r.fromCache(ctx, input); ok {
		quote.FinalPrice = cached
		quote.Source = metrics.SourceCache
		r.metrics.ObserveResolution(metrics.SourceCache)
		return quote
	}

	if r.remote != nil {
		start := time.Now()
		price, err := r.remote.Quote(ctx, input)
		r.metrics.ObserveRemoteLatency(time.Since(start).Seconds())
		if err == nil {
			quote.FinalPrice = price
			quote.Source = metrics.SourceRemote
			r.metrics.ObserveResolution(metrics.SourceRemote)
			r.storeCache(ctx, input, price)
			return quote
		}

		r.metrics.ObserveFallback()
		if r.logg != nil {
			r.logg.Warn(ctx, fmt.Sprintf("remote price quote failed, using local price: %v", err))
		}
		quote.Degraded = true
	}

	quote.FinalPrice = Compute(input.BasePrice, input.Multiplier, input.DiscountPercentage)
	quote.Source = metrics.SourceLocal
	r.metrics.ObserveResolution(metrics.SourceLocal)
	return quote
}

func (r *Resolver) cacheKey(input ResolveInput) string {
	return redis.PriceQuoteKey(input.ProductID.String(), input.CaratWeight.String())
}

func (r *Resolver) fromCache(ctx context.Context, input ResolveInput) (decimal.Decimal, bool) {
	if r.cache == nil {
		return decimal.Zero, false
	}
	raw, err := r.cache.Get(ctx, r.cacheKey(input))
	if err != nil {
		return decimal.Zero, false
	}
	var price decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &price); err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func (r *Resolver) storeCache(ctx context.Context, input ResolveInput, price decimal.Decimal) {
	if r.cache == nil {
		return
	}
	encoded, err := json.Marshal(price)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(input), string(encoded), r.cacheTTL); err != nil && r.logg != nil {
		r.logg.Warn(ctx, fmt.Sprintf("caching price quote failed: %v", err))
	}
}
